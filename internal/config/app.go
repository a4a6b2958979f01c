package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"HELPBUDDY_RUNTIME_PATH" envDefault:".helpbuddy"`
	// Provider for answer generation; embeddings always come from Gemini
	// because the passage index is built with Gemini vectors.
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	// Transport flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "helpbuddy.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetCorpusPath() string {
	return filepath.Join(c.RuntimePath, "corpus.jsonl")
}
