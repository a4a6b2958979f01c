package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY,required,notEmpty"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	// BaseURL without the /v1 suffix; the provider appends API paths.
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
