package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

type RAGConfig struct {
	// MaxChunks is k for nearest-neighbor retrieval.
	MaxChunks int `env:"RAG_MAX_CHUNKS" envDefault:"5"`

	// Indexing-time splitter limits for oversized corpus entries.
	ChunkMaxTokens     int `env:"RAG_CHUNK_MAX_TOKENS" envDefault:"400"`
	ChunkOverlapTokens int `env:"RAG_CHUNK_OVERLAP_TOKENS" envDefault:"50"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return cfg
}
