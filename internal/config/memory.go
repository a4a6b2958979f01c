package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

// MemoryConfig bounds per-session conversation memory. The overlap
// thresholds and truncation lengths are tunable because their defaults
// are inherited policy, not derived values.
type MemoryConfig struct {
	MaxHistory  int `env:"MEMORY_MAX_HISTORY" envDefault:"10"`
	MaxAgeHours int `env:"MEMORY_MAX_AGE_HOURS" envDefault:"24"`

	// Keyword-overlap relevance thresholds for related-context lookup.
	QueryOverlap    float64 `env:"MEMORY_QUERY_OVERLAP" envDefault:"0.3"`
	ResponseOverlap float64 `env:"MEMORY_RESPONSE_OVERLAP" envDefault:"0.2"`

	// Response preview lengths in context blocks.
	RecentTruncate  int `env:"MEMORY_RECENT_TRUNCATE" envDefault:"200"`
	RelatedTruncate int `env:"MEMORY_RELATED_TRUNCATE" envDefault:"150"`

	// Follow-up answers are conversation turns too, but recording them
	// is off by default to keep memory counting question-answer pairs
	// the user explicitly asked.
	PersistFollowUps bool `env:"MEMORY_PERSIST_FOLLOWUPS" envDefault:"false"`
}

func NewMemoryConfig(ctx context.Context) *MemoryConfig {
	c := &MemoryConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Memory config")
	}
	return c
}
