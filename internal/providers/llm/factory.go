package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

// NewCompleter creates the generation oracle for the configured provider.
func NewCompleter(ctx context.Context, cfg core.ProviderConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.GetProvider()).
		Str("model", cfg.GetModel()).
		Msg("starting llm provider")

	switch cfg.GetProvider() {
	case "gemini":
		return NewGemini(cfg.GetGeminiAPIKey(), cfg.GetModel()), nil
	case "openai":
		return NewOpenAI(cfg.GetOpenAIAPIKey(), cfg.GetOpenAIBaseURL(), cfg.GetModel()), nil
	case "openrouter":
		return NewOpenRouter(cfg.GetOpenRouterAPIKey(), cfg.GetModel()), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.GetProvider())
	}
}

// NewDescriber creates the image-captioning oracle. Only Gemini can see
// images; for other providers the describer is nil and image questions
// degrade to their raw text.
func NewDescriber(ctx context.Context, cfg core.ProviderConfig) core.Describer {
	if cfg.GetProvider() == "gemini" {
		return NewGemini(cfg.GetGeminiAPIKey(), cfg.GetModel())
	}

	log.FromCtx(ctx).Warn().
		Str("provider", cfg.GetProvider()).
		Msg("provider has no vision support, image questions fall back to text")
	return nil
}
