package config

import (
	"context"
)

// ProviderSettings aggregates everything the LLM factory needs for the
// selected provider. Gemini credentials are always resolved because the
// passage index is built with Gemini vectors regardless of who
// generates answers.
type ProviderSettings struct {
	Provider string
	Model    string

	GeminiAPIKey         string
	GeminiEmbeddingModel string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenRouterAPIKey     string
}

func NewProviderSettings(ctx context.Context, app *AppConfig) *ProviderSettings {
	gemini := NewGeminiConfig(ctx)

	s := &ProviderSettings{
		Provider:             app.LLMProvider,
		Model:                gemini.Model,
		GeminiAPIKey:         gemini.APIKey,
		GeminiEmbeddingModel: gemini.EmbeddingModel,
	}

	switch app.LLMProvider {
	case "openai":
		c := NewOpenAIConfig(ctx)
		s.Model = c.Model
		s.OpenAIAPIKey = c.APIKey
		s.OpenAIBaseURL = c.BaseURL
	case "openrouter":
		c := NewOpenRouterConfig(ctx)
		s.Model = c.Model
		s.OpenRouterAPIKey = c.APIKey
	}

	return s
}

func (s ProviderSettings) GetProvider() string             { return s.Provider }
func (s ProviderSettings) GetModel() string                { return s.Model }
func (s ProviderSettings) GetGeminiAPIKey() string         { return s.GeminiAPIKey }
func (s ProviderSettings) GetGeminiEmbeddingModel() string { return s.GeminiEmbeddingModel }
func (s ProviderSettings) GetOpenAIAPIKey() string         { return s.OpenAIAPIKey }
func (s ProviderSettings) GetOpenAIBaseURL() string        { return s.OpenAIBaseURL }
func (s ProviderSettings) GetOpenRouterAPIKey() string     { return s.OpenRouterAPIKey }
