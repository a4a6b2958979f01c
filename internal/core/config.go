package core

// ProviderConfig is what the LLM provider factory needs to construct a
// concrete completion/vision/embedding client.
type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetGeminiAPIKey() string
	GetGeminiEmbeddingModel() string
	GetOpenAIAPIKey() string
	GetOpenAIBaseURL() string
	GetOpenRouterAPIKey() string
}

// TelegramConfig carries transport credentials without exposing the
// whole configuration surface to the bot.
type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
