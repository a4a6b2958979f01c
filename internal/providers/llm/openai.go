package llm

// OpenAI provider is implemented using OpenAICompatible. BaseURL is
// configurable so self-hosted compatible endpoints work too; it must
// not include the /v1 suffix.
type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
