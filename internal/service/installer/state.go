package installer

// Settings is the configuration collected by the wizard. The env tags
// match what the config package parses, so env.MarshalEnv renders it
// straight into the .env file.
type Settings struct {
	Provider         string `env:"LLM_PROVIDER"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	GeminiModel      string `env:"GEMINI_MODEL"`
	OpenAIModel      string `env:"OPENAI_MODEL"`
	OpenRouterModel  string `env:"OPENROUTER_MODEL"`
	EnableTelegram   bool   `env:"ENABLE_TELEGRAM"`
	TelegramToken    string `env:"TELEGRAM_TOKEN"`
	TelegramOwnerID  int64  `env:"TELEGRAM_OWNER_ID"`
}

// InstallState accumulates the settings collected by the wizard steps
// before SaveEnvStep writes them out.
type InstallState struct {
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{}
}

func (s *InstallState) Provider() string {
	return s.Settings.Provider
}

func (s *InstallState) TelegramEnabled() bool {
	return s.Settings.EnableTelegram
}
