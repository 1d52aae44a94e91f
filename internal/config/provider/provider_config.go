package provider

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderDeepSeek   = "deepseek"
	ProviderGroq       = "groq"
	ProviderAnthropic  = "anthropic"
	ProviderCustom     = "custom"
	ProviderEcho       = "echo"
)

// ProviderConfig holds credentials and routing for the text-generation service.
type ProviderConfig struct {
	Name         string            `json:"name" yaml:"name"`
	APIKey       string            `json:"apiKey" yaml:"apiKey"`
	APIBase      string            `json:"apiBase,omitempty" yaml:"apiBase,omitempty"`
	Model        string            `json:"model" yaml:"model"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty" yaml:"extraHeaders,omitempty"`
}

func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Name:  ProviderOpenAI,
		Model: "gpt-3.5-turbo",
	}
}
