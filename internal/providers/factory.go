package providers

// Params are the raw values needed to construct any LLMProvider.
// Extracted from config.Config by the caller to avoid an import cycle.
type Params struct {
	APIKey       string
	APIBase      string
	ExtraHeaders map[string]string
	DefaultModel string
	ProviderName string // registry name, e.g. "openrouter", "openai"
}

// New creates the LLMProvider for the given params.
//
//   - echo      → EchoProvider (no network)
//   - otherwise → OpenAIProvider against the resolved base URL
func New(p Params) LLMProvider {
	if p.ProviderName == "echo" {
		return NewEchoProvider()
	}
	return NewOpenAIProvider(p.APIKey, p.APIBase, p.DefaultModel, p.ProviderName, p.ExtraHeaders)
}
