// Package providers talks to text-generation services.
// Every backend speaks the OpenAI chat-completions protocol; the registry
// only decides which base URL and model name to use.
package providers

import "context"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    string
	Content string
}

// ChatOptions configures a single LLM chat request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// LLMResponse is the normalised response from any LLM provider.
type LLMResponse struct {
	Content      string
	FinishReason string
	Usage        map[string]int // "prompt_tokens", "completion_tokens", "total_tokens"
}

// LLMProvider is the interface every LLM backend must satisfy.
type LLMProvider interface {
	Name() string
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (LLMResponse, error)
	DefaultModel() string
}
