package providers

import (
	"context"
	"fmt"
)

// EchoProvider returns the last user message unchanged.
// Used for dry runs and local wiring checks.
type EchoProvider struct{}

func NewEchoProvider() *EchoProvider { return &EchoProvider{} }

func (e *EchoProvider) Name() string         { return "echo" }
func (e *EchoProvider) DefaultModel() string { return "echo" }

func (e *EchoProvider) Chat(_ context.Context, messages []Message, _ ChatOptions) (LLMResponse, error) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return LLMResponse{Content: messages[i].Content, FinishReason: "stop"}, nil
		}
	}
	return LLMResponse{}, fmt.Errorf("echo: no user message")
}
