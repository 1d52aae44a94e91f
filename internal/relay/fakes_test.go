package relay

import (
	"context"
	"sync"

	"github.com/doyanishi/slack-format-bot/internal/providers"
)

// fakeChat records every call in order.
type fakeChat struct {
	mu      sync.Mutex
	history []ChannelMessage
	histErr error
	delErr  error
	postErr error

	calls   []string
	limits  []int
	deleted []string
	posts   []OutgoingMessage
}

func (f *fakeChat) History(_ context.Context, _ string, limit int) ([]ChannelMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "history")
	f.limits = append(f.limits, limit)
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.history, nil
}

func (f *fakeChat) Delete(_ context.Context, _ string, ts string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete")
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, ts)
	return nil
}

func (f *fakeChat) Post(_ context.Context, _ string, msg OutgoingMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "post")
	f.posts = append(f.posts, msg)
	return f.postErr
}

func (f *fakeChat) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeLLM returns reply or err and records the prompts it saw.
type fakeLLM struct {
	mu     sync.Mutex
	reply  string
	err    error
	inputs [][]providers.Message
	opts   []providers.ChatOptions
}

func (f *fakeLLM) Name() string         { return "fake" }
func (f *fakeLLM) DefaultModel() string { return "fake-model" }

func (f *fakeLLM) Chat(_ context.Context, messages []providers.Message, opts providers.ChatOptions) (providers.LLMResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, messages)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return providers.LLMResponse{}, f.err
	}
	return providers.LLMResponse{Content: f.reply, FinishReason: "stop"}, nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}
