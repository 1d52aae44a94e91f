package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doyanishi/slack-format-bot/internal/providers"
	"github.com/doyanishi/slack-format-bot/internal/shared/stringutils"
)

const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.3
)

// TransformerConfig fixes the generation parameters of every rewrite.
type TransformerConfig struct {
	Instructions string // system prompt; opaque to the relay
	Model        string // empty = provider default
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
}

// TextTransformer rewrites text through an LLM provider.
type TextTransformer struct {
	llm providers.LLMProvider
	cfg TransformerConfig
}

func NewTextTransformer(llm providers.LLMProvider, cfg TransformerConfig) *TextTransformer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &TextTransformer{llm: llm, cfg: cfg}
}

// Transform makes exactly one generation request. Provider errors are
// returned as-is apart from wrapping; an empty completion is an error.
// Reasoning blocks are stripped from the answer.
func (t *TextTransformer) Transform(ctx context.Context, text string) (RewriteResult, error) {
	ctx, cancel := withTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	resp, err := t.llm.Chat(ctx, []providers.Message{
		{Role: providers.RoleSystem, Content: t.cfg.Instructions},
		{Role: providers.RoleUser, Content: text},
	}, providers.ChatOptions{
		Model:       t.cfg.Model,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return RewriteResult{}, fmt.Errorf("transform: %w", err)
	}

	out := stringutils.StripThink(resp.Content)
	if out == "" {
		return RewriteResult{}, errors.New("transform: empty completion")
	}
	return RewriteResult{Text: out}, nil
}
