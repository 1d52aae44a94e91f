package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doyanishi/slack-format-bot/internal/providers"
)

func TestTransform_SendsInstructionsAndText(t *testing.T) {
	llm := &fakeLLM{reply: "承知いたしました。"}
	tr := NewTextTransformer(llm, TransformerConfig{Instructions: "be polite", Model: "gpt-3.5-turbo", Temperature: 0.3})

	res, err := tr.Transform(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, "承知いたしました。", res.Text)

	require.Len(t, llm.inputs, 1)
	assert.Equal(t, []providers.Message{
		{Role: providers.RoleSystem, Content: "be polite"},
		{Role: providers.RoleUser, Content: "ok"},
	}, llm.inputs[0])
	assert.Equal(t, providers.ChatOptions{Model: "gpt-3.5-turbo", MaxTokens: DefaultMaxTokens, Temperature: 0.3}, llm.opts[0])
}

func TestTransform_StripsReasoning(t *testing.T) {
	llm := &fakeLLM{reply: "<think>polite form needed</think>\n恐れ入ります。"}
	res, err := NewTextTransformer(llm, TransformerConfig{}).Transform(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "恐れ入ります。", res.Text)
}

func TestTransform_ProviderError(t *testing.T) {
	cause := errors.New("rate limited")
	_, err := NewTextTransformer(&fakeLLM{err: cause}, TransformerConfig{}).Transform(context.Background(), "x")
	assert.ErrorIs(t, err, cause)
}

func TestTransform_EchoProvider(t *testing.T) {
	res, err := NewTextTransformer(providers.NewEchoProvider(), TransformerConfig{Instructions: "ignored"}).
		Transform(context.Background(), "そのまま")
	require.NoError(t, err)
	assert.Equal(t, "そのまま", res.Text)
}
