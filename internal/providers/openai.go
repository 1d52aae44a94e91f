package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls any OpenAI-compatible chat-completions endpoint.
type OpenAIProvider struct {
	name         string
	apiBase      string
	defaultModel string
	gateway      *ProviderSpec // non-nil for gateway providers
	spec         *ProviderSpec // non-nil for standard providers
	client       *openai.Client
}

// NewOpenAIProvider constructs a provider from raw config values.
// The caller extracts these from config.Config to avoid an import cycle.
func NewOpenAIProvider(
	apiKey, apiBase, defaultModel, providerName string,
	extraHeaders map[string]string,
) *OpenAIProvider {
	gateway := FindGateway(providerName, apiKey, apiBase)

	var spec *ProviderSpec
	if gateway == nil {
		spec = FindByName(providerName)
		if spec == nil {
			spec = FindByModel(defaultModel)
		}
	}

	// Resolve effective API base.
	effectiveBase := apiBase
	if effectiveBase == "" {
		if gateway != nil && gateway.DefaultAPIBase != "" {
			effectiveBase = gateway.DefaultAPIBase
		} else if spec != nil && spec.DefaultAPIBase != "" {
			effectiveBase = spec.DefaultAPIBase
		} else {
			effectiveBase = "https://api.openai.com/v1"
		}
	}
	effectiveBase = strings.TrimRight(effectiveBase, "/")

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = effectiveBase
	cfg.HTTPClient = &http.Client{
		Timeout:   120 * time.Second,
		Transport: headerTransport{headers: extraHeaders, next: http.DefaultTransport},
	}

	name := providerName
	if name == "" {
		name = "openai"
	}

	return &OpenAIProvider{
		name:         name,
		apiBase:      effectiveBase,
		defaultModel: defaultModel,
		gateway:      gateway,
		spec:         spec,
		client:       openai.NewClientWithConfig(cfg),
	}
}

func (p *OpenAIProvider) Name() string         { return p.name }
func (p *OpenAIProvider) DefaultModel() string { return p.defaultModel }
func (p *OpenAIProvider) APIBase() string      { return p.apiBase }

// Chat sends one non-streaming completion request.
// API errors (quota, auth, rate limit) are returned wrapped, never retried.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []Message, opts ChatOptions) (LLMResponse, error) {
	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}

	req := openai.ChatCompletionRequest{
		Model:       p.resolveModel(model),
		Messages:    toWireMessages(messages),
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			slog.Debug("chat completion rejected", "provider", p.name, "status", apiErr.HTTPStatusCode, "code", apiErr.Code)
		}
		return LLMResponse{}, fmt.Errorf("%s chat completion: %w", p.name, err)
	}
	return parseCompletion(resp)
}

// resolveModel strips a "provider/" prefix for standard providers so the API
// receives the bare model name. Gateways keep the vendor prefix for routing.
func (p *OpenAIProvider) resolveModel(model string) string {
	if p.gateway != nil {
		full := p.gateway.Name + "/"
		if strings.HasPrefix(strings.ToLower(model), full) {
			return model[len(full):]
		}
		return model
	}
	if p.spec != nil {
		full := p.spec.Name + "/"
		if strings.HasPrefix(strings.ToLower(model), full) {
			return model[len(full):]
		}
	}
	return model
}

func toWireMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

func parseCompletion(resp openai.ChatCompletionResponse) (LLMResponse, error) {
	if len(resp.Choices) == 0 {
		return LLMResponse{}, fmt.Errorf("empty choices in response")
	}

	choice := resp.Choices[0]
	finish := string(choice.FinishReason)
	if finish == "" {
		finish = "stop"
	}

	return LLMResponse{
		Content:      choice.Message.Content,
		FinishReason: finish,
		Usage: map[string]int{
			"prompt_tokens":     resp.Usage.PromptTokens,
			"completion_tokens": resp.Usage.CompletionTokens,
			"total_tokens":      resp.Usage.TotalTokens,
		},
	}, nil
}

// headerTransport adds configured extra headers to every request.
type headerTransport struct {
	headers map[string]string
	next    http.RoundTripper
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) > 0 {
		req = req.Clone(req.Context())
		for k, v := range t.headers {
			req.Header.Set(k, v)
		}
	}
	return t.next.RoundTrip(req)
}
