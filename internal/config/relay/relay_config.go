package relay

import "time"

const (
	NotifyPlain     = "plain"
	NotifyMention   = "mention"
	NotifyEphemeral = "ephemeral"
)

// DefaultInstructions is the system prompt sent with every rewrite.
const DefaultInstructions = "以下の文章を、ビジネスシーンに適した丁寧で構造化された文章に変換してください。要点を整理し、適切な敬語を使用してください。"

// RelayConfig controls the rewrite pipeline.
type RelayConfig struct {
	HistoryLimit       int     `json:"historyLimit" yaml:"historyLimit"`
	Instructions       string  `json:"instructions" yaml:"instructions"`
	MaxTokens          int     `json:"maxTokens" yaml:"maxTokens"`
	Temperature        float64 `json:"temperature" yaml:"temperature"`
	AckText            string  `json:"ackText" yaml:"ackText"`
	AckResponseType    string  `json:"ackResponseType" yaml:"ackResponseType"` // "in_channel" or "ephemeral"
	DisplayName        string  `json:"displayName" yaml:"displayName"`
	IconEmoji          string  `json:"iconEmoji" yaml:"iconEmoji"`
	IconURL            string  `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
	ErrorText          string  `json:"errorText" yaml:"errorText"`
	NotifyStyle        string  `json:"notifyStyle" yaml:"notifyStyle"`
	CallTimeoutSeconds int     `json:"callTimeoutSeconds" yaml:"callTimeoutSeconds"`
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		HistoryLimit:       5,
		Instructions:       DefaultInstructions,
		MaxTokens:          500,
		Temperature:        0.3,
		AckText:            "構造化中...",
		AckResponseType:    "in_channel",
		DisplayName:        "あなた（構造化済み）",
		IconEmoji:          ":memo:",
		ErrorText:          "エラーが発生しました。もう一度お試しください。",
		NotifyStyle:        NotifyPlain,
		CallTimeoutSeconds: 30,
	}
}

// CallTimeout is the deadline applied to each external call of a run.
func (c RelayConfig) CallTimeout() time.Duration {
	if c.CallTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}
