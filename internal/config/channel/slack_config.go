package channel

const (
	SlackModeHTTP   = "http"
	SlackModeSocket = "socket"
)

// SlackConfig configures the Slack workspace connection.
type SlackConfig struct {
	Mode          string `json:"mode" yaml:"mode"` // "http" or "socket"
	BotToken      string `json:"botToken" yaml:"botToken"`
	AppToken      string `json:"appToken" yaml:"appToken"` // socket mode only
	SigningSecret string `json:"signingSecret" yaml:"signingSecret"`
	Debug         bool   `json:"debug" yaml:"debug"`
}

func DefaultSlackConfig() SlackConfig {
	return SlackConfig{Mode: SlackModeHTTP}
}

// Socket reports whether slash commands arrive over Socket Mode.
func (c SlackConfig) Socket() bool { return c.Mode == SlackModeSocket }
