// Package config defines the configuration schema for slack-format-bot.
//
// JSON and YAML keys use camelCase. Secrets normally come from the process
// environment and are overlaid on whatever the file provides.
package config

import (
	"errors"
	"fmt"

	"github.com/doyanishi/slack-format-bot/internal/config/channel"
	"github.com/doyanishi/slack-format-bot/internal/config/provider"
	"github.com/doyanishi/slack-format-bot/internal/config/relay"
	"github.com/doyanishi/slack-format-bot/internal/config/server"
)

// HeartbeatConfig schedules the periodic credential probe.
type HeartbeatConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Schedule string `json:"schedule" yaml:"schedule"` // robfig/cron spec, e.g. "@every 30m"
}

func defaultHeartbeatConfig() HeartbeatConfig {
	return HeartbeatConfig{Enabled: true, Schedule: "@every 30m"}
}

// Config is the root configuration object.
type Config struct {
	Slack     channel.SlackConfig     `json:"slack" yaml:"slack"`
	Provider  provider.ProviderConfig `json:"provider" yaml:"provider"`
	Relay     relay.RelayConfig       `json:"relay" yaml:"relay"`
	Server    server.ServerConfig     `json:"server" yaml:"server"`
	Heartbeat HeartbeatConfig         `json:"heartbeat" yaml:"heartbeat"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Slack:     channel.DefaultSlackConfig(),
		Provider:  provider.DefaultProviderConfig(),
		Relay:     relay.DefaultRelayConfig(),
		Server:    server.DefaultServerConfig(),
		Heartbeat: defaultHeartbeatConfig(),
	}
}

// Validate reports every missing setting the serve command needs.
func (c *Config) Validate() error {
	var errs []error
	if c.Slack.BotToken == "" {
		errs = append(errs, errors.New("slack bot token is not set (SLACK_BOT_TOKEN)"))
	}
	if c.Slack.Socket() && c.Slack.AppToken == "" {
		errs = append(errs, errors.New("slack app token is required in socket mode (SLACK_APP_TOKEN)"))
	}
	if c.Provider.Name != provider.ProviderEcho && c.Provider.APIKey == "" {
		errs = append(errs, fmt.Errorf("no API key configured for provider %q (OPENAI_API_KEY)", c.Provider.Name))
	}
	if c.Relay.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("relay.historyLimit must be positive, got %d", c.Relay.HistoryLimit))
	}
	switch c.Relay.NotifyStyle {
	case relay.NotifyPlain, relay.NotifyMention, relay.NotifyEphemeral:
	default:
		errs = append(errs, fmt.Errorf("unknown relay.notifyStyle %q", c.Relay.NotifyStyle))
	}
	return errors.Join(errs...)
}
