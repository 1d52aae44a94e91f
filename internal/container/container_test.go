package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doyanishi/slack-format-bot/internal/config"
	"github.com/doyanishi/slack-format-bot/internal/config/provider"
)

func TestNew_WiresServices(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Slack.BotToken = "xoxb-test"
	cfg.Provider.APIKey = "sk-test"

	c, err := New(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Provider().Name())
	assert.Equal(t, "gpt-3.5-turbo", c.Provider().DefaultModel())
	assert.NotNil(t, c.Slack())
	assert.NotNil(t, c.Controller())
	assert.Equal(t, []string{"http"}, c.Channels().EnabledChannels())
	assert.NotNil(t, c.Heartbeat())
}

func TestNew_HeartbeatDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.Name = provider.ProviderEcho
	cfg.Heartbeat.Enabled = false

	c, err := New(&cfg)
	require.NoError(t, err)
	assert.Nil(t, c.Heartbeat())
	assert.Equal(t, "echo", c.Provider().Name())
}

func TestNew_MissingAPIKey(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := New(&cfg)
	assert.ErrorContains(t, err, "no API key configured")
}

func TestNew_BadHeartbeatSchedule(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.APIKey = "sk-test"
	cfg.Heartbeat.Schedule = "sometimes"
	_, err := New(&cfg)
	assert.Error(t, err)
}
