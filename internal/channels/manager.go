package channels

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/doyanishi/slack-format-bot/internal/config"
)

// Manager owns the trigger channel selected by configuration.
type Manager struct {
	channels []Channel
}

// NewManager registers the HTTP endpoint, or the Socket Mode listener when
// slack.mode is "socket".
func NewManager(cfg *config.Config, client *SlackClient, d Dispatcher) *Manager {
	m := &Manager{}
	if cfg.Slack.Socket() {
		m.channels = append(m.channels, NewSlackSocketChannel(client, d))
	} else {
		cmd := NewSlackCommandHandler(d, cfg.Slack.SigningSecret)
		m.channels = append(m.channels, NewHTTPChannel(&cfg.Server, cmd))
		if cfg.Slack.SigningSecret == "" {
			slog.Warn("slack: signing secret not set, request signatures are not verified")
		}
	}
	for _, ch := range m.channels {
		ch := ch
		slog.Info("channel enabled", "name", ch.Name())
	}
	return m
}

// EnabledChannels returns the names of all enabled channels.
func (m *Manager) EnabledChannels() []string {
	names := make([]string, 0, len(m.channels))
	for _, ch := range m.channels {
		ch := ch
		names = append(names, ch.Name())
	}
	return names
}

// StartAll runs every channel until ctx is cancelled or one of them fails.
func (m *Manager) StartAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range m.channels {
		ch := ch
		g.Go(func() error {
			slog.Info("starting channel", "name", ch.Name())
			return ch.Start(gctx)
		})
	}
	return g.Wait()
}
