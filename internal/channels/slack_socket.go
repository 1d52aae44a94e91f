package channels

import (
	"context"
	"log/slog"

	slackgo "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/doyanishi/slack-format-bot/internal/relay"
)

// SlackSocketChannel receives slash commands over Socket Mode.
type SlackSocketChannel struct {
	Base
	client   *SlackClient
	smClient *socketmode.Client
}

func NewSlackSocketChannel(client *SlackClient, d Dispatcher) *SlackSocketChannel {
	return &SlackSocketChannel{Base: NewBase("slack-socket", d), client: client}
}

func (s *SlackSocketChannel) Start(ctx context.Context) error {
	if id, err := s.client.AuthTest(ctx); err == nil {
		slog.Info("slack: connected", "team", id.Team, "bot_user_id", id.UserID)
	} else {
		slog.Warn("slack: auth.test failed", "err", err)
	}

	s.smClient = socketmode.New(s.client.API())
	go s.smClient.RunContext(ctx) //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-s.smClient.Events:
			if !ok {
				return nil
			}
			s.handleEvent(ctx, evt)
		}
	}
}

func (s *SlackSocketChannel) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		slog.Info("slack: connecting to socket mode")
	case socketmode.EventTypeConnectionError:
		slog.Warn("slack: socket mode connection failed, retrying")
	case socketmode.EventTypeConnected:
		slog.Info("slack: socket mode connected")
	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slackgo.SlashCommand)
		if !ok || evt.Request == nil {
			return
		}
		req := *evt.Request
		s.handleCommand(ctx, cmd, func(payload any) { s.smClient.Ack(req, payload) })
	case socketmode.EventTypeEventsAPI, socketmode.EventTypeInteractive:
		// not handled; ack so Slack does not retry
		if evt.Request != nil {
			s.smClient.Ack(*evt.Request)
		}
	}
}

// handleCommand acks with the relay acknowledgement, or with an empty
// payload when the command cannot be served.
func (s *SlackSocketChannel) handleCommand(ctx context.Context, cmd slackgo.SlashCommand, ack func(payload any)) *relay.Run {
	run, err := s.HandleCommand(ctx, cmd, func(a relay.Ack) { ack(a) })
	if err != nil {
		slog.Warn("slack: ignored slash command", "command", cmd.Command, "err", err)
		ack(nil)
		return nil
	}
	return run
}
