// Package channels receives slash-command triggers from Slack and hands
// them to the relay controller.
package channels

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	slackgo "github.com/slack-go/slack"

	"github.com/doyanishi/slack-format-bot/internal/relay"
)

// Channel is a trigger source. Start blocks until ctx is cancelled.
type Channel interface {
	Name() string
	Start(ctx context.Context) error
}

// Dispatcher is the part of relay.Controller a channel drives.
type Dispatcher interface {
	Acknowledge(ev relay.TriggerEvent) relay.Ack
	Dispatch(ctx context.Context, ev relay.TriggerEvent) *relay.Run
}

var errMissingFields = errors.New("channel_id and user_id are required")

// Base holds state shared by all trigger channels.
type Base struct {
	name string
	d    Dispatcher
}

func NewBase(name string, d Dispatcher) Base {
	return Base{name: name, d: d}
}

func (b *Base) Name() string { return b.name }

// HandleCommand validates cmd, delivers the acknowledgement through ack,
// and only then dispatches the run.
func (b *Base) HandleCommand(ctx context.Context, cmd slackgo.SlashCommand, ack func(relay.Ack)) (*relay.Run, error) {
	if cmd.ChannelID == "" || cmd.UserID == "" {
		return nil, errMissingFields
	}
	ev := relay.TriggerEvent{ChannelID: cmd.ChannelID, UserID: cmd.UserID, Text: cmd.Text}

	ack(b.d.Acknowledge(ev))

	run := b.d.Dispatch(ctx, ev)
	slog.Debug("command accepted",
		"via", b.name, "command", cmd.Command, "run_id", run.ID,
		"slack_channel", ev.ChannelID, "user", ev.UserID)
	return run, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "err", err)
	}
}
