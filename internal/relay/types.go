// Package relay rewrites a user's latest Slack message in place.
//
// A run goes fetch → select → transform → replace. Any failure in fetch,
// transform or replace ends the run with a single fixed notice in the
// channel; finding nothing to rewrite ends it silently.
package relay

import "context"

// TriggerEvent is the inbound command that starts one run.
type TriggerEvent struct {
	ChannelID string
	UserID    string
	Text      string
}

// ChannelMessage is one message read from channel history.
type ChannelMessage struct {
	Timestamp string // Slack "ts"; sort key and delete target
	UserID    string
	Automated bool // authored by a bot or integration
	Text      string
}

// RewriteResult is the transformed body produced for one run.
type RewriteResult struct {
	Text string
}

// OutgoingMessage is a message the relay asks the chat service to post.
type OutgoingMessage struct {
	Text      string
	Username  string // display-name override
	IconEmoji string
	IconURL   string
	// EphemeralTo, when set, makes the message visible only to that user.
	EphemeralTo string
}

// ChatService is the subset of the chat platform the relay depends on.
type ChatService interface {
	History(ctx context.Context, channelID string, limit int) ([]ChannelMessage, error)
	Delete(ctx context.Context, channelID, timestamp string) error
	Post(ctx context.Context, channelID string, msg OutgoingMessage) error
}

// Ack is the immediate response returned to the command caller.
type Ack struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// State is a step of the per-run state machine.
type State string

const (
	StateIdle         State = "idle"
	StateFetching     State = "fetching"
	StateSelecting    State = "selecting"
	StateTransforming State = "transforming"
	StateReplacing    State = "replacing"
	StateNotifying    State = "notifying"
	StateDone         State = "done"
)

// OutcomeKind classifies how a run ended.
type OutcomeKind string

const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeNoTarget OutcomeKind = "no_target"
	OutcomeFailure  OutcomeKind = "failure"
)

// Outcome is the result of one run.
type Outcome struct {
	Kind OutcomeKind
	Err  error   // set for OutcomeFailure; a *StageError
	Path []State // states visited, Idle through Done
}
