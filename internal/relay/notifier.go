package relay

import (
	"context"
	"fmt"
	"time"
)

// NotifyStyle decides how the failure notice addresses the invoking user.
type NotifyStyle string

const (
	NotifyPlain     NotifyStyle = "plain"     // plain channel message
	NotifyMention   NotifyStyle = "mention"   // channel message prefixed with <@user>
	NotifyEphemeral NotifyStyle = "ephemeral" // visible only to the user
)

// ErrorNotifier posts the fixed failure notice.
type ErrorNotifier struct {
	chat    ChatService
	text    string
	style   NotifyStyle
	timeout time.Duration
}

func NewErrorNotifier(chat ChatService, text string, style NotifyStyle, timeout time.Duration) *ErrorNotifier {
	if style == "" {
		style = NotifyPlain
	}
	return &ErrorNotifier{chat: chat, text: text, style: style, timeout: timeout}
}

// Notify posts the notice. The text is fixed and never includes the cause.
func (n *ErrorNotifier) Notify(ctx context.Context, channelID, userID string) error {
	ctx, cancel := withTimeout(ctx, n.timeout)
	defer cancel()

	msg := OutgoingMessage{Text: n.text}
	switch n.style {
	case NotifyMention:
		if userID != "" {
			msg.Text = fmt.Sprintf("<@%s> %s", userID, n.text)
		}
	case NotifyEphemeral:
		msg.EphemeralTo = userID
	}

	if err := n.chat.Post(ctx, channelID, msg); err != nil {
		return fmt.Errorf("notify %s: %w", channelID, err)
	}
	return nil
}
