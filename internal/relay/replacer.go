package relay

import (
	"context"
	"fmt"
	"time"
)

// Identity is the display identity rewritten messages are posted under.
type Identity struct {
	DisplayName string
	IconEmoji   string
	IconURL     string
}

// MessageReplacer swaps the original message for its rewrite.
type MessageReplacer struct {
	chat     ChatService
	identity Identity
	timeout  time.Duration
}

func NewMessageReplacer(chat ChatService, identity Identity, timeout time.Duration) *MessageReplacer {
	return &MessageReplacer{chat: chat, identity: identity, timeout: timeout}
}

// Replace deletes original, then posts newText under the rewrite identity.
// The post happens only after the delete call succeeded; a failed delete
// returns immediately so the channel never shows both versions.
func (r *MessageReplacer) Replace(ctx context.Context, channelID string, original ChannelMessage, newText string) error {
	delCtx, cancel := withTimeout(ctx, r.timeout)
	err := r.chat.Delete(delCtx, channelID, original.Timestamp)
	cancel()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", channelID, original.Timestamp, err)
	}

	postCtx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.chat.Post(postCtx, channelID, OutgoingMessage{
		Text:      newText,
		Username:  r.identity.DisplayName,
		IconEmoji: r.identity.IconEmoji,
		IconURL:   r.identity.IconURL,
	}); err != nil {
		return fmt.Errorf("post rewrite to %s: %w", channelID, err)
	}
	return nil
}
