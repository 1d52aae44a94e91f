package channels

import (
	"context"
	"fmt"

	slackgo "github.com/slack-go/slack"

	"github.com/doyanishi/slack-format-bot/internal/config/channel"
	"github.com/doyanishi/slack-format-bot/internal/relay"
)

// SlackClient implements relay.ChatService on top of the Slack Web API.
type SlackClient struct {
	api *slackgo.Client
}

// NewSlackClient builds a Web API client from cfg.
// Extra options (e.g. slackgo.OptionAPIURL in tests) are applied last.
func NewSlackClient(cfg *channel.SlackConfig, opts ...slackgo.Option) *SlackClient {
	var options []slackgo.Option
	if cfg.AppToken != "" {
		options = append(options, slackgo.OptionAppLevelToken(cfg.AppToken))
	}
	if cfg.Debug {
		options = append(options, slackgo.OptionDebug(true))
	}
	options = append(options, opts...)
	return &SlackClient{api: slackgo.New(cfg.BotToken, options...)}
}

// API exposes the underlying client for Socket Mode.
func (c *SlackClient) API() *slackgo.Client { return c.api }

// History returns up to limit recent top-level messages in channelID,
// in the order the platform reports them.
func (c *SlackClient) History(ctx context.Context, channelID string, limit int) ([]relay.ChannelMessage, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slackgo.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("conversations.history: %w", err)
	}

	out := make([]relay.ChannelMessage, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		out = append(out, relay.ChannelMessage{
			Timestamp: m.Timestamp,
			UserID:    m.User,
			Automated: isAutomated(m.Msg),
			Text:      m.Text,
		})
	}
	return out, nil
}

// Delete removes the message at ts.
func (c *SlackClient) Delete(ctx context.Context, channelID, ts string) error {
	if _, _, err := c.api.DeleteMessageContext(ctx, channelID, ts); err != nil {
		return fmt.Errorf("chat.delete: %w", err)
	}
	return nil
}

// Post sends msg to channelID. Messages with EphemeralTo set go through
// chat.postEphemeral and are visible only to that user.
func (c *SlackClient) Post(ctx context.Context, channelID string, msg relay.OutgoingMessage) error {
	options := []slackgo.MsgOption{slackgo.MsgOptionText(msg.Text, false)}
	if msg.Username != "" {
		options = append(options, slackgo.MsgOptionUsername(msg.Username))
	}
	if msg.IconURL != "" {
		options = append(options, slackgo.MsgOptionIconURL(msg.IconURL))
	} else if msg.IconEmoji != "" {
		options = append(options, slackgo.MsgOptionIconEmoji(msg.IconEmoji))
	}

	if msg.EphemeralTo != "" {
		if _, err := c.api.PostEphemeralContext(ctx, channelID, msg.EphemeralTo, options...); err != nil {
			return fmt.Errorf("chat.postEphemeral: %w", err)
		}
		return nil
	}
	if _, _, err := c.api.PostMessageContext(ctx, channelID, options...); err != nil {
		return fmt.Errorf("chat.postMessage: %w", err)
	}
	return nil
}

// Identity is the authenticated bot as reported by auth.test.
type Identity struct {
	Team   string
	User   string
	UserID string
	BotID  string
}

// AuthTest checks that the bot token is valid.
func (c *SlackClient) AuthTest(ctx context.Context) (Identity, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("auth.test: %w", err)
	}
	return Identity{Team: resp.Team, User: resp.User, UserID: resp.UserID, BotID: resp.BotID}, nil
}

// isAutomated reports whether m was authored by an integration rather than a person.
func isAutomated(m slackgo.Msg) bool {
	return m.BotID != "" || m.SubType == "bot_message" || m.BotProfile != nil
}
