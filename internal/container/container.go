// Package container wires slack-format-bot services using go.uber.org/dig.
package container

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"github.com/doyanishi/slack-format-bot/internal/channels"
	"github.com/doyanishi/slack-format-bot/internal/config"
	"github.com/doyanishi/slack-format-bot/internal/heartbeat"
	"github.com/doyanishi/slack-format-bot/internal/providers"
	"github.com/doyanishi/slack-format-bot/internal/relay"
)

// Container holds the resolved service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider   providers.LLMProvider
	slack      *channels.SlackClient
	controller *relay.Controller
	channels   *channels.Manager
	heartbeat  *heartbeat.Service
}

func (c *Container) Provider() providers.LLMProvider { return c.provider }
func (c *Container) Slack() *channels.SlackClient    { return c.slack }
func (c *Container) Controller() *relay.Controller   { return c.controller }
func (c *Container) Channels() *channels.Manager     { return c.channels }

// Heartbeat is nil when heartbeat.enabled is false.
func (c *Container) Heartbeat() *heartbeat.Service { return c.heartbeat }

// New builds and wires all services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	constructors := []any{
		func() *config.Config { return cfg },
		newProvider,
		newSlackClient,
		newFetcher,
		newTransformer,
		newReplacer,
		newNotifier,
		newController,
		newChannelManager,
		newHeartbeat,
	}
	for _, fn := range constructors {
		if err := d.Provide(fn); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		provider providers.LLMProvider,
		slack *channels.SlackClient,
		controller *relay.Controller,
		mgr *channels.Manager,
		hb *heartbeat.Service,
	) {
		result = &Container{
			provider:   provider,
			slack:      slack,
			controller: controller,
			channels:   mgr,
			heartbeat:  hb,
		}
	})
	return result, err
}

// NewProvider builds only the LLM provider, for commands that never touch Slack.
func NewProvider(cfg *config.Config) (providers.LLMProvider, error) {
	return newProvider(cfg)
}

func newProvider(cfg *config.Config) (providers.LLMProvider, error) {
	match := cfg.MatchProvider()
	spec := providers.FindByName(match.Name)
	if match.APIKey == "" && (spec == nil || !spec.IsLocal) {
		return nil, fmt.Errorf("no API key configured for provider %q; set OPENAI_API_KEY or edit %s", match.Name, config.ConfigPath())
	}
	return providers.New(providers.Params{
		APIKey:       match.APIKey,
		APIBase:      match.APIBase,
		ExtraHeaders: cfg.Provider.ExtraHeaders,
		DefaultModel: match.Model,
		ProviderName: match.Name,
	}), nil
}

func newSlackClient(cfg *config.Config) *channels.SlackClient {
	return channels.NewSlackClient(&cfg.Slack)
}

func newFetcher(cfg *config.Config, slack *channels.SlackClient) *relay.HistoryFetcher {
	return relay.NewHistoryFetcher(slack, cfg.Relay.HistoryLimit, cfg.Relay.CallTimeout())
}

func newTransformer(cfg *config.Config, p providers.LLMProvider) *relay.TextTransformer {
	return relay.NewTextTransformer(p, relay.TransformerConfig{
		Instructions: cfg.Relay.Instructions,
		Model:        cfg.MatchProvider().Model,
		MaxTokens:    cfg.Relay.MaxTokens,
		Temperature:  cfg.Relay.Temperature,
		Timeout:      cfg.Relay.CallTimeout(),
	})
}

func newReplacer(cfg *config.Config, slack *channels.SlackClient) *relay.MessageReplacer {
	return relay.NewMessageReplacer(slack, relay.Identity{
		DisplayName: cfg.Relay.DisplayName,
		IconEmoji:   cfg.Relay.IconEmoji,
		IconURL:     cfg.Relay.IconURL,
	}, cfg.Relay.CallTimeout())
}

func newNotifier(cfg *config.Config, slack *channels.SlackClient) *relay.ErrorNotifier {
	return relay.NewErrorNotifier(slack, cfg.Relay.ErrorText,
		relay.NotifyStyle(cfg.Relay.NotifyStyle), cfg.Relay.CallTimeout())
}

func newController(
	cfg *config.Config,
	f *relay.HistoryFetcher,
	t *relay.TextTransformer,
	r *relay.MessageReplacer,
	n *relay.ErrorNotifier,
) *relay.Controller {
	return relay.NewController(f, t, r, n, relay.Ack{
		ResponseType: cfg.Relay.AckResponseType,
		Text:         cfg.Relay.AckText,
	})
}

func newChannelManager(cfg *config.Config, slack *channels.SlackClient, c *relay.Controller) *channels.Manager {
	return channels.NewManager(cfg, slack, c)
}

func newHeartbeat(cfg *config.Config, slack *channels.SlackClient) (*heartbeat.Service, error) {
	if !cfg.Heartbeat.Enabled {
		return nil, nil
	}
	return heartbeat.NewService(cfg.Heartbeat.Schedule, func(ctx context.Context) (string, error) {
		id, err := slack.AuthTest(ctx)
		if err != nil {
			return "", err
		}
		return id.Team + "/" + id.User, nil
	})
}
