package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doyanishi/slack-format-bot/internal/container"
	"github.com/doyanishi/slack-format-bot/internal/relay"
)

var rewriteMessage string

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite text through the configured provider without touching Slack",
	RunE:  runRewrite,
}

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteMessage, "message", "m", "", "Text to rewrite (reads stdin when empty)")
}

func runRewrite(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text := rewriteMessage
	if text == "" {
		b, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(b)
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to rewrite: pass -m or pipe text on stdin")
	}

	provider, err := container.NewProvider(cfg)
	if err != nil {
		return err
	}
	t := relay.NewTextTransformer(provider, relay.TransformerConfig{
		Instructions: cfg.Relay.Instructions,
		Model:        cfg.MatchProvider().Model,
		MaxTokens:    cfg.Relay.MaxTokens,
		Temperature:  cfg.Relay.Temperature,
		Timeout:      cfg.Relay.CallTimeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Fprintf(os.Stderr, "  ↳ rewriting with %s...\n", provider.Name())
	res, err := t.Transform(ctx, text)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s %s\n%s\n\n", logo, cfg.Relay.DisplayName, res.Text)
	return nil
}
