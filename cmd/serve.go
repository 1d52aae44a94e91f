package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/doyanishi/slack-format-bot/internal/container"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the slash-command endpoint",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config (%s):\n%w", resolvedConfigPath(), err)
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s Starting slack-format-bot (provider %s, model %s)...\n",
		logo, c.Provider().Name(), cfg.Provider.Model)

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	channelMgr := c.Channels()
	fmt.Printf("✓ Channels enabled: %s\n", strings.Join(channelMgr.EnabledChannels(), ", "))

	g.Go(func() error { return channelMgr.StartAll(gctx) })
	if hb := c.Heartbeat(); hb != nil {
		g.Go(func() error { return hb.Start(gctx) })
	}

	fmt.Printf("%s Running. Press Ctrl+C to stop.\n", logo)

	err = g.Wait()

	fmt.Println("\nWaiting for in-flight rewrites...")
	c.Controller().Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "serve error: %v\n", err)
		return err
	}
	fmt.Println("Shutdown complete.")
	return nil
}
