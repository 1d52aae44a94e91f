package channels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/doyanishi/slack-format-bot/internal/config/server"
)

const shutdownTimeout = 10 * time.Second

// HTTPChannel serves the slash-command endpoint and the health probe.
type HTTPChannel struct {
	cfg *server.ServerConfig
	srv *http.Server
}

func NewHTTPChannel(cfg *server.ServerConfig, commands *SlackCommandHandler) *HTTPChannel {
	mux := http.NewServeMux()
	mux.Handle(cfg.CommandPath, commands)
	if cfg.HealthPath != "" {
		mux.HandleFunc(cfg.HealthPath, HealthHandler)
	}
	return &HTTPChannel{
		cfg: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (c *HTTPChannel) Name() string { return "http" }

// Handler exposes the routed mux.
func (c *HTTPChannel) Handler() http.Handler { return c.srv.Handler }

// Start listens until ctx is cancelled, then shuts the server down gracefully.
// Runs already dispatched are not waited for here.
func (c *HTTPChannel) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", c.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", c.srv.Addr, err)
	}
	slog.Info("http: listening", "addr", ln.Addr().String(), "path", c.cfg.CommandPath)

	errCh := make(chan error, 1)
	go func() { errCh <- c.srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := c.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	slog.Info("http: stopped")
	return ctx.Err()
}
