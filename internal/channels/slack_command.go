package channels

import (
	"io"
	"log/slog"
	"net/http"

	slackgo "github.com/slack-go/slack"

	"github.com/doyanishi/slack-format-bot/internal/relay"
)

// SlackCommandHandler serves the slash-command endpoint.
type SlackCommandHandler struct {
	Base
	signingSecret string
}

// NewSlackCommandHandler returns the endpoint handler. An empty
// signingSecret disables request signature verification.
func NewSlackCommandHandler(d Dispatcher, signingSecret string) *SlackCommandHandler {
	return &SlackCommandHandler{Base: NewBase("http", d), signingSecret: signingSecret}
}

func (h *SlackCommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
		return
	}

	var verifier *slackgo.SecretsVerifier
	if h.signingSecret != "" {
		sv, err := slackgo.NewSecretsVerifier(r.Header, h.signingSecret)
		if err != nil {
			slog.Warn("slack: rejected unsigned request", "err", err)
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid signature"})
			return
		}
		verifier = &sv
		r.Body = io.NopCloser(io.TeeReader(r.Body, verifier))
	}

	cmd, err := slackgo.SlashCommandParse(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid command payload"})
		return
	}
	if verifier != nil {
		if err := verifier.Ensure(); err != nil {
			slog.Warn("slack: signature mismatch", "err", err)
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid signature"})
			return
		}
	}

	_, err = h.HandleCommand(r.Context(), cmd, func(ack relay.Ack) {
		writeJSON(w, http.StatusOK, ack)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	}
}

// HealthHandler answers liveness probes.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
