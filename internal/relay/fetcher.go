package relay

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultHistoryLimit is the number of recent messages inspected per run.
const DefaultHistoryLimit = 5

// HistoryFetcher reads the recent window of a channel.
type HistoryFetcher struct {
	chat    ChatService
	limit   int
	timeout time.Duration
}

func NewHistoryFetcher(chat ChatService, limit int, timeout time.Duration) *HistoryFetcher {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryFetcher{chat: chat, limit: limit, timeout: timeout}
}

// Fetch returns at most limit messages, newest first.
// On error nothing is returned.
func (f *HistoryFetcher) Fetch(ctx context.Context, channelID string) ([]ChannelMessage, error) {
	ctx, cancel := withTimeout(ctx, f.timeout)
	defer cancel()

	msgs, err := f.chat.History(ctx, channelID, f.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch history of %s: %w", channelID, err)
	}

	out := make([]ChannelMessage, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(i, j int) bool {
		return compareTimestamps(out[i].Timestamp, out[j].Timestamp) > 0
	})
	if len(out) > f.limit {
		out = out[:f.limit]
	}
	return out, nil
}

// compareTimestamps orders Slack "seconds.micros" timestamps numerically.
func compareTimestamps(a, b string) int {
	as, af, _ := strings.Cut(a, ".")
	bs, bf, _ := strings.Cut(b, ".")
	if c := compareDigits(as, bs); c != 0 {
		return c
	}
	// Right-pad fractions so "5" and "500000" compare as equal magnitudes.
	for len(af) < len(bf) {
		af += "0"
	}
	for len(bf) < len(af) {
		bf += "0"
	}
	return strings.Compare(af, bf)
}

func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
