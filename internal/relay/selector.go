package relay

// Select returns the newest message written by userID that is not automated.
//
// messages must already be ordered newest first, as HistoryFetcher.Fetch
// returns them; Select keeps that order and takes the first match.
// ErrNoTargetMessage is returned when nothing qualifies.
func Select(messages []ChannelMessage, userID string) (ChannelMessage, error) {
	if userID == "" {
		return ChannelMessage{}, ErrNoTargetMessage
	}
	for _, m := range messages {
		if m.UserID == userID && !m.Automated {
			return m, nil
		}
	}
	return ChannelMessage{}, ErrNoTargetMessage
}
