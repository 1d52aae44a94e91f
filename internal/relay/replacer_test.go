package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{DisplayName: "あなた（構造化済み）", IconEmoji: ":memo:"}

func TestReplace_DeletesThenPosts(t *testing.T) {
	chat := &fakeChat{}
	r := NewMessageReplacer(chat, testIdentity, 0)

	err := r.Replace(context.Background(), "C1", ChannelMessage{Timestamp: "1.1", UserID: "U1"}, "rewritten")
	require.NoError(t, err)

	assert.Equal(t, []string{"delete", "post"}, chat.calls)
	assert.Equal(t, []string{"1.1"}, chat.deleted)
	require.Len(t, chat.posts, 1)
	assert.Equal(t, OutgoingMessage{
		Text:      "rewritten",
		Username:  "あなた（構造化済み）",
		IconEmoji: ":memo:",
	}, chat.posts[0])
}

func TestReplace_DeleteFailureSkipsPost(t *testing.T) {
	chat := &fakeChat{delErr: errors.New("cant_delete_message")}
	r := NewMessageReplacer(chat, testIdentity, 0)

	err := r.Replace(context.Background(), "C1", ChannelMessage{Timestamp: "1.1"}, "rewritten")
	require.Error(t, err)
	assert.Equal(t, []string{"delete"}, chat.calls)
	assert.Empty(t, chat.posts)
}

func TestReplace_PostFailureSurfaces(t *testing.T) {
	chat := &fakeChat{postErr: errors.New("not_in_channel")}
	err := NewMessageReplacer(chat, testIdentity, 0).
		Replace(context.Background(), "C1", ChannelMessage{Timestamp: "1.1"}, "rewritten")
	assert.ErrorContains(t, err, "not_in_channel")
}
