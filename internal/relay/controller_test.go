package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	chat *fakeChat
	llm  *fakeLLM
	ctrl *Controller
}

func newHarness(chat *fakeChat, llm *fakeLLM) harness {
	ctrl := NewController(
		NewHistoryFetcher(chat, 5, time.Second),
		NewTextTransformer(llm, TransformerConfig{
			Instructions: "make it polite",
			MaxTokens:    500,
			Temperature:  0.3,
			Timeout:      time.Second,
		}),
		NewMessageReplacer(chat, testIdentity, time.Second),
		NewErrorNotifier(chat, testErrorText, NotifyPlain, time.Second),
		Ack{ResponseType: "in_channel", Text: "構造化中..."},
	)
	return harness{chat: chat, llm: llm, ctrl: ctrl}
}

var trigger = TriggerEvent{ChannelID: "C1", UserID: "U1"}

func waitRun(t *testing.T, run *Run) Outcome {
	t.Helper()
	select {
	case <-run.Done():
		return run.Wait()
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
		return Outcome{}
	}
}

func TestHandle_HappyPath(t *testing.T) {
	h := newHarness(&fakeChat{history: []ChannelMessage{
		{Timestamp: "1.3", UserID: "U2", Text: "hi all"},
		{Timestamp: "1.2", UserID: "U1", Text: "pls send me the file asap"},
		{Timestamp: "1.1", UserID: "U1", Text: "older"},
	}}, &fakeLLM{reply: "  恐れ入りますが、ファイルをお送りいただけますでしょうか。\n"})

	ack, run := h.ctrl.Handle(context.Background(), trigger)
	assert.Equal(t, Ack{ResponseType: "in_channel", Text: "構造化中..."}, ack)
	assert.NotEmpty(t, run.ID)

	out := waitRun(t, run)
	require.Equal(t, OutcomeSuccess, out.Kind)
	require.NoError(t, out.Err)
	assert.Equal(t, []State{StateIdle, StateFetching, StateSelecting, StateTransforming, StateReplacing, StateDone}, out.Path)

	assert.Equal(t, []string{"history", "delete", "post"}, h.chat.calls)
	assert.Equal(t, []string{"1.2"}, h.chat.deleted)
	require.Len(t, h.chat.posts, 1)
	assert.Equal(t, "恐れ入りますが、ファイルをお送りいただけますでしょうか。", h.chat.posts[0].Text)
	assert.Equal(t, "あなた（構造化済み）", h.chat.posts[0].Username)
	assert.Equal(t, ":memo:", h.chat.posts[0].IconEmoji)

	require.Equal(t, 1, h.llm.callCount())
	prompt := h.llm.inputs[0]
	require.Len(t, prompt, 2)
	assert.Equal(t, "make it polite", prompt[0].Content)
	assert.Equal(t, "pls send me the file asap", prompt[1].Content)
	assert.Equal(t, 500, h.llm.opts[0].MaxTokens)
	assert.InDelta(t, 0.3, h.llm.opts[0].Temperature, 1e-9)
}

func TestHandle_NoEligibleMessage(t *testing.T) {
	h := newHarness(&fakeChat{history: []ChannelMessage{
		{Timestamp: "1.2", UserID: "U2", Text: "other"},
		{Timestamp: "1.1", UserID: "U1", Automated: true, Text: "bot"},
	}}, &fakeLLM{reply: "x"})

	_, run := h.ctrl.Handle(context.Background(), trigger)
	out := waitRun(t, run)

	assert.Equal(t, OutcomeNoTarget, out.Kind)
	assert.NoError(t, out.Err)
	assert.Equal(t, []State{StateIdle, StateFetching, StateSelecting, StateDone}, out.Path)
	assert.Equal(t, []string{"history"}, h.chat.calls)
	assert.Zero(t, h.llm.callCount())
}

func TestHandle_EmptyWindowIsSilent(t *testing.T) {
	h := newHarness(&fakeChat{}, &fakeLLM{reply: "x"})

	_, run := h.ctrl.Handle(context.Background(), trigger)
	out := waitRun(t, run)

	assert.Equal(t, OutcomeNoTarget, out.Kind)
	assert.Empty(t, h.chat.posts)
	assert.Empty(t, h.chat.deleted)
}

func TestHandle_TransformFailureNotifiesOnce(t *testing.T) {
	h := newHarness(&fakeChat{history: []ChannelMessage{
		{Timestamp: "1.1", UserID: "U1", Text: "original"},
	}}, &fakeLLM{err: errors.New("insufficient_quota")})

	_, run := h.ctrl.Handle(context.Background(), trigger)
	out := waitRun(t, run)

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, StateTransforming, FailedStage(out.Err))
	assert.ErrorContains(t, out.Err, "insufficient_quota")
	assert.Equal(t, []State{StateIdle, StateFetching, StateSelecting, StateTransforming, StateNotifying, StateDone}, out.Path)

	// original untouched, one failure notice
	assert.Empty(t, h.chat.deleted)
	assert.Equal(t, []string{"history", "post"}, h.chat.calls)
	require.Len(t, h.chat.posts, 1)
	assert.Equal(t, testErrorText, h.chat.posts[0].Text)
}

func TestHandle_EmptyCompletionIsFailure(t *testing.T) {
	h := newHarness(&fakeChat{history: []ChannelMessage{
		{Timestamp: "1.1", UserID: "U1", Text: "original"},
	}}, &fakeLLM{reply: "   "})

	out := waitRun(t, h.ctrl.Dispatch(context.Background(), trigger))
	assert.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, StateTransforming, FailedStage(out.Err))
	assert.Empty(t, h.chat.deleted)
}

func TestHandle_DeleteFailureNeverPostsRewrite(t *testing.T) {
	h := newHarness(&fakeChat{
		history: []ChannelMessage{{Timestamp: "1.1", UserID: "U1", Text: "original"}},
		delErr:  errors.New("cant_delete_message"),
	}, &fakeLLM{reply: "rewritten"})

	out := waitRun(t, h.ctrl.Dispatch(context.Background(), trigger))

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, StateReplacing, FailedStage(out.Err))
	assert.Equal(t, []string{"history", "delete", "post"}, h.chat.calls)
	require.Len(t, h.chat.posts, 1)
	assert.Equal(t, testErrorText, h.chat.posts[0].Text)
}

func TestHandle_FetchFailureNotifies(t *testing.T) {
	h := newHarness(&fakeChat{histErr: errors.New("not_in_channel")}, &fakeLLM{reply: "x"})

	out := waitRun(t, h.ctrl.Dispatch(context.Background(), trigger))

	require.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, StateFetching, FailedStage(out.Err))
	assert.Zero(t, h.llm.callCount())
	require.Len(t, h.chat.posts, 1)
	assert.Equal(t, testErrorText, h.chat.posts[0].Text)
}

func TestHandle_NoticeFailureStillEnds(t *testing.T) {
	h := newHarness(&fakeChat{
		history: []ChannelMessage{{Timestamp: "1.1", UserID: "U1", Text: "original"}},
		delErr:  errors.New("cant_delete_message"),
		postErr: errors.New("channel_not_found"),
	}, &fakeLLM{reply: "rewritten"})

	out := waitRun(t, h.ctrl.Dispatch(context.Background(), trigger))
	assert.Equal(t, OutcomeFailure, out.Kind)
	assert.Equal(t, StateDone, out.Path[len(out.Path)-1])
}

func TestAcknowledge_PrecedesExternalCalls(t *testing.T) {
	h := newHarness(&fakeChat{history: []ChannelMessage{
		{Timestamp: "1.1", UserID: "U1", Text: "original"},
	}}, &fakeLLM{reply: "rewritten"})

	var pending func()
	h.ctrl.spawn = func(f func()) { pending = f }

	ack, run := h.ctrl.Handle(context.Background(), trigger)
	assert.Equal(t, "構造化中...", ack.Text)
	assert.Zero(t, h.chat.callCount())
	assert.Zero(t, h.llm.callCount())

	select {
	case <-run.Done():
		t.Fatal("run finished before it was started")
	default:
	}

	require.NotNil(t, pending)
	pending()
	assert.Equal(t, OutcomeSuccess, run.Wait().Kind)
	assert.Equal(t, 1, h.llm.callCount())
}

func TestDispatch_SurvivesCallerCancellation(t *testing.T) {
	h := newHarness(&fakeChat{history: []ChannelMessage{
		{Timestamp: "1.1", UserID: "U1", Text: "original"},
	}}, &fakeLLM{reply: "rewritten"})

	var pending func()
	h.ctrl.spawn = func(f func()) { pending = f }

	ctx, cancel := context.WithCancel(context.Background())
	run := h.ctrl.Dispatch(ctx, trigger)
	cancel()
	pending()

	assert.Equal(t, OutcomeSuccess, run.Wait().Kind)
}

func TestController_WaitDrainsRuns(t *testing.T) {
	h := newHarness(&fakeChat{history: []ChannelMessage{
		{Timestamp: "1.1", UserID: "U1", Text: "original"},
	}}, &fakeLLM{reply: "rewritten"})

	runs := make([]*Run, 0, 3)
	for i := 0; i < 3; i++ {
		runs = append(runs, h.ctrl.Dispatch(context.Background(), trigger))
	}
	h.ctrl.Wait()

	for _, r := range runs {
		select {
		case <-r.Done():
		default:
			t.Fatal("run still pending after Wait")
		}
	}
	assert.Equal(t, 3, h.llm.callCount())
}

func TestNewController_DefaultResponseType(t *testing.T) {
	h := newHarness(&fakeChat{}, &fakeLLM{})
	c := NewController(h.ctrl.fetcher, h.ctrl.transformer, h.ctrl.replacer, h.ctrl.notifier, Ack{Text: "working"})
	assert.Equal(t, "in_channel", c.Acknowledge(trigger).ResponseType)
}
