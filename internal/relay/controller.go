package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/doyanishi/slack-format-bot/internal/shared/stringutils"
)

// Controller acknowledges triggers and runs the rewrite pipeline in the background.
type Controller struct {
	fetcher     *HistoryFetcher
	transformer *TextTransformer
	replacer    *MessageReplacer
	notifier    *ErrorNotifier
	ack         Ack

	// spawn starts a run's continuation; go f() outside tests.
	spawn func(f func())
	wg    sync.WaitGroup
}

func NewController(
	fetcher *HistoryFetcher,
	transformer *TextTransformer,
	replacer *MessageReplacer,
	notifier *ErrorNotifier,
	ack Ack,
) *Controller {
	if ack.ResponseType == "" {
		ack.ResponseType = "in_channel"
	}
	return &Controller{
		fetcher:     fetcher,
		transformer: transformer,
		replacer:    replacer,
		notifier:    notifier,
		ack:         ack,
		spawn:       func(f func()) { go f() },
	}
}

// Run is one in-flight pipeline execution.
type Run struct {
	ID      string
	done    chan struct{}
	outcome Outcome
}

// Done is closed when the run reaches StateDone.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run finishes and returns its outcome.
func (r *Run) Wait() Outcome {
	<-r.done
	return r.outcome
}

// Acknowledge returns the immediate response. It performs no I/O.
func (c *Controller) Acknowledge(TriggerEvent) Ack { return c.ack }

// Dispatch starts the pipeline for ev in the background.
// The run is detached from ctx cancellation: once started it always runs
// to completion or to the failure notice.
func (c *Controller) Dispatch(ctx context.Context, ev TriggerEvent) *Run {
	run := &Run{ID: uuid.NewString(), done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)

	c.wg.Add(1)
	c.spawn(func() {
		defer c.wg.Done()
		defer close(run.done)
		run.outcome = c.Execute(ctx, run.ID, ev)
	})
	return run
}

// Handle acknowledges ev and then dispatches its run.
func (c *Controller) Handle(ctx context.Context, ev TriggerEvent) (Ack, *Run) {
	ack := c.Acknowledge(ev)
	return ack, c.Dispatch(ctx, ev)
}

// Wait blocks until every dispatched run has finished.
func (c *Controller) Wait() { c.wg.Wait() }

// Execute runs the pipeline synchronously.
func (c *Controller) Execute(ctx context.Context, runID string, ev TriggerEvent) Outcome {
	log := slog.With("run_id", runID, "channel", ev.ChannelID, "user", ev.UserID)
	out := Outcome{Path: []State{StateIdle}}
	enter := func(s State) { out.Path = append(out.Path, s) }

	fail := func(stage State, err error) Outcome {
		out.Kind = OutcomeFailure
		out.Err = &StageError{Stage: stage, Err: err}
		log.Error("relay: step failed", "stage", stage, "err", err)

		enter(StateNotifying)
		if nerr := c.notifier.Notify(ctx, ev.ChannelID, ev.UserID); nerr != nil {
			log.Warn("relay: failure notice not delivered", "err", nerr)
		}
		enter(StateDone)
		return out
	}

	enter(StateFetching)
	history, err := c.fetcher.Fetch(ctx, ev.ChannelID)
	if err != nil {
		return fail(StateFetching, err)
	}

	enter(StateSelecting)
	target, err := Select(history, ev.UserID)
	if errors.Is(err, ErrNoTargetMessage) {
		log.Info("relay: nothing to rewrite", "window", len(history))
		out.Kind = OutcomeNoTarget
		enter(StateDone)
		return out
	}

	log.Debug("relay: target selected", "ts", target.Timestamp, "text", stringutils.Truncate(target.Text, 80))

	enter(StateTransforming)
	rewrite, err := c.transformer.Transform(ctx, target.Text)
	if err != nil {
		return fail(StateTransforming, err)
	}

	enter(StateReplacing)
	if err := c.replacer.Replace(ctx, ev.ChannelID, target, rewrite.Text); err != nil {
		return fail(StateReplacing, err)
	}

	log.Info("relay: message rewritten", "ts", target.Timestamp, "chars", len(rewrite.Text))
	out.Kind = OutcomeSuccess
	enter(StateDone)
	return out
}
