// Package heartbeat runs a scheduled credential probe so that a revoked
// Slack token shows up in the logs before a user hits it.
package heartbeat

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// ProbeFunc checks one external dependency. It returns a short description
// of what it reached on success.
type ProbeFunc func(ctx context.Context) (string, error)

const probeTimeout = 15 * time.Second

// Service fires probe on a cron schedule.
type Service struct {
	schedule string
	probe    ProbeFunc
	robfig   *robfigcron.Cron

	failures atomic.Int64
}

// NewService validates schedule (standard five-field cron or a descriptor
// such as "@every 30m") and returns a stopped Service.
func NewService(schedule string, probe ProbeFunc) (*Service, error) {
	s := &Service{
		schedule: schedule,
		probe:    probe,
		robfig:   robfigcron.New(),
	}
	if _, err := s.robfig.AddFunc(schedule, func() { s.Check(context.Background()) }); err != nil {
		return nil, fmt.Errorf("heartbeat schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the schedule until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.robfig.Start()
	slog.Info("heartbeat: started", "schedule", s.schedule)

	<-ctx.Done()

	<-s.robfig.Stop().Done()
	slog.Info("heartbeat: stopped")
	return ctx.Err()
}

// Check runs the probe once and logs the result.
func (s *Service) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	desc, err := s.probe(ctx)
	if err != nil {
		n := s.failures.Add(1)
		slog.Error("heartbeat: probe failed", "consecutive", n, "err", err)
		return err
	}
	if n := s.failures.Swap(0); n > 0 {
		slog.Info("heartbeat: probe recovered", "after_failures", n, "target", desc)
		return nil
	}
	slog.Debug("heartbeat: ok", "target", desc)
	return nil
}

// Failures returns the number of consecutive failed probes.
func (s *Service) Failures() int64 { return s.failures.Load() }
