package ingest

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// DefaultInterval separates scheduled cycles when none is configured.
const DefaultInterval = 5 * time.Minute

// Runner is satisfied by *Ingestor.
type Runner interface {
	Ingest(ctx context.Context) (Result, error)
}

// Scheduler triggers an ingestion cycle immediately and then on a fixed period.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	onCycle  func(Result, error)
}

// NewScheduler constructs a scheduler; onCycle may be nil.
func NewScheduler(runner Runner, interval time.Duration, onCycle func(Result, error)) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{runner: runner, interval: interval, onCycle: onCycle}
}

// Run blocks until ctx is cancelled. Fatal cycles are logged and the loop
// carries on with the next tick.
func (s *Scheduler) Run(ctx context.Context) {
	if s == nil || s.runner == nil {
		return
	}
	s.tick(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	res, err := s.runner.Ingest(ctx)
	if err != nil && ctx.Err() == nil {
		logx.WithContext(ctx).Errorf("ingest scheduler: cycle failed: %v", err)
	}
	if s.onCycle != nil {
		s.onCycle(res, err)
	}
}
