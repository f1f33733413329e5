package ingest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) Ingest(context.Context) (Result, error) {
	n := r.calls.Add(1)
	return Result{Attempts: int(n)}, r.err
}

func TestSchedulerRunsImmediatelyAndOnInterval(t *testing.T) {
	runner := &countingRunner{err: &FatalError{Attempts: 3, Last: errors.New("down")}}
	var seen atomic.Int32
	s := NewScheduler(runner, 10*time.Millisecond, func(_ Result, err error) {
		assert.ErrorIs(t, err, ErrFatalIngestion)
		seen.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return runner.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	require.GreaterOrEqual(t, seen.Load(), int32(3))
}

func TestSchedulerDefaultsInterval(t *testing.T) {
	s := NewScheduler(&countingRunner{}, 0, nil)
	require.Equal(t, DefaultInterval, s.interval)

	var nilScheduler *Scheduler
	nilScheduler.Run(context.Background())
}

func TestSchedulerSkipsWhenCancelled(t *testing.T) {
	runner := &countingRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewScheduler(runner, time.Hour, nil).Run(ctx)
	require.Zero(t, runner.calls.Load())
}
