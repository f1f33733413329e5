package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/pkg/quote"
)

const (
	DefaultMaxAttempts    = 3
	DefaultRetryDelay     = 5 * time.Second
	DefaultExtractTimeout = 30 * time.Second
)

//go:generate mockgen -package=ingest -destination=mock_writer_test.go -source=ingestor.go
//go:generate mockgen -package=ingest -destination=mock_extractor_test.go pricetrack-api/pkg/quote Extractor

// Writer is the write side of quote.Store used by ingestion.
type Writer interface {
	WriteCycle(ctx context.Context, readings []quote.Reading) error
}

// Result summarises one successful ingestion cycle.
type Result struct {
	Attempts   int       `json:"attempts"`
	Rows       int       `json:"rows"`
	Stored     int       `json:"stored"`
	Skipped    int       `json:"skipped"`
	NullPrices int       `json:"null_prices"`
	CapturedAt time.Time `json:"captured_at"`
}

// Policy bounds the retry loop.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Ingestor runs extract -> normalize -> store cycles, retrying whole cycles.
type Ingestor struct {
	extractor      quote.Extractor
	writer         Writer
	normalizer     *quote.Normalizer
	policy         Policy
	extractTimeout time.Duration
	wait           func(ctx context.Context, d time.Duration) bool
}

// Option customises an Ingestor.
type Option func(*Ingestor)

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *quote.Normalizer) Option {
	return func(i *Ingestor) {
		if n != nil {
			i.normalizer = n
		}
	}
}

// WithPolicy sets the default retry policy used by Ingest.
func WithPolicy(p Policy) Option {
	return func(i *Ingestor) {
		i.policy = p
	}
}

// WithExtractTimeout bounds each Extractor call.
func WithExtractTimeout(d time.Duration) Option {
	return func(i *Ingestor) {
		if d > 0 {
			i.extractTimeout = d
		}
	}
}

// NewIngestor wires an ingestor over the given collaborators.
func NewIngestor(extractor quote.Extractor, writer Writer, opts ...Option) (*Ingestor, error) {
	if extractor == nil {
		return nil, errors.New("ingest: extractor is nil")
	}
	if writer == nil {
		return nil, errors.New("ingest: writer is nil")
	}
	i := &Ingestor{
		extractor:      extractor,
		writer:         writer,
		normalizer:     quote.NewNormalizer(),
		policy:         Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay},
		extractTimeout: DefaultExtractTimeout,
		wait:           sleepWithContext,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Ingest runs one cycle under the configured policy.
func (i *Ingestor) Ingest(ctx context.Context) (Result, error) {
	return i.IngestWithRetry(ctx, i.policy.MaxAttempts, i.policy.Delay)
}

// IngestWithRetry runs up to maxAttempts sequential attempts separated by
// delay. When every attempt fails a *FatalError is returned; cancellation of
// ctx is returned as-is.
func (i *Ingestor) IngestWithRetry(ctx context.Context, maxAttempts int, delay time.Duration) (Result, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if delay < 0 {
		delay = 0
	}
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err := i.IngestOnce(ctx)
		observeAttempt(err)
		if err == nil {
			res.Attempts = attempt
			observeCycle(nil)
			observeRows(res)
			logx.WithContext(ctx).Infof("ingest: cycle ok attempt=%d rows=%d stored=%d skipped=%d null_prices=%d",
				attempt, res.Rows, res.Stored, res.Skipped, res.NullPrices)
			return res, nil
		}
		if ctx.Err() != nil {
			return Result{Attempts: attempt}, ctx.Err()
		}
		lastErr = err
		logx.WithContext(ctx).Errorf("ingest: attempt %d/%d failed: %v", attempt, maxAttempts, err)
		if attempt == maxAttempts {
			break
		}
		if !i.wait(ctx, delay) {
			return Result{Attempts: attempt}, ctx.Err()
		}
	}
	observeCycle(lastErr)
	return Result{Attempts: maxAttempts}, &FatalError{Attempts: maxAttempts, Last: lastErr}
}

// IngestOnce performs a single extract -> normalize -> store attempt. Any
// failure is reported as a *TransientError and nothing is written.
func (i *Ingestor) IngestOnce(ctx context.Context) (Result, error) {
	extractCtx, cancel := context.WithTimeout(ctx, i.extractTimeout)
	rows, err := i.extractor.Extract(extractCtx)
	cancel()
	if err != nil {
		return Result{}, transient(StageExtract, err)
	}
	if len(rows) == 0 {
		return Result{}, transient(StageExtract, ErrNoRows)
	}

	readings, skipped := i.normalizer.NormalizeAll(rows)
	for _, skipErr := range skipped {
		logx.WithContext(ctx).Infof("ingest: skipping row: %v", skipErr)
	}
	if len(readings) == 0 {
		return Result{}, transient(StageNormalize, fmt.Errorf("%w: all %d rows rejected", ErrNoRows, len(rows)))
	}

	if err := i.writer.WriteCycle(ctx, readings); err != nil {
		return Result{}, transient(StageStore, err)
	}

	res := Result{
		Rows:       len(rows),
		Stored:     len(readings),
		Skipped:    len(skipped),
		CapturedAt: readings[0].CapturedAt,
	}
	for _, r := range readings {
		if !r.Price.Valid {
			res.NullPrices++
		}
	}
	return res, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
