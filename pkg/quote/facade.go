package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHistoryLimit caps the history rows read per asset for a view.
const DefaultHistoryLimit = 100

// AssetView is the per-asset payload handed to the presentation layer.
type AssetView struct {
	Name            string
	Code            string
	Price           decimal.NullDecimal
	CapturedAt      time.Time
	HighestInWindow decimal.NullDecimal
	LowestInWindow  decimal.NullDecimal
	AvgInWindow     decimal.NullDecimal
	Signal          Signal
}

// Reader is the read side of Store used by the facade.
type Reader interface {
	ReadLatestAll(ctx context.Context) ([]LatestSnapshot, error)
	ReadHistory(ctx context.Context, name string, limit int) ([]HistoryEntry, error)
	ReadHistorySince(ctx context.Context, name string, since time.Time) ([]HistoryEntry, error)
}

// Facade composes store reads with the signal and metrics computations.
type Facade struct {
	reader Reader
	window time.Duration
	limit  int
	now    func() time.Time
}

// FacadeOption customises a Facade.
type FacadeOption func(*Facade)

// WithWindow overrides the metrics window.
func WithWindow(window time.Duration) FacadeOption {
	return func(f *Facade) {
		if window > 0 {
			f.window = window
		}
	}
}

// WithHistoryLimit overrides the per-asset history limit.
func WithHistoryLimit(limit int) FacadeOption {
	return func(f *Facade) {
		if limit > 0 {
			f.limit = limit
		}
	}
}

// WithFacadeClock overrides the clock used as "now" for metrics.
func WithFacadeClock(now func() time.Time) FacadeOption {
	return func(f *Facade) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFacade constructs a Facade over reader.
func NewFacade(reader Reader, opts ...FacadeOption) *Facade {
	f := &Facade{
		reader: reader,
		window: DefaultWindow,
		limit:  DefaultHistoryLimit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Window reports the metrics window in use.
func (f *Facade) Window() time.Duration { return f.window }

// GetAssetViews builds one view per asset in the store's enumeration order.
func (f *Facade) GetAssetViews(ctx context.Context) ([]AssetView, error) {
	latest, err := f.reader.ReadLatestAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read latest: %w", err)
	}
	now := f.now()
	views := make([]AssetView, 0, len(latest))
	for _, snap := range latest {
		history, err := f.reader.ReadHistory(ctx, snap.Name, f.limit)
		if err != nil {
			return nil, fmt.Errorf("read history %s: %w", snap.Name, err)
		}
		metrics := ComputeMetrics(history, f.window, now)
		views = append(views, AssetView{
			Name:            snap.Name,
			Code:            snap.Code,
			Price:           snap.Price,
			CapturedAt:      snap.CapturedAt,
			HighestInWindow: metrics.Max,
			LowestInWindow:  metrics.Min,
			AvgInWindow:     metrics.Avg,
			Signal:          GenerateSignal(history),
		})
	}
	return views, nil
}

// HistorySince returns the entries for name captured within the trailing
// interval, newest first. A non-positive interval uses the metrics window.
func (f *Facade) HistorySince(ctx context.Context, name string, within time.Duration) ([]HistoryEntry, error) {
	if within <= 0 {
		within = f.window
	}
	entries, err := f.reader.ReadHistorySince(ctx, name, f.now().Add(-within))
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", name, err)
	}
	return entries, nil
}
