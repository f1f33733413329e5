package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one positional row of locale-formatted text fields as produced by an Extractor.
type RawRow []string

// Reading is a normalized observation of a single asset.
type Reading struct {
	Name       string              // join key across latest/history
	Code       string              // ticker, informational only
	Price      decimal.NullDecimal // invalid when the source text did not parse
	CapturedAt time.Time           // ingestion time, not exchange time
}

// HistoryEntry is an append-only price observation.
type HistoryEntry struct {
	Name       string
	Price      decimal.NullDecimal
	CapturedAt time.Time
}

// LatestSnapshot is the most recent reading kept per asset name.
type LatestSnapshot struct {
	Name       string
	Code       string
	Price      decimal.NullDecimal
	CapturedAt time.Time
}

// Entry converts a reading into the history row it produces.
func (r Reading) Entry() HistoryEntry {
	return HistoryEntry{Name: r.Name, Price: r.Price, CapturedAt: r.CapturedAt}
}

// Extractor supplies one raw row per tracked asset per call.
type Extractor interface {
	Extract(ctx context.Context) ([]RawRow, error)
}

// Store persists readings and serves the latest/history views.
type Store interface {
	// WriteCycle appends every reading to history and upserts the latest
	// snapshot for each name. A failure means nothing from the batch is kept.
	WriteCycle(ctx context.Context, readings []Reading) error
	// ReadLatestAll returns one snapshot per asset, ordered by name.
	ReadLatestAll(ctx context.Context) ([]LatestSnapshot, error)
	// ReadHistory returns up to limit entries for name, newest first.
	ReadHistory(ctx context.Context, name string, limit int) ([]HistoryEntry, error)
	// ReadHistorySince returns entries captured at or after since, newest first.
	ReadHistorySince(ctx context.Context, name string, since time.Time) ([]HistoryEntry, error)
}
