package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultWindow bounds the entries that feed ComputeMetrics.
	DefaultWindow = time.Hour
	// AvgPlaces is the number of fractional digits kept in Metrics.Avg.
	AvgPlaces = 4
)

// Metrics holds windowed statistics; every field is invalid when no priced
// entry falls inside the window.
type Metrics struct {
	Max decimal.NullDecimal
	Min decimal.NullDecimal
	Avg decimal.NullDecimal
}

// ComputeMetrics aggregates the priced entries captured within window of now.
// A non-positive window falls back to DefaultWindow.
func ComputeMetrics(history []HistoryEntry, window time.Duration, now time.Time) Metrics {
	if window <= 0 {
		window = DefaultWindow
	}
	var (
		out   Metrics
		sum   decimal.Decimal
		count int64
	)
	for _, entry := range history {
		if !entry.Price.Valid || now.Sub(entry.CapturedAt) > window {
			continue
		}
		price := entry.Price.Decimal
		if !out.Max.Valid || price.GreaterThan(out.Max.Decimal) {
			out.Max = decimal.NullDecimal{Decimal: price, Valid: true}
		}
		if !out.Min.Valid || price.LessThan(out.Min.Decimal) {
			out.Min = decimal.NullDecimal{Decimal: price, Valid: true}
		}
		sum = sum.Add(price)
		count++
	}
	if count == 0 {
		return Metrics{}
	}
	avg := sum.Div(decimal.NewFromInt(count)).Round(AvgPlaces)
	out.Avg = decimal.NullDecimal{Decimal: avg, Valid: true}
	return out
}
