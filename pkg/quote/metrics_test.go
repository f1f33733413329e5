package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestComputeMetricsWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := []HistoryEntry{
		priced(10, now.Add(-10*time.Minute)),
		priced(20, now.Add(-50*time.Minute)),
		priced(5, now.Add(-90*time.Minute)),
	}

	m := ComputeMetrics(history, time.Hour, now)
	require.True(t, m.Max.Valid)
	require.True(t, m.Min.Valid)
	require.True(t, m.Avg.Valid)
	require.True(t, decimal.NewFromInt(20).Equal(m.Max.Decimal))
	require.True(t, decimal.NewFromInt(10).Equal(m.Min.Decimal))
	require.Equal(t, "15.0000", m.Avg.Decimal.StringFixed(AvgPlaces))
}

func TestComputeMetricsEmptyWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := []HistoryEntry{priced(5, now.Add(-2*time.Hour))}

	require.Equal(t, Metrics{}, ComputeMetrics(history, time.Hour, now))
	require.Equal(t, Metrics{}, ComputeMetrics(nil, time.Hour, now))
}

func TestComputeMetricsIgnoresUnpriced(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := []HistoryEntry{
		unpriced(now.Add(-time.Minute)),
		priced(7, now.Add(-2*time.Minute)),
		unpriced(now.Add(-3*time.Minute)),
	}
	m := ComputeMetrics(history, time.Hour, now)
	require.Equal(t, "7", m.Max.Decimal.String())
	require.Equal(t, "7", m.Min.Decimal.String())
	require.Equal(t, "7", m.Avg.Decimal.String())

	require.Equal(t, Metrics{}, ComputeMetrics([]HistoryEntry{unpriced(now)}, time.Hour, now))
}

func TestComputeMetricsBoundaryAndRounding(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := []HistoryEntry{
		priced(1, now),
		priced(1, now.Add(-time.Hour)), // exactly on the boundary is kept
		priced(2, now.Add(-30*time.Minute)),
	}
	m := ComputeMetrics(history, time.Hour, now)
	// 4/3 rounds to 1.3333
	require.Equal(t, "1.3333", m.Avg.Decimal.String())

	m = ComputeMetrics(history, 0, now)
	require.Equal(t, "1.3333", m.Avg.Decimal.String(), "zero window uses the default hour")
}
