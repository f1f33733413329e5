package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	latest     []LatestSnapshot
	history    map[string][]HistoryEntry
	latestErr  error
	historyErr error
	limits     map[string]int
	since      time.Time
}

func (f *fakeReader) ReadLatestAll(context.Context) ([]LatestSnapshot, error) {
	return f.latest, f.latestErr
}

func (f *fakeReader) ReadHistory(_ context.Context, name string, limit int) ([]HistoryEntry, error) {
	if f.limits == nil {
		f.limits = map[string]int{}
	}
	f.limits[name] = limit
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	rows := f.history[name]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeReader) ReadHistorySince(_ context.Context, name string, since time.Time) ([]HistoryEntry, error) {
	f.since = since
	var out []HistoryEntry
	for _, e := range f.history[name] {
		if !e.CapturedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, f.historyErr
}

func TestFacadeGetAssetViews(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reader := &fakeReader{
		latest: []LatestSnapshot{
			{Name: "Bitcoin", Code: "BTC", Price: decimal.NewNullDecimal(decimal.NewFromInt(105)), CapturedAt: now.Add(-time.Minute)},
			{Name: "Ethereum", Code: "ETH", CapturedAt: now.Add(-time.Minute)},
		},
		history: map[string][]HistoryEntry{
			"Bitcoin": {
				priced(105, now.Add(-time.Minute)),
				priced(100, now.Add(-20*time.Minute)),
				priced(50, now.Add(-3*time.Hour)),
			},
			"Ethereum": {
				unpriced(now.Add(-time.Minute)),
			},
		},
	}
	f := NewFacade(reader, WithFacadeClock(func() time.Time { return now }), WithHistoryLimit(10))

	views, err := f.GetAssetViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	btc := views[0]
	require.Equal(t, "Bitcoin", btc.Name)
	require.Equal(t, "BTC", btc.Code)
	require.Equal(t, Buy, btc.Signal)
	require.Equal(t, "105", btc.HighestInWindow.Decimal.String())
	require.Equal(t, "100", btc.LowestInWindow.Decimal.String())
	require.Equal(t, "102.5", btc.AvgInWindow.Decimal.String())

	eth := views[1]
	require.Equal(t, "Ethereum", eth.Name)
	require.False(t, eth.Price.Valid)
	require.Equal(t, Neutral, eth.Signal)
	require.False(t, eth.HighestInWindow.Valid)
	require.False(t, eth.AvgInWindow.Valid)

	require.Equal(t, 10, reader.limits["Bitcoin"])
}

func TestFacadePropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")

	f := NewFacade(&fakeReader{latestErr: boom})
	_, err := f.GetAssetViews(context.Background())
	require.ErrorIs(t, err, boom)

	f = NewFacade(&fakeReader{
		latest:     []LatestSnapshot{{Name: "Bitcoin"}},
		historyErr: boom,
	})
	_, err = f.GetAssetViews(context.Background())
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "Bitcoin")
}

func TestFacadeHistorySince(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reader := &fakeReader{history: map[string][]HistoryEntry{
		"Bitcoin": {
			priced(3, now.Add(-10*time.Minute)),
			priced(2, now.Add(-50*time.Minute)),
			priced(1, now.Add(-2*time.Hour)),
		},
	}}
	f := NewFacade(reader, WithFacadeClock(func() time.Time { return now }))

	entries, err := f.HistorySince(context.Background(), "Bitcoin", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.True(t, reader.since.Equal(now.Add(-time.Hour)))

	entries, err = f.HistorySince(context.Background(), "Bitcoin", 15*time.Minute)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFacadeDefaults(t *testing.T) {
	f := NewFacade(&fakeReader{}, WithWindow(-time.Second), WithHistoryLimit(0))
	require.Equal(t, DefaultWindow, f.Window())
	require.Equal(t, DefaultHistoryLimit, f.limit)
}
