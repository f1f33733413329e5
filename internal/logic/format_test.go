package logic

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"pricetrack-api/pkg/quote"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestToAssetViewFormatsAverageWithFixedPlaces(t *testing.T) {
	view := toAssetView(quote.AssetView{
		Name:            "Bitcoin",
		Code:            "BTC",
		Price:           price("20"),
		CapturedAt:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		HighestInWindow: price("20"),
		LowestInWindow:  price("10"),
		AvgInWindow:     price("15"),
		Signal:          quote.Buy,
	})

	require.Equal(t, "20", *view.Price)
	require.Equal(t, "20", *view.Highest)
	require.Equal(t, "10", *view.Lowest)
	require.Equal(t, "15.0000", *view.Average)
	require.Equal(t, "2024-03-01 12:00:00", view.CapturedAt)
	require.Equal(t, "B", view.Signal)
}

func TestToAssetViewLeavesMissingMetricsNull(t *testing.T) {
	view := toAssetView(quote.AssetView{Name: "Tether"})
	require.Nil(t, view.Price)
	require.Nil(t, view.Average)
	require.Empty(t, view.CapturedAt)
}
