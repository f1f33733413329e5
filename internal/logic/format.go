package logic

import (
	"time"

	"github.com/shopspring/decimal"

	"pricetrack-api/internal/types"
	"pricetrack-api/pkg/ingest"
	"pricetrack-api/pkg/quote"
)

// TimeLayout is how capture times are rendered in responses.
const TimeLayout = "2006-01-02 15:04:05"

func formatPrice(p decimal.NullDecimal) *string {
	if !p.Valid {
		return nil
	}
	s := p.Decimal.String()
	return &s
}

// formatAvg keeps the fixed number of places the average is rounded to.
func formatAvg(p decimal.NullDecimal) *string {
	if !p.Valid {
		return nil
	}
	s := p.Decimal.StringFixed(quote.AvgPlaces)
	return &s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

func toAssetView(v quote.AssetView) types.AssetView {
	return types.AssetView{
		Name:       v.Name,
		Code:       v.Code,
		Price:      formatPrice(v.Price),
		CapturedAt: formatTime(v.CapturedAt),
		Highest:    formatPrice(v.HighestInWindow),
		Lowest:     formatPrice(v.LowestInWindow),
		Average:    formatAvg(v.AvgInWindow),
		Signal:     v.Signal.Code(),
		Trend:      v.Signal.String(),
	}
}

func toIngestResp(res ingest.Result) *types.IngestResp {
	return &types.IngestResp{
		Attempts:   res.Attempts,
		Rows:       res.Rows,
		Stored:     res.Stored,
		Skipped:    res.Skipped,
		NullPrices: res.NullPrices,
		CapturedAt: formatTime(res.CapturedAt),
	}
}
