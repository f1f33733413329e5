// Package static serves a fixed set of rows, for dry runs and demos.
package static

import (
	"context"
	"errors"

	"pricetrack-api/pkg/extractor"
	"pricetrack-api/pkg/quote"
)

// Extractor returns a copy of its rows on every call.
type Extractor struct {
	rows []quote.RawRow
}

// New constructs a static extractor.
func New(rows []quote.RawRow) *Extractor {
	return &Extractor{rows: rows}
}

func init() {
	extractor.Register("static", func(cfg *extractor.Config) (quote.Extractor, error) {
		if len(cfg.Rows) == 0 {
			return nil, errors.New("static extractor needs rows")
		}
		rows := make([]quote.RawRow, 0, len(cfg.Rows))
		for _, r := range cfg.Rows {
			rows = append(rows, quote.RawRow(r))
		}
		return New(rows), nil
	})
}

// Extract implements quote.Extractor.
func (e *Extractor) Extract(ctx context.Context) ([]quote.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]quote.RawRow, len(e.rows))
	for i, row := range e.rows {
		out[i] = append(quote.RawRow(nil), row...)
	}
	return out, nil
}
