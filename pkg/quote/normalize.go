package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrShortRow reports a raw row that lacks one of the configured offsets.
var ErrShortRow = errors.New("quote: row missing required field")

// Layout names the column offsets of the fields read from a RawRow.
type Layout struct {
	Name  int `yaml:"name"`
	Code  int `yaml:"code"`
	Price int `yaml:"price"`
}

// DefaultLayout matches the crypto currencies table the scraper flattens:
// rank/logo cells first, then name, code and price.
var DefaultLayout = Layout{Name: 2, Code: 4, Price: 6}

func (l Layout) width() int {
	return max(l.Name, l.Code, l.Price) + 1
}

// Validate rejects negative offsets.
func (l Layout) Validate() error {
	if l.Name < 0 || l.Code < 0 || l.Price < 0 {
		return fmt.Errorf("quote: layout offsets must be non-negative, got %+v", l)
	}
	return nil
}

// Normalizer turns raw rows into readings.
type Normalizer struct {
	layout Layout
	now    func() time.Time
}

// NormalizerOption customises a Normalizer.
type NormalizerOption func(*Normalizer)

// WithLayout overrides the column offsets.
func WithLayout(layout Layout) NormalizerOption {
	return func(n *Normalizer) {
		n.layout = layout
	}
}

// WithClock overrides the capture clock.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// NewNormalizer constructs a Normalizer using DefaultLayout and the wall clock.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{layout: DefaultLayout, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts one row, stamping it with the current time.
func (n *Normalizer) Normalize(row RawRow) (Reading, error) {
	return n.normalizeAt(row, n.now().UTC())
}

// NormalizeAll converts every row using a single capture time. Rows that
// cannot be normalized are dropped and reported through skipped.
func (n *Normalizer) NormalizeAll(rows []RawRow) (readings []Reading, skipped []error) {
	at := n.now().UTC()
	readings = make([]Reading, 0, len(rows))
	for i, row := range rows {
		reading, err := n.normalizeAt(row, at)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		readings = append(readings, reading)
	}
	return readings, skipped
}

func (n *Normalizer) normalizeAt(row RawRow, at time.Time) (Reading, error) {
	if len(row) < n.layout.width() {
		return Reading{}, fmt.Errorf("%w: have %d fields, need %d", ErrShortRow, len(row), n.layout.width())
	}
	name := strings.TrimSpace(row[n.layout.Name])
	if name == "" {
		return Reading{}, fmt.Errorf("%w: empty name at offset %d", ErrShortRow, n.layout.Name)
	}
	return Reading{
		Name:       name,
		Code:       strings.TrimSpace(row[n.layout.Code]),
		Price:      ParsePrice(row[n.layout.Price]),
		CapturedAt: at,
	}, nil
}

// ParsePrice parses text that uses "." for thousands and "," for decimals,
// e.g. "43.210,5". Unparseable text yields an invalid NullDecimal.
func ParsePrice(text string) decimal.NullDecimal {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
