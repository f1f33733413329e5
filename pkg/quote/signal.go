package quote

// Signal is the directional bias derived from the two newest priced entries.
type Signal int

const (
	Neutral Signal = iota
	Buy
	Sell
)

// String returns a lowercase name for logs.
func (s Signal) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "neutral"
	}
}

// Code returns the single-letter display code; Neutral has none.
func (s Signal) Code() string {
	switch s {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return ""
	}
}

// GenerateSignal compares the two most recent entries that carry a price.
// history must be ordered newest first. Entries without a price are skipped
// rather than compared, so fewer than two priced entries yields Neutral.
func GenerateSignal(history []HistoryEntry) Signal {
	var points [2]HistoryEntry
	found := 0
	for _, entry := range history {
		if !entry.Price.Valid {
			continue
		}
		points[found] = entry
		found++
		if found == len(points) {
			break
		}
	}
	if found < len(points) {
		return Neutral
	}
	switch points[0].Price.Decimal.Cmp(points[1].Price.Decimal) {
	case 1:
		return Buy
	case -1:
		return Sell
	default:
		return Neutral
	}
}
