package cache

import (
	"strings"
	"time"

	"pricetrack-api/internal/config"
)

// Namespace is the Redis key prefix for the pricetrack application.
const Namespace = "pricetrack"

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short: durationOrDefault(cfg.Short, 10*time.Second),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// PriceLatestKey holds the latest snapshot of one asset.
func PriceLatestKey(name string) string {
	return formatKey("price", "latest", name)
}

// PriceTTL returns short-lived TTL for individual price keys.
func PriceTTL(ttl TTLSet) time.Duration {
	return ttl.Short
}
