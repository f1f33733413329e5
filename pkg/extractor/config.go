package extractor

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"pricetrack-api/pkg/confkit"
	"pricetrack-api/pkg/quote"
)

// Config describes the extractor feeding the ingestion pipeline.
type Config struct {
	Type string `yaml:"type"`

	URL            string `yaml:"url"`
	UserAgent      string `yaml:"user_agent"`
	ContainerClass string `yaml:"container_class"`
	RowLimit       int    `yaml:"row_limit"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`

	// Rows feeds the static extractor.
	Rows [][]string `yaml:"rows"`
}

// Builder constructs an Extractor from configuration.
type Builder func(cfg *Config) (quote.Extractor, error)

var (
	registry   = make(map[string]Builder)
	registryMu sync.RWMutex
)

// Register makes an extractor type available to Build.
func Register(typeName string, builder Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[normaliseType(typeName)] = builder
}

func lookup(typeName string) (Builder, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[normaliseType(typeName)]
	return b, ok
}

func normaliseType(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}

// Normalise expands environment references and parses durations.
func (c *Config) Normalise() error {
	c.Type = strings.TrimSpace(os.ExpandEnv(c.Type))
	c.URL = strings.TrimSpace(os.ExpandEnv(c.URL))
	c.UserAgent = strings.TrimSpace(os.ExpandEnv(c.UserAgent))
	c.ContainerClass = strings.TrimSpace(c.ContainerClass)
	d, ok, err := confkit.Duration(c.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("extractor: timeout: %w", err)
	}
	if ok {
		if d <= 0 {
			return fmt.Errorf("extractor: timeout must be positive, got %s", d)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks that the type is registered and basic bounds hold.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Type) == "" {
		return fmt.Errorf("extractor: type is required")
	}
	if _, ok := lookup(c.Type); !ok {
		return fmt.Errorf("extractor: unsupported type %q", c.Type)
	}
	if c.RowLimit < 0 {
		return fmt.Errorf("extractor: row_limit must be >= 0, got %d", c.RowLimit)
	}
	return nil
}

// Build instantiates the configured extractor.
func Build(cfg *Config) (quote.Extractor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("extractor: nil config")
	}
	builder, ok := lookup(cfg.Type)
	if !ok {
		return nil, fmt.Errorf("extractor: unsupported type %q", cfg.Type)
	}
	ex, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("extractor %s: %w", cfg.Type, err)
	}
	return ex, nil
}
