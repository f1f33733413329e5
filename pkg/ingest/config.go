package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pricetrack-api/pkg/confkit"
	"pricetrack-api/pkg/extractor"
	"pricetrack-api/pkg/quote"
)

// Config describes one ingestion pipeline: where rows come from, how they
// are read, how often and how persistently cycles are retried.
type Config struct {
	MaxAttempts int `yaml:"max_attempts"`

	RetryDelayRaw     string        `yaml:"retry_delay"`
	RetryDelay        time.Duration `yaml:"-"`
	ExtractTimeoutRaw string        `yaml:"extract_timeout"`
	ExtractTimeout    time.Duration `yaml:"-"`
	IntervalRaw       string        `yaml:"interval"`
	Interval          time.Duration `yaml:"-"`
	WindowRaw         string        `yaml:"window"`
	Window            time.Duration `yaml:"-"`

	HistoryLimit int `yaml:"history_limit"`
	// JournalDir, when set, receives one JSON record per scheduled cycle.
	JournalDir string `yaml:"journal_dir"`

	Layout    *quote.Layout    `yaml:"layout"`
	Extractor extractor.Config `yaml:"extractor"`
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ingest config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads ingest configuration from the default project location and panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/ingest.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ingest config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal ingest config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = quote.DefaultHistoryLimit
	}
	c.JournalDir = strings.TrimSpace(os.ExpandEnv(c.JournalDir))
	if c.Layout == nil {
		layout := quote.DefaultLayout
		c.Layout = &layout
	}

	durations := []struct {
		field string
		raw   string
		out   *time.Duration
		def   time.Duration
	}{
		{"retry_delay", c.RetryDelayRaw, &c.RetryDelay, DefaultRetryDelay},
		{"extract_timeout", c.ExtractTimeoutRaw, &c.ExtractTimeout, DefaultExtractTimeout},
		{"interval", c.IntervalRaw, &c.Interval, DefaultInterval},
		{"window", c.WindowRaw, &c.Window, quote.DefaultWindow},
	}
	for _, d := range durations {
		v, ok, err := confkit.Duration(d.raw)
		if err != nil {
			return fmt.Errorf("ingest config: %s: %w", d.field, err)
		}
		if !ok {
			v = d.def
		}
		*d.out = v
	}
	return c.Extractor.Normalise()
}

// Validate ensures the configuration is structurally sound.
func (c *Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("ingest config: max_attempts must be >= 1, got %d", c.MaxAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("ingest config: retry_delay must be >= 0, got %s", c.RetryDelay)
	}
	if c.ExtractTimeout <= 0 {
		return fmt.Errorf("ingest config: extract_timeout must be positive, got %s", c.ExtractTimeout)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("ingest config: interval must be positive, got %s", c.Interval)
	}
	if c.Window <= 0 {
		return fmt.Errorf("ingest config: window must be positive, got %s", c.Window)
	}
	if c.HistoryLimit < 2 {
		return fmt.Errorf("ingest config: history_limit must be >= 2, got %d", c.HistoryLimit)
	}
	if c.Layout != nil {
		if err := c.Layout.Validate(); err != nil {
			return fmt.Errorf("ingest config: %w", err)
		}
	}
	return c.Extractor.Validate()
}

// Policy returns the retry policy described by the configuration.
func (c *Config) Policy() Policy {
	return Policy{MaxAttempts: c.MaxAttempts, Delay: c.RetryDelay}
}

// Options translates the configuration into Ingestor options.
func (c *Config) Options() []Option {
	opts := []Option{
		WithPolicy(c.Policy()),
		WithExtractTimeout(c.ExtractTimeout),
	}
	if c.Layout != nil {
		opts = append(opts, WithNormalizer(quote.NewNormalizer(quote.WithLayout(*c.Layout))))
	}
	return opts
}

// Build constructs the configured extractor and an Ingestor writing to w.
func (c *Config) Build(w Writer) (*Ingestor, error) {
	ex, err := extractor.Build(&c.Extractor)
	if err != nil {
		return nil, err
	}
	return NewIngestor(ex, w, c.Options()...)
}

// FacadeOptions returns the query facade settings carried by the configuration.
func (c *Config) FacadeOptions() []quote.FacadeOption {
	return []quote.FacadeOption{
		quote.WithWindow(c.Window),
		quote.WithHistoryLimit(c.HistoryLimit),
	}
}
