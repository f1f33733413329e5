package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/internal/config"
	"pricetrack-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Store: %s (%s)", storeDriver(cfg.Store.Driver), presence(strings.TrimSpace(cfg.Store.DSN) != "")),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		fmt.Sprintf("Latest price TTL: %ds", cfg.TTL.Short),
		sectionLine("Ingest config", cfg.Ingest),
		fmt.Sprintf("Scheduler: %s", enabled(cfg.RunScheduler)),
	}
	if ing := cfg.Ingest.Value; ing != nil {
		lines = append(lines,
			fmt.Sprintf("Extractor: %s", ing.Extractor.Type),
			fmt.Sprintf("Retry: %d attempt(s), %s apart", ing.MaxAttempts, ing.RetryDelay),
			fmt.Sprintf("Interval / window: %s / %s", ing.Interval, ing.Window),
		)
	}
	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func storeDriver(driver string) string {
	if strings.TrimSpace(driver) == "" {
		return "pgx"
	}
	return driver
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func enabled(ok bool) string {
	if ok {
		return "enabled"
	}
	return "disabled"
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
