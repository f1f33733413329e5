package quotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

var postgresDDL = []string{
	`CREATE TABLE IF NOT EXISTS price_latest (
    name          TEXT PRIMARY KEY,
    code          TEXT NOT NULL DEFAULT '',
    price         NUMERIC,
    ts_ms         BIGINT NOT NULL,
    updated_at_ms BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS price_ticks (
    id    BIGSERIAL PRIMARY KEY,
    name  TEXT NOT NULL,
    price NUMERIC,
    ts_ms BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_price_ticks_name_ts ON price_ticks (name, ts_ms DESC)`,
}

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS price_latest (
    name          TEXT PRIMARY KEY,
    code          TEXT NOT NULL DEFAULT '',
    price         TEXT,
    ts_ms         INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS price_ticks (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    name  TEXT NOT NULL,
    price TEXT,
    ts_ms INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_price_ticks_name_ts ON price_ticks (name, ts_ms DESC)`,
}

// NormaliseDriver maps accepted driver aliases onto registered sql driver names.
func NormaliseDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "pgx", "postgres", "postgresql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("quotes: unsupported driver %q", driver)
	}
}

// Migrate creates the price tables when they are missing.
func Migrate(ctx context.Context, conn sqlx.SqlConn, driver string) error {
	name, err := NormaliseDriver(driver)
	if err != nil {
		return err
	}
	ddl := postgresDDL
	if name == DriverSQLite {
		ddl = sqliteDDL
	}
	for _, stmt := range ddl {
		if _, err := conn.ExecCtx(ctx, stmt); err != nil {
			return fmt.Errorf("quotes: migrate: %w", err)
		}
	}
	return nil
}
