package svc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	_ "github.com/mattn/go-sqlite3"    // register sqlite3 driver
	"github.com/zeromicro/go-zero/core/logx"
	gocache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "pricetrack-api/internal/cache"
	"pricetrack-api/internal/config"
	"pricetrack-api/internal/model"
	"pricetrack-api/internal/persistence/quotes"
	_ "pricetrack-api/pkg/extractor/htmltable"
	_ "pricetrack-api/pkg/extractor/static"
	ingestpkg "pricetrack-api/pkg/ingest"
	"pricetrack-api/pkg/journal"
	"pricetrack-api/pkg/quote"
)

type ServiceContext struct {
	Config config.Config

	DB               *sql.DB
	DBConn           sqlx.SqlConn
	PriceLatestModel model.PriceLatestModel
	PriceTicksModel  model.PriceTicksModel
	Cache            gocache.Cache
	Store            *quotes.Service

	// IngestConfig and Ingestor are nil when no ingest section is configured.
	IngestConfig *ingestpkg.Config
	Ingestor     *ingestpkg.Ingestor
	// Journal is nil unless the ingest section sets journal_dir.
	Journal *journal.Writer
	Facade  *quote.Facade
}

// NewServiceContext wires the application and exits the process on failure.
func NewServiceContext(c config.Config) *ServiceContext {
	svc, err := New(c)
	if err != nil {
		log.Fatalf("failed to build service context: %v", err)
	}
	return svc
}

// New wires the store, cache, ingestor and query facade described by c.
func New(c config.Config) (*ServiceContext, error) {
	driver, err := quotes.NormaliseDriver(c.Store.Driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Store.DSN) == "" {
		return nil, errors.New("svc: store.dsn is required")
	}

	db, err := sql.Open(driver, c.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if driver == quotes.DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		if c.Store.MaxOpen > 0 {
			db.SetMaxOpenConns(c.Store.MaxOpen)
		}
		if c.Store.MaxIdle > 0 {
			db.SetMaxIdleConns(c.Store.MaxIdle)
		}
	}
	conn := sqlx.NewSqlConnFromDB(db)

	if c.Store.Migrate {
		if err := quotes.Migrate(context.Background(), conn, driver); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	svc := &ServiceContext{
		Config:           c,
		DB:               db,
		DBConn:           conn,
		PriceLatestModel: model.NewPriceLatestModel(conn),
		PriceTicksModel:  model.NewPriceTicksModel(conn),
	}

	// Only use Redis when a host is configured; the store works without it.
	if strings.TrimSpace(c.Redis.Host) != "" {
		svc.Cache = gocache.New(
			gocache.ClusterConf{{RedisConf: c.Redis, Weight: 100}},
			syncx.NewSingleFlight(),
			gocache.NewStat("pricetrack"),
			model.ErrNotFound,
		)
	}

	store, err := quotes.NewService(quotes.Config{
		SQLConn:     conn,
		LatestModel: svc.PriceLatestModel,
		TicksModel:  svc.PriceTicksModel,
		Cache:       svc.Cache,
		TTL:         cachekeys.NewTTLSet(c.TTL),
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	svc.Store = store

	var facadeOpts []quote.FacadeOption
	if ingCfg := c.Ingest.Value; ingCfg != nil {
		ingestor, err := ingCfg.Build(store)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("build ingestor: %w", err)
		}
		svc.IngestConfig = ingCfg
		svc.Ingestor = ingestor
		facadeOpts = ingCfg.FacadeOptions()
		if ingCfg.JournalDir != "" {
			if svc.Journal, err = journal.NewWriter(ingCfg.JournalDir); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
	}
	svc.Facade = quote.NewFacade(store, facadeOpts...)
	return svc, nil
}

// Scheduler returns the recurring ingestion loop, or nil without an ingestor.
// Each cycle is journaled before onCycle runs.
func (s *ServiceContext) Scheduler(onCycle func(ingestpkg.Result, error)) *ingestpkg.Scheduler {
	if s == nil || s.Ingestor == nil {
		return nil
	}
	return ingestpkg.NewScheduler(s.Ingestor, s.IngestConfig.Interval, func(res ingestpkg.Result, err error) {
		s.RecordCycle("scheduler", res, err)
		if onCycle != nil {
			onCycle(res, err)
		}
	})
}

// RecordCycle appends the cycle outcome to the journal when one is configured.
func (s *ServiceContext) RecordCycle(source string, res ingestpkg.Result, err error) {
	if s == nil || s.Journal == nil {
		return
	}
	rec := &journal.CycleRecord{
		Source:     source,
		Success:    err == nil,
		Attempts:   res.Attempts,
		Rows:       res.Rows,
		Stored:     res.Stored,
		Skipped:    res.Skipped,
		NullPrices: res.NullPrices,
		CapturedAt: res.CapturedAt,
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}
	if _, werr := s.Journal.WriteCycle(rec); werr != nil {
		logx.Errorf("journal: write cycle: %v", werr)
	}
}

// Close releases the database handle.
func (s *ServiceContext) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
