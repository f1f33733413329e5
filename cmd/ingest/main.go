package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeromicro/go-zero/core/logx"

	"pricetrack-api/internal/cli"
	"pricetrack-api/internal/config"
	"pricetrack-api/internal/persistence/quotes"
	"pricetrack-api/internal/svc"
	"pricetrack-api/pkg/ingest"
)

func fatalf(format string, args ...interface{}) {
	logx.Errorf(format, args...)
	os.Exit(1)
}

func main() {
	var (
		configPath = flag.String("f", "etc/pricetrack.yaml", "path to the application config")
		once       = flag.Bool("once", false, "run a single retried cycle and exit")
		migrate    = flag.Bool("migrate", false, "create missing tables before ingesting")
	)
	flag.Parse()
	logx.MustSetup(logx.LogConf{})
	logx.DisableStat()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	if cfg.Ingest.Value == nil {
		logx.Infof("config %s has no ingest section, using etc/ingest.yaml", *configPath)
		cfg.Ingest.Value = config.MustLoadIngest()
	}
	cli.LogConfigSummary(cfg)

	sc, err := svc.New(*cfg)
	if err != nil {
		fatalf("build service context: %v", err)
	}
	defer sc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *migrate {
		if err := quotes.Migrate(ctx, sc.DBConn, cfg.Store.Driver); err != nil {
			fatalf("migrate: %v", err)
		}
		logx.Info("schema ready")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logx.Infof("received signal %s, stopping ingestion", sig)
		cancel()
	}()

	if *once {
		res, err := sc.Ingestor.Ingest(ctx)
		sc.RecordCycle("cli", res, err)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fatalf("ingest: %v", err)
		}
		logx.Infof("ingest done rows=%d stored=%d skipped=%d null_prices=%d attempts=%d",
			res.Rows, res.Stored, res.Skipped, res.NullPrices, res.Attempts)
		return
	}

	logx.Infof("starting ingestion loop every %s", sc.IngestConfig.Interval)
	sc.Scheduler(func(res ingest.Result, err error) {
		if err == nil {
			logx.Infof("cycle stored=%d skipped=%d attempts=%d", res.Stored, res.Skipped, res.Attempts)
		}
	}).Run(ctx)
	logx.Info("ingestion loop stopped")
}
