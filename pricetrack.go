// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"

	"pricetrack-api/internal/cli"
	"pricetrack-api/internal/config"
	"pricetrack-api/internal/handler"
	"pricetrack-api/internal/svc"
	"pricetrack-api/pkg/ingest"
)

var configFile = flag.String("f", "etc/pricetrack.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	defer ctx.Close()
	cli.LogConfigSummary(cfg)

	httpx.SetErrorHandlerCtx(handler.ErrorHandler)
	handler.RegisterHandlers(server, ctx)

	if cfg.RunScheduler {
		loopCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go ctx.Scheduler(func(res ingest.Result, err error) {
			if err == nil {
				logx.Infof("scheduled ingest stored=%d skipped=%d attempts=%d", res.Stored, res.Skipped, res.Attempts)
			}
		}).Run(loopCtx)
	}

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
