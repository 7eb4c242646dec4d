// @title         Codesift API
// @version       0.1.0
// @description   Self hosted code search: crawl, index, query

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"codesift/internal/platform/config"
	"codesift/internal/platform/logger"
	phttp "codesift/internal/platform/net/http"
	"codesift/internal/platform/store"

	"codesift/internal/adapters/index"
	"codesift/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	idxCfg := root.Prefix("CORE_INDEX_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store; clickhouse only powers the search log,
	// so it stays optional
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(
		ctx,
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:    chURL != "",
				URL:        chURL,
				ClientName: "codesift",
				ClientTag:  "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// the full text index
	engine, err := index.Open(idxCfg.MayString("PATH", "./index/codesift.bleve"))
	if err != nil {
		l.Panic().Err(err).Msg("index open failed")
	}
	defer func() {
		if err := engine.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close index")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	rt := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Index:          engine,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// everything below runs until the first failure or a signal
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})
	g.Go(func() error { return rt.Scheduler.Run(ctx) })
	g.Go(func() error { return rt.Crawler.Run(ctx) })
	g.Go(func() error { return rt.Cache.Run(ctx) })

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		l.Panic().Err(err).Msg("service stopped")
	}
	l.Info().Msg("shutdown complete")
}
