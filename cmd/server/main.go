package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	hierarchyhandler "coldcheck/internal/hierarchy/handler"
	hierarchymetrics "coldcheck/internal/hierarchy/metrics"
	hierarchyservice "coldcheck/internal/hierarchy/service"
	jwttoken "coldcheck/internal/jwt_token"
	"coldcheck/internal/platform/config"
	"coldcheck/internal/platform/httpserver"
	"coldcheck/internal/platform/logger"
	platformmetrics "coldcheck/internal/platform/metrics"
	"coldcheck/internal/platform/postgres"
	reporthandler "coldcheck/internal/report/handler"
	reportmetrics "coldcheck/internal/report/metrics"
	reportservice "coldcheck/internal/report/service"
	"coldcheck/internal/store"
	"coldcheck/pkg/phone"
)

// appStore is satisfied by both store backends.
type appStore interface {
	hierarchyservice.Store
	reportservice.Store
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, ping, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	m := platformmetrics.New()
	phones, err := phone.New(cfg.PhoneRegion)
	if err != nil {
		return fmt.Errorf("phone region: %w", err)
	}

	hierarchySvc, err := hierarchyservice.New(st,
		hierarchyservice.WithLogger(log),
		hierarchyservice.WithMetrics(hierarchymetrics.New(m.Registry)),
	)
	if err != nil {
		return err
	}

	reportMetrics := reportmetrics.New(m.Registry)
	reportSvc, err := reportservice.New(st,
		reportservice.WithLogger(log),
		reportservice.WithMetrics(reportMetrics),
		reportservice.WithMaxRangeDays(cfg.Range.MaxDays),
		reportservice.WithConcurrency(cfg.Range.Concurrency),
		reportservice.WithDayTimeout(cfg.Range.DayTimeout),
	)
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	router := newRouter(routerDeps{
		logger:    log,
		metrics:   m,
		validator: jwttoken.NewJWTServiceAdapter(jwtService),
		hierarchy: hierarchyhandler.New(hierarchySvc, phones, log),
		reports:   reporthandler.New(reportSvc, reportMetrics, log),
		ping:      ping,
	})

	srv := httpserver.New(cfg.Addr, otelhttp.NewHandler(router, "coldcheck"))
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting coldcheck", "addr", cfg.Addr, "in_memory", cfg.InMemory())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "grace", cfg.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openStore returns the Postgres store when DATABASE_URL is set and the
// in-memory store otherwise, with a readiness probe and a close func.
func openStore(ctx context.Context, cfg config.Server, log *slog.Logger) (appStore, func(context.Context) error, func(), error) {
	if cfg.InMemory() {
		log.Warn("DATABASE_URL not set; using in-memory store")
		return store.NewInMemory(), func(context.Context) error { return nil }, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DB, cfg.StoreTimeout)
	if err != nil {
		return nil, nil, nil, err
	}
	pg := store.NewPostgres(db, store.WithTxTimeout(cfg.StoreTimeout))
	if err := pg.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}
	return pg, pingFunc(db), closeFn, nil
}

func pingFunc(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
