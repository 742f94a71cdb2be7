package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"stock_insight/internal/app/config"
	"stock_insight/internal/app/di"
	"stock_insight/internal/app/router"
	insighthandler "stock_insight/internal/feature/insight/transport/handler"
	symbollisthandler "stock_insight/internal/feature/symbollist/transport/handler"
	"stock_insight/internal/platform/logger"
	"stock_insight/internal/platform/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	syncLog, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = syncLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, symbolUC, err := di.OpenCatalog(ctx, cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Market.TwelveDataAPIKey == "" {
		slog.Warn("TWELVE_DATA_API_KEY is not set. Requests to Twelve Data will be rejected.")
	}

	// Usecase
	recorder := metrics.New(prometheus.DefaultRegisterer)
	insightUC := di.NewInsightUsecase(cfg.Market, symbolUC, recorder, cfg.InsightOptions())

	// ルータ生成
	r := router.NewRouter(router.Deps{
		Insight: insighthandler.NewInsightHandler(insightUC),
		Symbol:  symbollisthandler.NewSymbolHandler(symbolUC),
		Health:  sqlDB,
		Metrics: recorder,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr, "db_driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
