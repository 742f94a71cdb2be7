// Command analyze prints stock insights for a selection of symbols.
//
// Usage:
//
//	analyze -symbols META,AAPL -start 2022-01-01 -end 2023-01-01 -chart volume
//	analyze -all -start 2024-01-01
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"stock_insight/internal/app/config"
	"stock_insight/internal/app/di"
	"stock_insight/internal/feature/insight/domain/entity"
	"stock_insight/internal/feature/insight/transport/cli"
	"stock_insight/internal/platform/logger"
)

const dateLayout = "2006-01-02"

type options struct {
	symbols string
	all     bool
	start   string
	end     string
	chart   string
}

func main() {
	var opts options
	flag.StringVar(&opts.symbols, "symbols", "META,AAPL", "comma separated stock symbols")
	flag.BoolVar(&opts.all, "all", false, "analyze every active symbol in the catalog")
	flag.StringVar(&opts.start, "start", entity.DefaultStartDate, "start date (YYYY-MM-DD, inclusive)")
	flag.StringVar(&opts.end, "end", time.Now().UTC().Format(dateLayout), "end date (YYYY-MM-DD, exclusive)")
	flag.StringVar(&opts.chart, "chart", "close", "comparison metric: close or volume")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, entity.ErrInvalidSelection) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(opts options) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// 標準出力はレポート用なので、ログは警告以上のみ標準エラー出力へ出す
	if cfg.Log.Level == "" || strings.EqualFold(cfg.Log.Level, "info") {
		cfg.Log.Level = "warn"
	}
	syncLog, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = syncLog() }()

	start, err := time.Parse(dateLayout, opts.start)
	if err != nil {
		return fmt.Errorf("%w: start date: %v", entity.ErrInvalidSelection, err)
	}
	end, err := time.Parse(dateLayout, opts.end)
	if err != nil {
		return fmt.Errorf("%w: end date: %v", entity.ErrInvalidSelection, err)
	}
	dim, err := entity.ParseDimension(opts.chart)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidSelection, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gdb, symbolUC, err := di.OpenCatalog(ctx, cfg.DB)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	symbols := strings.Split(opts.symbols, ",")
	if opts.all {
		active, err := symbolUC.ListActiveCodes(ctx)
		if err != nil {
			return fmt.Errorf("list catalog symbols: %w", err)
		}
		symbols = active
	}

	uc := di.NewInsightUsecase(cfg.Market, symbolUC, nil, cfg.InsightOptions())
	report, err := uc.Analyze(ctx, entity.NewSelection(symbols, start, end), dim)
	if err != nil {
		return err
	}
	slog.Debug("analysis finished", "symbols", report.Selection.Symbols)
	return cli.Render(os.Stdout, report)
}
