// Package usecase は銘柄インサイト分析のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"stock_insight/internal/feature/insight/domain/analysis"
	"stock_insight/internal/feature/insight/domain/entity"
	"stock_insight/internal/shared/ratelimiter"
)

const (
	// DefaultFetchConcurrency は同時に取得する銘柄数のデフォルト値です。
	DefaultFetchConcurrency = 4
	// NoDescription は銘柄説明が見つからない場合の表示文言です。
	NoDescription = "No description available."
)

// MarketRepository は株価データを取得するリポジトリのインターフェイスです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// GetTimeSeries は [start, end) の日足を時刻の昇順で返します。データがない場合は空の系列を返します。
	GetTimeSeries(ctx context.Context, symbol string, start, end time.Time) (entity.TimeSeries, error)
}

// DescriptionLookup は銘柄コードから説明文を引く参照テーブルです。
type DescriptionLookup interface {
	Descriptions(ctx context.Context, codes []string) (map[string]string, error)
}

// Metrics は分析処理の計測を記録します。
type Metrics interface {
	ObserveFetch(outcome string, elapsed time.Duration)
	RecordEntityOutcome(status string)
}

// Options は InsightUsecase の調整可能なパラメータです。
type Options struct {
	MaxSymbols       int
	FetchConcurrency int
}

// InsightUsecase は選択された銘柄の株価を取得し、インサイトを計算します。
type InsightUsecase struct {
	market  MarketRepository
	lookup  DescriptionLookup
	limiter ratelimiter.Limiter
	metrics Metrics
	opts    Options
}

// NewInsightUsecase は新しい InsightUsecase を生成します。
// limiter と metrics は nil でも構いません。
func NewInsightUsecase(market MarketRepository, lookup DescriptionLookup, limiter ratelimiter.Limiter, metrics Metrics, opts Options) *InsightUsecase {
	if limiter == nil {
		limiter = ratelimiter.Unlimited{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if opts.FetchConcurrency <= 0 {
		opts.FetchConcurrency = DefaultFetchConcurrency
	}
	return &InsightUsecase{market: market, lookup: lookup, limiter: limiter, metrics: metrics, opts: opts}
}

// fetchResult は1銘柄分の取得結果です。
type fetchResult struct {
	series entity.TimeSeries
	err    error
}

// Analyze は選択を検証し、各銘柄の系列を取得して、インサイト・統計量・比較チャート用の系列を返します。
//
// 選択が不正な場合は entity.ErrInvalidSelection をラップしたエラーを返し、何も取得しません。
// 銘柄単位の取得失敗・データなし・計算失敗はその銘柄のレポートに記録され、他の銘柄の処理は継続します。
func (u *InsightUsecase) Analyze(ctx context.Context, sel entity.Selection, dim entity.Dimension) (*entity.Report, error) {
	if err := sel.Validate(u.opts.MaxSymbols); err != nil {
		return nil, err
	}

	results, err := u.fetchAll(ctx, sel)
	if err != nil {
		return nil, err
	}
	descriptions := u.describeSymbols(ctx, sel.Symbols)

	report := &entity.Report{
		Selection: sel,
		Dimension: dim,
		Entities:  make([]entity.EntityReport, 0, len(sel.Symbols)),
	}
	usable := make(map[string]entity.TimeSeries, len(sel.Symbols))
	for i, symbol := range sel.Symbols {
		er := analyzeOne(symbol, results[i])
		er.Description = descriptions[symbol]
		if er.Status == entity.StatusOK {
			usable[symbol] = er.Series
		}
		u.metrics.RecordEntityOutcome(string(er.Status))
		report.Entities = append(report.Entities, er)
	}
	report.Comparison = analysis.Project(usable, dim)
	return report, nil
}

// fetchAll は銘柄ごとの系列を並行して取得します。結果は sel.Symbols と同じ順序です。
// 個々の取得エラーは結果に格納され、ctx がキャンセルされた場合のみエラーを返します。
func (u *InsightUsecase) fetchAll(ctx context.Context, sel entity.Selection) ([]fetchResult, error) {
	results := make([]fetchResult, len(sel.Symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.opts.FetchConcurrency)
	for i, symbol := range sel.Symbols {
		g.Go(func() error {
			if err := u.limiter.Wait(gctx); err != nil {
				return err
			}
			started := time.Now()
			series, err := u.market.GetTimeSeries(gctx, symbol, sel.Start, sel.End)
			switch {
			case err != nil:
				u.metrics.ObserveFetch("error", time.Since(started))
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
				slog.Warn("failed to fetch time series", "symbol", symbol, "start", sel.Start, "end", sel.End, "error", err)
			case series.IsEmpty():
				u.metrics.ObserveFetch("empty", time.Since(started))
			default:
				u.metrics.ObserveFetch("ok", time.Since(started))
			}
			if series.Symbol == "" {
				series.Symbol = symbol
			}
			results[i] = fetchResult{series: series, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch time series: %w", err)
	}
	return results, nil
}

// describeSymbols は参照テーブルから説明文を引きます。参照に失敗しても分析は継続します。
func (u *InsightUsecase) describeSymbols(ctx context.Context, symbols []string) map[string]string {
	out := make(map[string]string, len(symbols))
	var found map[string]string
	if u.lookup != nil {
		var err error
		found, err = u.lookup.Descriptions(ctx, symbols)
		if err != nil {
			slog.Warn("failed to look up symbol descriptions", "symbols", symbols, "error", err)
		}
	}
	for _, s := range symbols {
		if d, ok := found[s]; ok && d != "" {
			out[s] = d
			continue
		}
		out[s] = NoDescription
	}
	return out
}

// analyzeOne は1銘柄分の検証と計算を行います。
func analyzeOne(symbol string, res fetchResult) entity.EntityReport {
	er := entity.EntityReport{Symbol: symbol, Series: res.series}
	if res.err != nil {
		er.Status = entity.StatusNoData
		er.Notice = noDataNotice(symbol)
		return er
	}

	v := analysis.Validate(res.series)
	if !v.OK {
		if errors.Is(v.Reason, entity.ErrEmptySeries) {
			er.Status = entity.StatusNoData
			er.Notice = noDataNotice(symbol)
			return er
		}
		fault := entity.NewComputationFault(symbol, v.Reason)
		er.Status = entity.StatusFault
		er.Notice = fault.Error()
		er.Insights = entity.InsightSummary{Symbol: symbol, Outcome: entity.OutcomeFault, Fault: fault}
		return er
	}

	er.Insights = analysis.ComputeInsights(res.series)
	er.Statistics = analysis.Describe(res.series)
	if er.Insights.Outcome == entity.OutcomeFault {
		er.Status = entity.StatusFault
		er.Notice = er.Insights.Fault.Error()
		slog.Warn("insight computation failed", "symbol", symbol, "error", er.Insights.Fault)
		return er
	}
	er.Status = entity.StatusOK
	return er
}

func noDataNotice(symbol string) string {
	return fmt.Sprintf("No data available for %s in the selected date range.", symbol)
}

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(string, time.Duration) {}
func (noopMetrics) RecordEntityOutcome(string)         {}
