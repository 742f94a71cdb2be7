package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"stock_insight/internal/feature/insight/domain/entity"
	"stock_insight/internal/feature/insight/usecase"
	"stock_insight/internal/platform/externalapi/twelvedata/dto"
)

const (
	dailyInterval = "1day"
	dateLayout    = "2006-01-02"
	// noDataMessage は指定期間にデータが存在しない場合のエラーメッセージの先頭部分です。
	noDataMessage = "no data is available"
)

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するMarketRepository実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
	// logger が nil の場合は slog.Default() を使います。
	logger *slog.Logger
}

// TwelveDataMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetTimeSeries はTwelve Data APIから [start, end) の日足データを取得し、
// 時刻の昇順に並んだTimeSeriesとして返します。
// 期間内にデータが存在しない場合は空のTimeSeriesを返します。
func (t *TwelveDataMarket) GetTimeSeries(ctx context.Context, symbol string, start, end time.Time) (entity.TimeSeries, error) {
	series := entity.TimeSeries{Symbol: symbol}

	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol)
	q.Set("interval", dailyInterval)
	q.Set("start_date", start.Format(dateLayout))
	q.Set("end_date", end.Format(dateLayout))
	q.Set("order", "ASC")
	if t.cfg.OutputSize > 0 {
		q.Set("outputsize", strconv.Itoa(t.cfg.OutputSize))
	}
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/time_series?%s", strings.TrimRight(t.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return series, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return series, fmt.Errorf("twelvedata request %s: %w", symbol, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return series, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return series, fmt.Errorf("twelvedata decode %s: %w", symbol, err)
	}
	if body.Status == "error" {
		if strings.HasPrefix(strings.ToLower(body.Message), noDataMessage) {
			return series, nil
		}
		return series, fmt.Errorf("twelvedata: %s", body.Message)
	}

	// order=ASC のため、上限に達した場合は期間の末尾が欠けている
	if t.cfg.OutputSize > 0 && len(body.Values) >= t.cfg.OutputSize {
		t.log().Warn("time series truncated by outputsize; the latest rows of the range are missing",
			"symbol", symbol, "outputsize", t.cfg.OutputSize, "start", start.Format(dateLayout), "end", end.Format(dateLayout))
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		c, err := toCandle(v)
		if err != nil {
			return series, err
		}
		// end_date の扱いはAPI側で包含的なため、ここで半開区間に揃える
		if c.Time.Before(start) || !c.Time.Before(end) {
			continue
		}
		candles = append(candles, c)
	}
	slices.SortFunc(candles, func(a, b entity.Candle) int { return a.Time.Compare(b.Time) })

	series.Candles = candles
	return series, nil
}

func (t *TwelveDataMarket) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return slog.Default()
}

// toCandle は文字列で表現された1行分のOHLCVをドメインエンティティに変換します。
func toCandle(v dto.TimeSeriesValue) (entity.Candle, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
	if err != nil {
		tm, err = time.Parse(dateLayout, v.Datetime)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
	}
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse open %q: %w", v.Open, err)
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse high %q: %w", v.High, err)
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse low %q: %w", v.Low, err)
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse close %q: %w", v.Close, err)
	}
	// 指数などは出来高を返さないため、空文字は0として扱う
	var vol int64
	if v.Volume != "" {
		vol, err = strconv.ParseInt(v.Volume, 10, 64)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
	}
	return entity.Candle{Time: tm, Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}
