// Package router はHTTPルーティングを組み立てます。
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	insighthandler "stock_insight/internal/feature/insight/transport/handler"
	symbollisthandler "stock_insight/internal/feature/symbollist/transport/handler"
	"stock_insight/internal/platform/http/handler"
	"stock_insight/internal/platform/metrics"
)

// Deps はルーターが利用するハンドラーと周辺コンポーネントです。
type Deps struct {
	Insight *insighthandler.InsightHandler
	Symbol  *symbollisthandler.SymbolHandler
	Health  handler.Pinger
	Metrics *metrics.Recorder
	// MetricsHandler は /metrics を処理します。nil の場合は既定のレジストリを公開します。
	MetricsHandler http.Handler
}

// NewRouter はミドルウェアとルートを登録したginエンジンを返します。
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	// 導通確認用
	health := handler.Health(d.Health)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// 選択可能な銘柄の一覧
	r.GET("/symbols", d.Symbol.List)
	// 銘柄インサイト
	r.GET("/insights", d.Insight.Get)

	mh := d.MetricsHandler
	if mh == nil {
		mh = promhttp.Handler()
	}
	r.GET("/metrics", gin.WrapH(mh))

	return r
}

// RequestLogger はリクエストごとにslogでアクセスログを出力します。
// 5xxはError、4xxはWarn、それ以外はInfoで出力します。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("http request", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("http request", attrs...)
		default:
			slog.Info("http request", attrs...)
		}
	}
}
