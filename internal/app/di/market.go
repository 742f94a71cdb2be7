// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"stock_insight/internal/platform/externalapi/twelvedata"
	infrahttp "stock_insight/internal/platform/http"
	"stock_insight/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured TwelveDataMarket with HTTP client.
func NewMarket(cfg twelvedata.Config) *twelvedata.TwelveDataMarket {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return twelvedata.NewTwelveDataMarket(cfg, httpClient)
}

// NewMarketLimiter returns the per-minute limiter shared by every fetch.
// A non-positive RateLimit disables throttling.
func NewMarketLimiter(cfg twelvedata.Config) ratelimiter.Limiter {
	if cfg.RateLimit <= 0 {
		return ratelimiter.Unlimited{}
	}
	return ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
}
