package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	insightusecase "stock_insight/internal/feature/insight/usecase"
	"stock_insight/internal/platform/db"
	"stock_insight/internal/platform/externalapi/twelvedata"
	"stock_insight/internal/shared/ratelimiter"
)

func TestNewMarketLimiter(t *testing.T) {
	t.Parallel()

	assert.IsType(t, ratelimiter.Unlimited{}, NewMarketLimiter(twelvedata.Config{RateLimit: 0}))
	assert.IsType(t, &ratelimiter.RateLimiter{}, NewMarketLimiter(twelvedata.Config{RateLimit: 8}))
}

func TestOpenCatalog_SeedsDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, uc, err := OpenCatalog(ctx, db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:", ConnectTimeout: time.Second})
	require.NoError(t, err)

	symbols, err := uc.ListActiveSymbols(ctx)
	require.NoError(t, err)
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{"META", "KO", "NFLX", "AAPL", "IBM"}, codes)

	desc, err := uc.Descriptions(ctx, []string{"KO", "TSLA"})
	require.NoError(t, err)
	assert.Len(t, desc, 1)
	assert.Contains(t, desc["KO"], "Coca-Cola")

	// the catalog satisfies the lookup the insight usecase expects
	var _ insightusecase.DescriptionLookup = uc
}
