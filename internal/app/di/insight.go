package di

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	insightusecase "stock_insight/internal/feature/insight/usecase"
	symbollistadapters "stock_insight/internal/feature/symbollist/adapters"
	symbollistentity "stock_insight/internal/feature/symbollist/domain/entity"
	symbollistusecase "stock_insight/internal/feature/symbollist/usecase"
	"stock_insight/internal/platform/db"
	"stock_insight/internal/platform/externalapi/twelvedata"
)

// CatalogModels lists the gorm models migrated at startup.
var CatalogModels = []any{&symbollistentity.Symbol{}}

// OpenCatalog opens the symbol catalog database, migrates it and seeds the default symbols.
func OpenCatalog(ctx context.Context, cfg db.Config) (*gorm.DB, *symbollistusecase.SymbolUsecase, error) {
	gdb, err := db.OpenDB(cfg, CatalogModels...)
	if err != nil {
		return nil, nil, err
	}
	uc := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(gdb))
	if err := uc.SeedDefaults(ctx); err != nil {
		return nil, nil, fmt.Errorf("seed symbol catalog: %w", err)
	}
	return gdb, uc, nil
}

// NewInsightUsecase wires the analysis usecase to the Twelve Data market and its rate limiter.
func NewInsightUsecase(
	marketCfg twelvedata.Config,
	lookup insightusecase.DescriptionLookup,
	metrics insightusecase.Metrics,
	opts insightusecase.Options,
) *insightusecase.InsightUsecase {
	return insightusecase.NewInsightUsecase(NewMarket(marketCfg), lookup, NewMarketLimiter(marketCfg), metrics, opts)
}
