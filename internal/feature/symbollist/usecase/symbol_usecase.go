// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"strings"

	"stock_insight/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	FindByCodes(ctx context.Context, codes []string) ([]entity.Symbol, error)
	Seed(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveCodes returns the codes of all active symbols in display order.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// Descriptions returns the catalog description for each known code.
// Codes that are unknown or have an empty description are absent from the result.
func (u *SymbolUsecase) Descriptions(ctx context.Context, codes []string) (map[string]string, error) {
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			normalized = append(normalized, c)
		}
	}
	symbols, err := u.repo.FindByCodes(ctx, normalized)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(symbols))
	for _, s := range symbols {
		if s.Description != "" {
			out[s.Code] = s.Description
		}
	}
	return out, nil
}

// SeedDefaults registers the built-in catalog. Existing rows are left untouched.
func (u *SymbolUsecase) SeedDefaults(ctx context.Context) error {
	return u.repo.Seed(ctx, entity.DefaultSymbols)
}
