package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_insight/internal/feature/symbollist/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Symbol{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedSymbol はテスト用の銘柄データをデータベースに作成します。
func seedSymbol(t *testing.T, db *gorm.DB, code, description string, isActive bool, sortKey int) *entity.Symbol {
	t.Helper()

	symbol := &entity.Symbol{
		Code:        code,
		Name:        code + " Inc.",
		Market:      "NASDAQ",
		Description: description,
		IsActive:    true,
		SortKey:     sortKey,
	}
	require.NoError(t, db.Create(symbol).Error, "failed to seed symbol")
	// default:true のため false はINSERT時に無視される。UPDATEで反映する
	if !isActive {
		require.NoError(t, db.Model(symbol).Update("is_active", false).Error)
	}
	return symbol
}

func TestSymbolGorm_ListActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		setupFunc     func(t *testing.T, db *gorm.DB)
		expectedCodes []string
	}{
		{
			name: "success: returns active symbols sorted by sort_key",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "AAPL", "", true, 2)
				seedSymbol(t, db, "META", "", true, 1)
				seedSymbol(t, db, "IBM", "", true, 3)
			},
			expectedCodes: []string{"META", "AAPL", "IBM"},
		},
		{
			name: "success: excludes inactive symbols",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "META", "", true, 1)
				seedSymbol(t, db, "KO", "", false, 2)
				seedSymbol(t, db, "IBM", "", true, 3)
			},
			expectedCodes: []string{"META", "IBM"},
		},
		{
			name:          "success: returns empty list when no symbols",
			setupFunc:     func(t *testing.T, db *gorm.DB) {},
			expectedCodes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewSymbolRepository(db)
			tt.setupFunc(t, db)

			symbols, err := repo.ListActive(context.Background())
			require.NoError(t, err)

			codes := make([]string, 0, len(symbols))
			for _, s := range symbols {
				codes = append(codes, s.Code)
			}
			assert.Equal(t, tt.expectedCodes, codes)

			got, err := repo.ListActiveCodes(context.Background())
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expectedCodes, got)
		})
	}
}

func TestSymbolGorm_FindByCodes(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	seedSymbol(t, db, "META", "social", true, 1)
	seedSymbol(t, db, "KO", "beverages", false, 2)

	tests := []struct {
		name  string
		codes []string
		want  map[string]string
	}{
		{name: "known codes", codes: []string{"META", "KO"}, want: map[string]string{"META": "social", "KO": "beverages"}},
		{name: "unknown code is absent", codes: []string{"META", "ZZZZ"}, want: map[string]string{"META": "social"}},
		{name: "no codes", codes: nil, want: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbols, err := repo.FindByCodes(context.Background(), tt.codes)
			require.NoError(t, err)

			got := make(map[string]string, len(symbols))
			for _, s := range symbols {
				got[s.Code] = s.Description
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSymbolGorm_Seed(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	ctx := context.Background()

	seedSymbol(t, db, "META", "custom description", true, 9)

	require.NoError(t, repo.Seed(ctx, entity.DefaultSymbols))
	// 2回目の登録は何も変更しない
	require.NoError(t, repo.Seed(ctx, entity.DefaultSymbols))

	var count int64
	require.NoError(t, db.Model(&entity.Symbol{}).Count(&count).Error)
	assert.Equal(t, int64(len(entity.DefaultSymbols)), count)

	symbols, err := repo.FindByCodes(ctx, []string{"META", "AAPL"})
	require.NoError(t, err)
	got := make(map[string]entity.Symbol, len(symbols))
	for _, s := range symbols {
		got[s.Code] = s
	}
	assert.Equal(t, "custom description", got["META"].Description, "existing rows must not be overwritten")
	assert.Equal(t, "A global leader in technology, known for the iPhone, iPad, and Mac.", got["AAPL"].Description)

	assert.NoError(t, repo.Seed(ctx, nil))
}

func TestSymbolGorm_ContextCancellation(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	seedSymbol(t, db, "META", "", true, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// インメモリSQLiteはキャンセル済みのコンテキストで常にエラーを返すとは限らない
	if _, err := repo.ListActive(ctx); err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
