// Package handler はinsightフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock_insight/internal/feature/insight/domain/entity"
	"stock_insight/internal/feature/insight/transport/http/dto"
)

// InsightAnalyzer は銘柄インサイト分析のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type InsightAnalyzer interface {
	Analyze(ctx context.Context, sel entity.Selection, dim entity.Dimension) (*entity.Report, error)
}

// InsightQuery は GET /insights のクエリパラメータです。
type InsightQuery struct {
	Symbols string    `form:"symbols" binding:"required"`
	Start   time.Time `form:"start" time_format:"2006-01-02" time_utc:"1"`
	End     time.Time `form:"end" time_format:"2006-01-02" time_utc:"1"`
	Chart   string    `form:"chart"`
}

// InsightHandler は銘柄インサイトのHTTPリクエストを処理します。
type InsightHandler struct {
	uc  InsightAnalyzer
	now func() time.Time
}

// NewInsightHandler は新しい InsightHandler を作成します。
func NewInsightHandler(uc InsightAnalyzer) *InsightHandler {
	return &InsightHandler{uc: uc, now: time.Now}
}

// Get は選択された銘柄のインサイト・統計量・比較チャート用系列を返します。
//
// エンドポイント例:
// GET /insights?symbols=META,AAPL&start=2022-01-01&end=2023-01-01&chart=volume
//
// start を省略した場合は entity.DefaultStartDate、end を省略した場合は当日を終端（当日を含まない）とします。
// 選択の誤りは400、それ以外の失敗は502を返します。
func (h *InsightHandler) Get(c *gin.Context) {
	var q InsightQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("%v: %v", entity.ErrInvalidSelection, err)})
		return
	}
	dim, err := entity.ParseDimension(q.Chart)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	start := q.Start
	if start.IsZero() {
		start = entity.DefaultStart()
	}
	end := q.End
	if end.IsZero() {
		end = h.now().UTC()
	}

	sel := entity.NewSelection(strings.Split(q.Symbols, ","), start, end)
	report, err := h.uc.Analyze(c.Request.Context(), sel, dim)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidSelection) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to analyze selection", "symbols", sel.Symbols, "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromReport(report))
}
