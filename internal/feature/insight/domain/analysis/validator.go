// Package analysis derives insights, descriptive statistics and chart
// projections from fetched price series. Every function is pure.
package analysis

import (
	"fmt"

	"stock_insight/internal/feature/insight/domain/entity"
)

// ValidationResult reports whether a series can be analysed.
// Reason is nil when OK is true.
type ValidationResult struct {
	OK     bool
	Reason error
}

// Validate checks a series before any computation. An empty series yields
// entity.ErrEmptySeries; a series whose timestamps do not strictly increase
// yields an error wrapping entity.ErrUnorderedSeries.
func Validate(series entity.TimeSeries) ValidationResult {
	if series.IsEmpty() {
		return ValidationResult{Reason: entity.ErrEmptySeries}
	}
	for i := 1; i < len(series.Candles); i++ {
		if !series.Candles[i].Time.After(series.Candles[i-1].Time) {
			return ValidationResult{
				Reason: fmt.Errorf("%w: row %d (%s) is not after row %d (%s)",
					entity.ErrUnorderedSeries,
					i, series.Candles[i].Time.Format("2006-01-02"),
					i-1, series.Candles[i-1].Time.Format("2006-01-02")),
			}
		}
	}
	return ValidationResult{OK: true}
}
