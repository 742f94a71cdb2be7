package analysis

import (
	"errors"
	"fmt"
	"math"

	"stock_insight/internal/feature/insight/domain/entity"
)

// ComputeInsights returns the latest, mean, highest and lowest close of the series.
//
// An empty series yields OutcomeEmpty. Non-finite closes, or a panic while
// computing, yield OutcomeFault with a diagnostic carrying the symbol; the
// fault is never propagated to the caller.
func ComputeInsights(series entity.TimeSeries) (out entity.InsightSummary) {
	out.Symbol = series.Symbol
	if series.IsEmpty() {
		out.Outcome = entity.OutcomeEmpty
		return out
	}
	defer func() {
		if r := recover(); r != nil {
			out = entity.InsightSummary{
				Symbol:  series.Symbol,
				Outcome: entity.OutcomeFault,
				Fault:   entity.NewComputationFault(series.Symbol, fmt.Errorf("panic: %v", r)),
			}
		}
	}()

	closes, err := column(series, entity.FieldClose)
	if err != nil {
		out.Outcome = entity.OutcomeFault
		out.Fault = entity.NewComputationFault(series.Symbol, err)
		return out
	}

	lo, hi := minMax(closes)
	m, err := boundedMean(closes, lo, hi)
	if err != nil {
		out.Outcome = entity.OutcomeFault
		out.Fault = entity.NewComputationFault(series.Symbol, fmt.Errorf("close: %w", err))
		return out
	}
	out.Outcome = entity.OutcomeOK
	out.LatestClose = closes[len(closes)-1]
	out.MeanClose = m
	out.MaxClose = hi
	out.MinClose = lo
	return out
}

// column extracts one field in row order and rejects NaN or infinite cells.
func column(series entity.TimeSeries, f entity.Field) ([]float64, error) {
	vs := make([]float64, len(series.Candles))
	for i, c := range series.Candles {
		v := f.Value(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-numeric %s at %s", f, c.Time.Format("2006-01-02"))
		}
		vs[i] = v
	}
	return vs, nil
}

// mean is a running average so that large finite values do not overflow an
// intermediate sum.
func mean(vs []float64) float64 {
	var m float64
	for i, v := range vs {
		m += (v - m) / float64(i+1)
	}
	return m
}

// boundedMean returns the mean of vs clamped into [lo, hi]. Rounding can
// otherwise push it one ulp past the extremes.
func boundedMean(vs []float64, lo, hi float64) (float64, error) {
	m := mean(vs)
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, errors.New("mean is not finite")
	}
	return min(max(m, lo), hi), nil
}

func minMax(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
