package analysis

import (
	"fmt"
	"math"
	"slices"

	"stock_insight/internal/feature/insight/domain/entity"
)

// ComputeDescriptiveStats summarises the close column of the series.
func ComputeDescriptiveStats(series entity.TimeSeries) entity.DescriptiveStats {
	return DescribeField(series, entity.FieldClose)
}

// Describe builds the full summary table, one entry per column in entity.AllFields.
func Describe(series entity.TimeSeries) map[entity.Field]entity.DescriptiveStats {
	out := make(map[entity.Field]entity.DescriptiveStats, len(entity.AllFields))
	for _, f := range entity.AllFields {
		out[f] = DescribeField(series, f)
	}
	return out
}

// DescribeField computes count, mean, sample standard deviation, min,
// quartiles and max of one column. Quartiles interpolate linearly between
// order statistics at position q*(n-1).
func DescribeField(series entity.TimeSeries, f entity.Field) (out entity.DescriptiveStats) {
	if series.IsEmpty() {
		out.Outcome = entity.OutcomeEmpty
		return out
	}
	defer func() {
		if r := recover(); r != nil {
			out = entity.DescriptiveStats{
				Outcome: entity.OutcomeFault,
				Fault:   entity.NewComputationFault(series.Symbol, fmt.Errorf("panic: %v", r)),
			}
		}
	}()

	vs, err := column(series, f)
	if err != nil {
		out.Outcome = entity.OutcomeFault
		out.Fault = entity.NewComputationFault(series.Symbol, err)
		return out
	}

	sorted := slices.Clone(vs)
	slices.Sort(sorted)
	m, err := boundedMean(vs, sorted[0], sorted[len(sorted)-1])
	if err != nil {
		out.Outcome = entity.OutcomeFault
		out.Fault = entity.NewComputationFault(series.Symbol, fmt.Errorf("%s: %w", f, err))
		return out
	}
	std := sampleStd(vs, m)
	if math.IsInf(std, 0) {
		out.Outcome = entity.OutcomeFault
		out.Fault = entity.NewComputationFault(series.Symbol, fmt.Errorf("%s: standard deviation is not finite", f))
		return out
	}

	out.Outcome = entity.OutcomeOK
	out.Count = len(vs)
	out.Mean = m
	out.Std = std
	out.Min = sorted[0]
	out.P25 = quantile(sorted, 0.25)
	out.P50 = quantile(sorted, 0.50)
	out.P75 = quantile(sorted, 0.75)
	out.Max = sorted[len(sorted)-1]
	return out
}

func sampleStd(vs []float64, m float64) float64 {
	if len(vs) < 2 {
		return math.NaN()
	}
	var ss float64
	for _, v := range vs {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vs)-1))
}

// quantile expects sorted to be ascending and non-empty.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
