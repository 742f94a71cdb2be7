package analysis

import (
	"slices"

	"stock_insight/internal/feature/insight/domain/entity"
)

// Project extracts (time, value) sequences of dim for every non-empty series.
// Symbols whose series is empty are left out of the result. Points are in
// ascending time order and there is exactly one per row.
func Project(series map[string]entity.TimeSeries, dim entity.Dimension) map[string][]entity.Point {
	f := dim.Field()
	out := make(map[string][]entity.Point, len(series))
	for symbol, s := range series {
		if s.IsEmpty() {
			continue
		}
		pts := make([]entity.Point, len(s.Candles))
		for i, c := range s.Candles {
			pts[i] = entity.Point{Time: c.Time, Value: f.Value(c)}
		}
		slices.SortStableFunc(pts, func(a, b entity.Point) int { return a.Time.Compare(b.Time) })
		out[symbol] = pts
	}
	return out
}
