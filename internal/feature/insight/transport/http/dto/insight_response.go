// Package dto defines data transfer objects for the insight HTTP API.
package dto

import (
	"math"

	"stock_insight/internal/feature/insight/domain/entity"
)

const dateLayout = "2006-01-02"

// InsightResponse is the body of GET /insights.
type InsightResponse struct {
	Symbols    []string               `json:"symbols"`
	Start      string                 `json:"start"`
	End        string                 `json:"end"`
	Chart      string                 `json:"chart"`
	Entities   []EntityItem           `json:"entities"`
	Comparison map[string][]PointItem `json:"comparison"`
}

// EntityItem is the per-symbol section of the response.
// Insights and Statistics are omitted when the symbol had no usable data.
type EntityItem struct {
	Symbol      string               `json:"symbol"`
	Description string               `json:"description"`
	Status      string               `json:"status"`
	Notice      string               `json:"notice,omitempty"`
	Insights    *InsightItem         `json:"insights,omitempty"`
	Statistics  map[string]StatsItem `json:"statistics,omitempty"`
	Candles     []CandleItem         `json:"candles"`
}

// CandleItem is one fetched daily row. Non-finite prices are null.
type CandleItem struct {
	Time   string   `json:"time"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume int64    `json:"volume"`
}

// InsightItem carries the headline close-price metrics.
type InsightItem struct {
	LatestClose *float64 `json:"latest_close"`
	MeanClose   *float64 `json:"mean_close"`
	MaxClose    *float64 `json:"max_close"`
	MinClose    *float64 `json:"min_close"`
}

// StatsItem is the descriptive summary of one column. Non-finite values are null.
type StatsItem struct {
	Status string   `json:"status"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	P25    *float64 `json:"p25"`
	P50    *float64 `json:"p50"`
	P75    *float64 `json:"p75"`
	Max    *float64 `json:"max"`
	Error  string   `json:"error,omitempty"`
}

// PointItem is one sample of the comparison chart.
type PointItem struct {
	Time  string   `json:"time"`
	Value *float64 `json:"value"`
}

// Num converts v to a JSON-safe pointer: NaN and ±Inf become nil.
func Num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// FromReport converts the analysis result into the response body.
func FromReport(r *entity.Report) InsightResponse {
	out := InsightResponse{
		Symbols:    r.Selection.Symbols,
		Start:      r.Selection.Start.Format(dateLayout),
		End:        r.Selection.End.Format(dateLayout),
		Chart:      r.Dimension.String(),
		Entities:   make([]EntityItem, 0, len(r.Entities)),
		Comparison: make(map[string][]PointItem, len(r.Comparison)),
	}
	for _, e := range r.Entities {
		out.Entities = append(out.Entities, fromEntity(e))
	}
	for symbol, points := range r.Comparison {
		items := make([]PointItem, 0, len(points))
		for _, p := range points {
			items = append(items, PointItem{Time: p.Time.Format(dateLayout), Value: Num(p.Value)})
		}
		out.Comparison[symbol] = items
	}
	return out
}

func fromEntity(e entity.EntityReport) EntityItem {
	item := EntityItem{
		Symbol:      e.Symbol,
		Description: e.Description,
		Status:      string(e.Status),
		Notice:      e.Notice,
		Candles:     fromCandles(e.Series.Candles),
	}
	if e.Insights.Outcome == entity.OutcomeOK && e.Status == entity.StatusOK {
		item.Insights = &InsightItem{
			LatestClose: Num(e.Insights.LatestClose),
			MeanClose:   Num(e.Insights.MeanClose),
			MaxClose:    Num(e.Insights.MaxClose),
			MinClose:    Num(e.Insights.MinClose),
		}
	}
	if len(e.Statistics) > 0 {
		item.Statistics = make(map[string]StatsItem, len(e.Statistics))
		for f, stats := range e.Statistics {
			item.Statistics[string(f)] = fromStats(stats)
		}
	}
	return item
}

func fromCandles(candles []entity.Candle) []CandleItem {
	out := make([]CandleItem, 0, len(candles))
	for _, c := range candles {
		out = append(out, CandleItem{
			Time:   c.Time.Format(dateLayout),
			Open:   Num(c.Open),
			High:   Num(c.High),
			Low:    Num(c.Low),
			Close:  Num(c.Close),
			Volume: c.Volume,
		})
	}
	return out
}

func fromStats(s entity.DescriptiveStats) StatsItem {
	item := StatsItem{Status: s.Outcome.String(), Count: s.Count}
	if s.Outcome != entity.OutcomeOK {
		if s.Fault != nil {
			item.Error = s.Fault.Error()
		}
		return item
	}
	item.Mean = Num(s.Mean)
	item.Std = Num(s.Std)
	item.Min = Num(s.Min)
	item.P25 = Num(s.P25)
	item.P50 = Num(s.P50)
	item.P75 = Num(s.P75)
	item.Max = Num(s.Max)
	return item
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
