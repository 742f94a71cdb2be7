// Package entity defines the domain models for the insight feature.
package entity

import "time"

// Candle represents one OHLCV (Open, High, Low, Close, Volume) row of a
// daily price series.
type Candle struct {
	Time   time.Time // Trading day
	Open   float64   // Opening price
	High   float64   // Highest price during this period
	Low    float64   // Lowest price during this period
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// TimeSeries is the price history of one symbol for one request.
// Candles are ordered by strictly increasing Time and are never mutated
// after the retrieval collaborator returns them.
type TimeSeries struct {
	Symbol  string
	Candles []Candle
}

// Len returns the number of rows.
func (s TimeSeries) Len() int { return len(s.Candles) }

// IsEmpty reports whether the series has no rows.
func (s TimeSeries) IsEmpty() bool { return len(s.Candles) == 0 }

// Field identifies one numeric column of a Candle.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// AllFields lists the columns of the summary statistics table in display order.
var AllFields = []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// Value returns the column value of c.
func (f Field) Value(c Candle) float64 {
	switch f {
	case FieldOpen:
		return c.Open
	case FieldHigh:
		return c.High
	case FieldLow:
		return c.Low
	case FieldVolume:
		return float64(c.Volume)
	default:
		return c.Close
	}
}
