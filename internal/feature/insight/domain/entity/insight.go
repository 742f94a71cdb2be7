package entity

import (
	"fmt"
	"strings"
	"time"
)

// Outcome tags a derived value as computed, empty or faulted.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeEmpty
	OutcomeFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFault:
		return "fault"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// InsightSummary holds the four headline close-price metrics of one series.
// The metric fields are only meaningful when Outcome is OutcomeOK.
type InsightSummary struct {
	Symbol      string
	Outcome     Outcome
	LatestClose float64
	MeanClose   float64
	MaxClose    float64
	MinClose    float64
	Fault       *ComputationFault
}

// DescriptiveStats summarises one numeric column.
// Std is the sample standard deviation and is NaN when Count < 2.
type DescriptiveStats struct {
	Outcome Outcome
	Count   int
	Mean    float64
	Std     float64
	Min     float64
	P25     float64
	P50     float64
	P75     float64
	Max     float64
	Fault   *ComputationFault
}

// Dimension selects the metric plotted in the comparison chart.
type Dimension int

const (
	ClosingPrice Dimension = iota
	Volume
)

// Field returns the candle column that backs the dimension.
func (d Dimension) Field() Field {
	if d == Volume {
		return FieldVolume
	}
	return FieldClose
}

func (d Dimension) String() string {
	if d == Volume {
		return "volume"
	}
	return "close"
}

// ParseDimension accepts "close", "closing_price", "closing price" and "volume", case-insensitively.
// An empty string selects ClosingPrice.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "close", "closing_price", "closing price":
		return ClosingPrice, nil
	case "volume":
		return Volume, nil
	default:
		return ClosingPrice, fmt.Errorf("unknown chart dimension %q", s)
	}
}

// Point is one chart-ready sample.
type Point struct {
	Time  time.Time
	Value float64
}
