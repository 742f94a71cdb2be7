package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when no symbol is selected, the date
	// range is empty or reversed, or too many symbols are requested.
	// It is fatal for the whole request.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptySeries indicates that a symbol has no rows in the selected range.
	// It only affects that symbol.
	ErrEmptySeries = errors.New("no data for the selected range")

	// ErrUnorderedSeries indicates that the timestamps of a series are not strictly increasing.
	ErrUnorderedSeries = errors.New("timestamps are not strictly increasing")

	// ErrComputation is wrapped by every ComputationFault.
	ErrComputation = errors.New("computation fault")
)

// ComputationFault is the diagnostic left in place of a metric that could
// not be derived. It carries the symbol the fault belongs to.
type ComputationFault struct {
	Symbol string
	Err    error
}

// NewComputationFault builds a fault for symbol.
func NewComputationFault(symbol string, err error) *ComputationFault {
	return &ComputationFault{Symbol: symbol, Err: err}
}

func (f *ComputationFault) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrComputation, f.Symbol, f.Err)
}

// Unwrap exposes both ErrComputation and the underlying cause to errors.Is.
func (f *ComputationFault) Unwrap() []error {
	return []error{ErrComputation, f.Err}
}
