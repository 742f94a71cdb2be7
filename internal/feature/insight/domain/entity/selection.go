package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultMaxSymbols bounds how many symbols one request may compare.
	DefaultMaxSymbols = 5
	// DefaultStartDate is the start of the range when the caller gives none.
	DefaultStartDate = "2022-01-01"
)

// DefaultStart returns DefaultStartDate as a UTC day.
func DefaultStart() time.Time {
	return time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
}

var validate = validator.New()

// Selection is the user's choice of symbols and date range.
// End is exclusive.
type Selection struct {
	Symbols []string  `validate:"required,min=1,dive,required"`
	Start   time.Time `validate:"required"`
	End     time.Time `validate:"required,gtfield=Start"`
}

// NewSelection normalises symbols to trimmed upper case, drops blanks and
// duplicates (keeping first occurrence) and truncates dates to UTC days.
func NewSelection(symbols []string, start, end time.Time) Selection {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return Selection{Symbols: out, Start: truncateDay(start), End: truncateDay(end)}
}

// Validate checks the selection invariants. maxSymbols <= 0 disables the upper bound.
// Every returned error wraps ErrInvalidSelection.
func (s Selection) Validate(maxSymbols int) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidSelection, describeViolation(verrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	if maxSymbols > 0 && len(s.Symbols) > maxSymbols {
		return fmt.Errorf("%w: at most %d symbols can be compared, got %d", ErrInvalidSelection, maxSymbols, len(s.Symbols))
	}
	return nil
}

func describeViolation(fe validator.FieldError) string {
	switch {
	case fe.StructField() == "End" && fe.Tag() == "gtfield":
		return "start date must be before the end date"
	case strings.HasPrefix(fe.StructNamespace(), "Selection.Symbols"):
		return "select at least one symbol"
	default:
		return fmt.Sprintf("%s is %s", strings.ToLower(fe.StructField()), fe.Tag())
	}
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
