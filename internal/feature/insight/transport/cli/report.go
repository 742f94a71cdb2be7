// Package cli renders an analysis report as plain text for the terminal.
package cli

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"stock_insight/internal/feature/insight/domain/entity"
)

const (
	dateLayout = "2006-01-02"
	notANumber = "n/a"
)

// Render writes the overview, per-symbol insights and statistics, and the
// comparison summary of r to w.
func Render(w io.Writer, r *entity.Report) error {
	p := &printer{w: w}
	p.printf("Stock Insight: %s\n", strings.Join(r.Selection.Symbols, ", "))
	p.printf("Range: %s to %s (end exclusive)\n", r.Selection.Start.Format(dateLayout), r.Selection.End.Format(dateLayout))

	for _, e := range r.Entities {
		p.printf("\n== %s ==\n", e.Symbol)
		if e.Description != "" {
			p.printf("%s\n", e.Description)
		}
		if e.Status != entity.StatusOK {
			p.printf("%s\n", e.Notice)
			continue
		}
		p.insights(e.Insights)
		p.statistics(e.Statistics)
		p.candles(e.Symbol, e.Series)
	}

	p.comparison(r)
	return p.err
}

// printer remembers the first write error so the render steps stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) table(fn func(tw *tabwriter.Writer)) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fn(tw)
	p.err = tw.Flush()
}

func (p *printer) insights(s entity.InsightSummary) {
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Latest close\t%s\t\n", Currency(s.LatestClose))
		fmt.Fprintf(tw, "Mean close\t%s\t\n", Currency(s.MeanClose))
		fmt.Fprintf(tw, "Highest close\t%s\t\n", Currency(s.MaxClose))
		fmt.Fprintf(tw, "Lowest close\t%s\t\n", Currency(s.MinClose))
	})
}

func (p *printer) statistics(stats map[entity.Field]entity.DescriptiveStats) {
	if len(stats) == 0 {
		return
	}
	p.printf("\n")
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprint(tw, "\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t\n")
		for _, f := range entity.AllFields {
			s, ok := stats[f]
			if !ok {
				continue
			}
			if s.Outcome != entity.OutcomeOK {
				fmt.Fprintf(tw, "%s\t%d\t%s\t\n", f, s.Count, s.Outcome)
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", f, s.Count,
				Number(s.Mean), Number(s.Std), Number(s.Min), Number(s.P25), Number(s.P50), Number(s.P75), Number(s.Max))
		}
	})
}

func (p *printer) candles(symbol string, series entity.TimeSeries) {
	if series.IsEmpty() {
		return
	}
	p.printf("\n%s Closing Price Data\n", symbol)
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprint(tw, "date\topen\thigh\tlow\tclose\tvolume\t\n")
		for _, c := range series.Candles {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", c.Time.Format(dateLayout),
				Number(c.Open), Number(c.High), Number(c.Low), Number(c.Close), Volume(c.Volume))
		}
	})
}

func (p *printer) comparison(r *entity.Report) {
	p.printf("\nComparison (%s)\n", r.Dimension)
	if len(r.Comparison) == 0 {
		p.printf("No data to compare.\n")
		return
	}
	symbols := make([]string, 0, len(r.Comparison))
	for s := range r.Comparison {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	format := Number
	if r.Dimension == entity.ClosingPrice {
		format = Currency
	}
	p.table(func(tw *tabwriter.Writer) {
		fmt.Fprint(tw, "symbol\tpoints\tfirst\tlast\tchange\t\n")
		for _, s := range symbols {
			pts := r.Comparison[s]
			if len(pts) == 0 {
				continue
			}
			first, last := pts[0].Value, pts[len(pts)-1].Value
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t\n", s, len(pts), format(first), format(last), Change(first, last))
		}
	})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Currency formats v as US dollars with two decimals, e.g. "$1,234.50".
func Currency(v float64) string {
	if !finite(v) {
		return notANumber
	}
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + group(d.StringFixed(2))
}

// Number formats v with two decimals and thousands separators.
func Number(v float64) string {
	if !finite(v) {
		return notANumber
	}
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-" + group(d.Abs().StringFixed(2))
	}
	return group(d.StringFixed(2))
}

// Volume formats a share count with thousands separators.
func Volume(v int64) string {
	d := decimal.NewFromInt(v)
	if d.IsNegative() {
		return "-" + group(d.Abs().String())
	}
	return group(d.String())
}

// Change formats the relative change from first to last as a signed percentage.
func Change(first, last float64) string {
	if !finite(first) || !finite(last) || first == 0 {
		return notANumber
	}
	a, b := decimal.NewFromFloat(first), decimal.NewFromFloat(last)
	pct := b.Sub(a).Div(a).Mul(decimal.NewFromInt(100))
	s := pct.StringFixed(2) + "%"
	if pct.IsPositive() {
		s = "+" + s
	}
	return s
}

// group inserts thousands separators into an unsigned fixed-point string.
func group(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
