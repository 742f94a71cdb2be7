package cli

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_insight/internal/feature/insight/domain/entity"
)

func TestFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "currency", got: Currency(1234.5), want: "$1,234.50"},
		{name: "currency small", got: Currency(12), want: "$12.00"},
		{name: "currency negative", got: Currency(-3), want: "-$3.00"},
		{name: "currency rounds", got: Currency(0.005), want: "$0.01"},
		{name: "currency NaN", got: Currency(math.NaN()), want: "n/a"},
		{name: "number millions", got: Number(1000000), want: "1,000,000.00"},
		{name: "number six digits", got: Number(123456.789), want: "123,456.79"},
		{name: "number negative", got: Number(-1500), want: "-1,500.00"},
		{name: "number Inf", got: Number(math.Inf(1)), want: "n/a"},
		{name: "volume", got: Volume(1234567), want: "1,234,567"},
		{name: "volume small", got: Volume(800), want: "800"},
		{name: "change up", got: Change(100, 110), want: "+10.00%"},
		{name: "change down", got: Change(100, 90), want: "-10.00%"},
		{name: "change flat", got: Change(5, 5), want: "0.00%"},
		{name: "change from zero", got: Change(0, 5), want: "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	d := func(day int) time.Time { return time.Date(2022, 1, day, 0, 0, 0, 0, time.UTC) }
	report := &entity.Report{
		Selection: entity.Selection{Symbols: []string{"META", "AAPL"}, Start: d(1), End: d(10)},
		Dimension: entity.ClosingPrice,
		Entities: []entity.EntityReport{
			{
				Symbol:      "META",
				Description: "Formerly Facebook.",
				Status:      entity.StatusOK,
				Insights:    entity.InsightSummary{Symbol: "META", Outcome: entity.OutcomeOK, LatestClose: 12, MeanClose: 11, MaxClose: 12, MinClose: 10},
				Statistics: map[entity.Field]entity.DescriptiveStats{
					entity.FieldClose:  {Outcome: entity.OutcomeOK, Count: 3, Mean: 11, Std: 1, Min: 10, P25: 10.5, P50: 11, P75: 11.5, Max: 12},
					entity.FieldVolume: {Outcome: entity.OutcomeFault, Count: 3},
				},
				Series: entity.TimeSeries{Symbol: "META", Candles: []entity.Candle{
					{Time: d(3), Open: 9.5, High: 10.5, Low: 9, Close: 10, Volume: 1234567},
					{Time: d(4), Open: 10, High: 11.25, Low: 9.75, Close: 11, Volume: 800},
				}},
			},
			{
				Symbol:      "AAPL",
				Description: "No description available.",
				Status:      entity.StatusNoData,
				Notice:      "No data available for AAPL in the selected date range.",
			},
		},
		Comparison: map[string][]entity.Point{
			"META": {{Time: d(3), Value: 10}, {Time: d(4), Value: 11}, {Time: d(5), Value: 12}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report))
	out := buf.String()

	for _, want := range []string{
		"Stock Insight: META, AAPL",
		"Range: 2022-01-01 to 2022-01-10 (end exclusive)",
		"== META ==",
		"Formerly Facebook.",
		"$12.00",
		"$11.00",
		"$10.00",
		"10.50",
		"fault",
		"META Closing Price Data",
		"2022-01-03",
		"11.25",
		"1,234,567",
		"== AAPL ==",
		"No data available for AAPL in the selected date range.",
		"Comparison (close)",
		"+20.00%",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Latest close\t", "tabs must be expanded")
	assert.NotContains(t, out, "AAPL Closing Price Data", "symbols without data print no table")
}

func TestRender_NoComparison(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Render(&buf, &entity.Report{Selection: entity.Selection{Symbols: []string{"KO"}}, Dimension: entity.Volume})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Comparison (volume)")
	assert.Contains(t, buf.String(), "No data to compare.")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRender_WriteError(t *testing.T) {
	t.Parallel()

	err := Render(failingWriter{}, &entity.Report{Selection: entity.Selection{Symbols: []string{"KO"}}})
	assert.EqualError(t, err, "broken pipe")
}
