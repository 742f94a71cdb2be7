package entity

// EntityStatus summarises how far the analysis of one symbol got.
type EntityStatus string

const (
	StatusOK     EntityStatus = "ok"
	StatusNoData EntityStatus = "no_data"
	StatusFault  EntityStatus = "fault"
)

// EntityReport bundles everything derived for one symbol.
type EntityReport struct {
	Symbol      string
	Description string
	Status      EntityStatus
	// Notice is a human readable explanation when Status is not StatusOK.
	Notice     string
	Insights   InsightSummary
	Statistics map[Field]DescriptiveStats
	Series     TimeSeries
}

// Report is the result of one analysis request.
// Entities follow the order of Selection.Symbols.
type Report struct {
	Selection  Selection
	Dimension  Dimension
	Entities   []EntityReport
	Comparison map[string][]Point
}
