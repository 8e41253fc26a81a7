// Package profile holds the result types of a fact check: per-statistic
// partial tables and the merged report with its fixed column schema.
package profile

// Report column names, in output order
const (
	ColSNo          = "S_No"
	ColVariableName = "Variable_Name"
	ColDType        = "D_Type"
	ColNonMissing   = "No_of_Non_Missing_Values"
	ColMissing      = "No_of_Missing_Values"
	ColMissingPct   = "Missing_%"
	ColDistinct     = "Distinct_Values"
	ColMin          = "Min"
	ColMax          = "Max"
	ColMean         = "Mean"
	ColMedian       = "Median"
	ColMode         = "Mode"
)

// JoinKey is the column every partial table is keyed by
const JoinKey = ColVariableName

var schema = []string{
	ColSNo,
	ColVariableName,
	ColDType,
	ColNonMissing,
	ColMissing,
	ColMissingPct,
	ColDistinct,
	ColMin,
	ColMax,
	ColMean,
	ColMedian,
	ColMode,
}

// Schema returns the fixed report column order
func Schema() []string {
	out := make([]string, len(schema))
	copy(out, schema)
	return out
}

// PartialTable is the result of one statistic: one cell per covered column,
// keyed by variable name. Some statistics cover only a subset of the columns.
type PartialTable struct {
	Statistic string
	Keys      []string
	Cells     []Cell
}

// NewPartialTable creates an empty partial table for a statistic
func NewPartialTable(statistic string, capacity int) *PartialTable {
	return &PartialTable{
		Statistic: statistic,
		Keys:      make([]string, 0, capacity),
		Cells:     make([]Cell, 0, capacity),
	}
}

// Add appends a (variable, value) row
func (p *PartialTable) Add(variable string, cell Cell) {
	p.Keys = append(p.Keys, variable)
	p.Cells = append(p.Cells, cell)
}

// Len returns the number of rows
func (p *PartialTable) Len() int {
	return len(p.Keys)
}

// Diagnostic records a statistic that could not be computed for one column.
// The matching report cell is NA.
type Diagnostic struct {
	Variable  string `json:"variable"`
	Statistic string `json:"statistic"`
	Message   string `json:"message"`
}
