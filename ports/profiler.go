package ports

import (
	"factcheck/domain/profile"
	"factcheck/domain/table"
)

// AnalyzerPort turns a source table into the merged fact-check report
type AnalyzerPort interface {
	Analyze(t *table.Table) (*profile.Report, error)
}
