// Package profiler computes the fact-check report for a source table: one
// partial table per statistic, merged on Variable_Name into the fixed schema.
package profiler

import (
	"time"

	"factcheck/domain/core"
	"factcheck/domain/profile"
	"factcheck/domain/table"
	"factcheck/internal"
	"factcheck/internal/errors"
)

// Analyzer is stateless; one instance may serve concurrent calls on distinct tables.
type Analyzer struct {
	logger *internal.Logger
}

// NewAnalyzer creates an analyzer logging through logger (nil uses the default)
func NewAnalyzer(logger *internal.Logger) *Analyzer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Analyzer{logger: logger.WithComponent("Analyzer")}
}

// Analyze profiles every column of t. The table is read, never modified, and
// not retained. Data-dependent conditions (empty, all-null, mixed types) yield
// NA cells rather than errors; only a broken table precondition fails.
func (a *Analyzer) Analyze(t *table.Table) (*profile.Report, error) {
	if t == nil {
		return nil, errors.InvalidInput("source table is nil")
	}
	start := time.Now()

	cols := t.Columns()
	part := Partition(t.Descriptors())
	a.logger.Debug("partitioned %d columns: %d numeric, %d non-numeric",
		part.Len(), len(part.Numeric), len(part.NonNumeric))

	ex := NewExtractor()
	partials := []*profile.PartialTable{
		ex.DTypes(cols),
		ex.NonMissing(cols),
		ex.Missing(cols),
		ex.Distinct(cols),
		ex.Min(cols, part),
		ex.Max(cols, part),
		ex.Mean(cols, part),
		ex.Median(cols, part),
		ex.Mode(cols),
	}

	report, err := Unify(partials)
	if err != nil {
		if core.IsInvalidTableError(err) {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		return nil, errors.Wrap(err, "failed to merge statistics")
	}
	report.Diagnostics = ex.Diagnostics()

	for _, d := range report.Diagnostics {
		a.logger.Warn("%s of %q set to NA: %s", d.Statistic, d.Variable, d.Message)
	}
	a.logger.Info("profiled %d columns x %d rows in %.2fms",
		t.Width(), t.Height(), float64(time.Since(start).Nanoseconds())/1e6)
	return report, nil
}
