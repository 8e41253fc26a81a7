package profiler

import (
	"encoding/json"
	"math"
	"testing"

	"factcheck/domain/profile"
	"factcheck/domain/table"
	"factcheck/internal"
	"factcheck/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, tbl *table.Table) *profile.Report {
	t.Helper()
	report, err := NewAnalyzer(internal.Discard).Analyze(tbl)
	require.NoError(t, err)
	return report
}

func TestAnalyzeMixedTable(t *testing.T) {
	report := analyze(t, testkit.ScenarioA())
	require.Equal(t, 2, report.Len())

	a, ok := report.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, profile.IntCell(1), a[profile.ColSNo])
	assert.Equal(t, profile.TextCell("Float64"), a[profile.ColDType])
	assert.Equal(t, profile.IntCell(3), a[profile.ColNonMissing])
	assert.Equal(t, profile.IntCell(1), a[profile.ColMissing])
	assert.Equal(t, profile.FloatCell(25), a[profile.ColMissingPct])
	assert.Equal(t, profile.IntCell(3), a[profile.ColDistinct])
	assert.Equal(t, profile.FloatCell(1), a[profile.ColMin])
	assert.Equal(t, profile.FloatCell(3.5), a[profile.ColMax])
	assert.InDelta(t, 6.5/3, a[profile.ColMean].Float, 1e-12)
	assert.Equal(t, profile.FloatCell(2), a[profile.ColMedian])

	b, ok := report.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, profile.TextCell("String"), b[profile.ColDType])
	assert.True(t, b[profile.ColMean].IsNA())
	assert.True(t, b[profile.ColMedian].IsNA())
	assert.Equal(t, profile.TextCell("a"), b[profile.ColMin])
	assert.Equal(t, profile.TextCell("c"), b[profile.ColMax])
	assert.Equal(t, profile.TextCell("a"), b[profile.ColMode])
}

func TestAnalyzeZeroRows(t *testing.T) {
	report := analyze(t, testkit.EmptyRows())
	require.Equal(t, 2, report.Len())

	for _, name := range []string{"id", "name"} {
		row, ok := report.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, profile.IntCell(0), row[profile.ColNonMissing], name)
		assert.Equal(t, profile.IntCell(0), row[profile.ColMissing], name)
		assert.Equal(t, profile.IntCell(0), row[profile.ColDistinct], name)
		for _, col := range []string{profile.ColMissingPct, profile.ColMin, profile.ColMax, profile.ColMean, profile.ColMedian, profile.ColMode} {
			assert.True(t, row[col].IsNA(), "%s.%s", name, col)
		}
	}
	assert.Empty(t, report.Diagnostics)
}

func TestAnalyzeZeroColumns(t *testing.T) {
	report := analyze(t, testkit.Table())
	assert.Zero(t, report.Len())
	assert.Equal(t, profile.Schema(), report.Columns)
}

func TestAnalyzeModeTieBreak(t *testing.T) {
	report := analyze(t, testkit.Table(
		testkit.Column("tie", table.TypeString, "q", "p", "r"),
	))
	assert.Equal(t, profile.TextCell("q"), report.Get(0, profile.ColMode))
}

func TestAnalyzeNilTable(t *testing.T) {
	_, err := NewAnalyzer(internal.Discard).Analyze(nil)
	assert.Error(t, err)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	tbl := testkit.Table(testkit.Column("v", table.TypeInt64, 3, nil, 1, 2))
	before := append([]table.Value(nil), tbl.Column(0).Values...)

	analyze(t, tbl)

	assert.Equal(t, before, tbl.Column(0).Values, "median must not sort the source column")
}

func TestAnalyzeIdempotent(t *testing.T) {
	tbl := testkit.NewShoppingDataGenerator(testkit.DefaultShoppingConfig()).GenerateTable()

	first := analyze(t, tbl)
	second := analyze(t, tbl)

	assert.Equal(t, first.Records(), second.Records())
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

// TestAnalyzeReportProperties checks the report invariants over several
// generated tables with different null rates.
func TestAnalyzeReportProperties(t *testing.T) {
	for _, nullRate := range []float64{0, 0.2, 0.9, 1} {
		cfg := testkit.DefaultShoppingConfig()
		cfg.Rows = 120
		cfg.NullRate = nullRate
		cfg.Seed = int64(nullRate*100) + 7
		tbl := testkit.NewShoppingDataGenerator(cfg).GenerateTable()
		part := Partition(tbl.Descriptors())

		report := analyze(t, tbl)

		require.Equal(t, tbl.Width(), report.Len())
		assert.Equal(t, tbl.Names(), report.Variables())

		for i, name := range tbl.Names() {
			row, ok := report.Lookup(name)
			require.True(t, ok)

			assert.Equal(t, int64(i+1), row[profile.ColSNo].Int)
			have, missing := row[profile.ColNonMissing].Int, row[profile.ColMissing].Int
			assert.Equal(t, int64(tbl.Height()), have+missing, name)
			assert.LessOrEqual(t, row[profile.ColDistinct].Int, have, name)

			pct := row[profile.ColMissingPct]
			require.False(t, pct.IsNA(), name)
			assert.GreaterOrEqual(t, pct.Float, 0.0)
			assert.LessOrEqual(t, pct.Float, 100.0)

			if !part.IsNumeric(name) {
				assert.True(t, row[profile.ColMean].IsNA(), name)
				assert.True(t, row[profile.ColMedian].IsNA(), name)
				continue
			}
			lo, okLo := row[profile.ColMin].Number()
			mid, okMid := row[profile.ColMedian].Number()
			hi, okHi := row[profile.ColMax].Number()
			if okLo && okMid && okHi {
				assert.LessOrEqual(t, lo, mid, name)
				assert.LessOrEqual(t, mid, hi, name)
			}
		}
	}
}

func TestAnalyzeExtremeFloats(t *testing.T) {
	tests := []struct {
		name       string
		values     []interface{}
		wantMedian float64
		finiteMean bool
	}{
		{"large pair", []interface{}{1e308, 1.5e308}, 1.25e308, true},
		{"max float", []interface{}{math.MaxFloat64, math.MaxFloat64}, math.MaxFloat64, true},
		{"large mixed sign", []interface{}{-1.7e308, 1.7e308, 1.6e308, 1.7e308}, 1.65e308, true},
		{"positive infinity", []interface{}{1.0, math.Inf(1)}, math.Inf(1), false},
		{"both infinities", []interface{}{math.Inf(-1), 2.0, math.Inf(1)}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := analyze(t, testkit.Table(testkit.Column("x", table.TypeFloat64, tt.values...)))
			row, ok := report.Lookup("x")
			require.True(t, ok)

			lo, okLo := row[profile.ColMin].Number()
			mid, okMid := row[profile.ColMedian].Number()
			hi, okHi := row[profile.ColMax].Number()
			require.True(t, okLo && okMid && okHi)
			assert.LessOrEqual(t, lo, mid)
			assert.LessOrEqual(t, mid, hi)
			if math.IsInf(tt.wantMedian, 0) {
				assert.Equal(t, tt.wantMedian, mid)
			} else {
				assert.InEpsilon(t, tt.wantMedian, mid, 1e-12)
			}

			if tt.finiteMean {
				avg, ok := row[profile.ColMean].Number()
				require.True(t, ok)
				assert.False(t, math.IsInf(avg, 0))
				assert.LessOrEqual(t, lo, avg)
				assert.LessOrEqual(t, avg, hi)
			}

			_, err := json.Marshal(report)
			require.NoError(t, err)
		})
	}
}
