package profiler

import (
	"fmt"
	"math"
	"sort"

	"factcheck/domain/profile"
	"factcheck/domain/table"

	"github.com/montanaflynn/stats"
)

// columnStat computes one statistic for one column. An error marks the cell NA
// and is recorded as a diagnostic; it never stops the other columns.
type columnStat func(col table.Column) (profile.Cell, error)

// Extractor builds one partial table per statistic. It collects per-column
// failures as diagnostics. Use a fresh Extractor per analysis.
type Extractor struct {
	diagnostics []profile.Diagnostic
}

// NewExtractor creates an extractor with no diagnostics
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Diagnostics returns the per-column failures seen so far
func (e *Extractor) Diagnostics() []profile.Diagnostic {
	return e.diagnostics
}

func (e *Extractor) run(statistic string, cols []table.Column, fn columnStat) *profile.PartialTable {
	partial := profile.NewPartialTable(statistic, len(cols))
	for _, col := range cols {
		cell, err := fn(col)
		if err != nil {
			e.diagnostics = append(e.diagnostics, profile.Diagnostic{
				Variable:  col.Name,
				Statistic: statistic,
				Message:   err.Error(),
			})
			cell = profile.NA()
		}
		partial.Add(col.Name, cell)
	}
	return partial
}

// DTypes is the anchor partial: every column, in source order
func (e *Extractor) DTypes(cols []table.Column) *profile.PartialTable {
	return e.run(profile.ColDType, cols, func(col table.Column) (profile.Cell, error) {
		return profile.TextCell(col.Type.String()), nil
	})
}

// NonMissing counts non-null values per column
func (e *Extractor) NonMissing(cols []table.Column) *profile.PartialTable {
	return e.run(profile.ColNonMissing, cols, func(col table.Column) (profile.Cell, error) {
		return profile.IntCell(int64(col.Len() - col.NullCount())), nil
	})
}

// Missing counts null values per column
func (e *Extractor) Missing(cols []table.Column) *profile.PartialTable {
	return e.run(profile.ColMissing, cols, func(col table.Column) (profile.Cell, error) {
		return profile.IntCell(int64(col.NullCount())), nil
	})
}

// Distinct counts unique non-null values per column. Null is not a distinct value.
func (e *Extractor) Distinct(cols []table.Column) *profile.PartialTable {
	return e.run(profile.ColDistinct, cols, func(col table.Column) (profile.Cell, error) {
		seen := make(map[string]struct{}, col.Len())
		for _, v := range col.Values {
			if !v.IsNull {
				seen[v.Key()] = struct{}{}
			}
		}
		return profile.IntCell(int64(len(seen))), nil
	})
}

// Min computes the smallest non-null value, using numeric ordering for the
// numeric partition and the type's natural ordering otherwise.
func (e *Extractor) Min(cols []table.Column, part TypePartition) *profile.PartialTable {
	return e.run(profile.ColMin, cols, func(col table.Column) (profile.Cell, error) {
		if part.IsNumeric(col.Name) {
			return numericExtreme(col, stats.Min, func(a, b int64) bool { return a < b })
		}
		return orderedExtreme(col, func(a, b table.Value) bool { return a.Less(b) }), nil
	})
}

// Max computes the largest non-null value; see Min for the ordering rules.
func (e *Extractor) Max(cols []table.Column, part TypePartition) *profile.PartialTable {
	return e.run(profile.ColMax, cols, func(col table.Column) (profile.Cell, error) {
		if part.IsNumeric(col.Name) {
			return numericExtreme(col, stats.Max, func(a, b int64) bool { return a > b })
		}
		return orderedExtreme(col, func(a, b table.Value) bool { return b.Less(a) }), nil
	})
}

// Mean averages the numeric partition only. Columns outside it are absent from
// the partial and become NA at merge time.
func (e *Extractor) Mean(cols []table.Column, part TypePartition) *profile.PartialTable {
	return e.run(profile.ColMean, numericOnly(cols, part), func(col table.Column) (profile.Cell, error) {
		return numericSummary(col, mean)
	})
}

// Median of the numeric partition only
func (e *Extractor) Median(cols []table.Column, part TypePartition) *profile.PartialTable {
	return e.run(profile.ColMedian, numericOnly(cols, part), func(col table.Column) (profile.Cell, error) {
		return numericSummary(col, median)
	})
}

// Mode picks the most frequent non-null value per column
func (e *Extractor) Mode(cols []table.Column) *profile.PartialTable {
	return e.run(profile.ColMode, cols, func(col table.Column) (profile.Cell, error) {
		v, ok := Mode(col.Values)
		if !ok {
			return profile.NA(), nil
		}
		return profile.CellOf(v), nil
	})
}

func numericOnly(cols []table.Column, part TypePartition) []table.Column {
	out := make([]table.Column, 0, len(part.Numeric))
	for _, col := range cols {
		if part.IsNumeric(col.Name) {
			out = append(out, col)
		}
	}
	return out
}

// floatData collects the non-null values of a numeric column
func floatData(col table.Column) (stats.Float64Data, error) {
	data := make(stats.Float64Data, 0, col.Len())
	for _, v := range col.Values {
		if v.IsNull {
			continue
		}
		f, ok := v.Float()
		if !ok {
			return nil, fmt.Errorf("value %q is not numeric", v.String())
		}
		data = append(data, f)
	}
	return data, nil
}

func numericSummary(col table.Column, fn func(stats.Float64Data) (float64, error)) (profile.Cell, error) {
	data, err := floatData(col)
	if err != nil {
		return profile.NA(), err
	}
	if len(data) == 0 {
		return profile.NA(), nil
	}
	result, err := fn(data)
	if err != nil {
		return profile.NA(), err
	}
	if math.IsNaN(result) {
		return profile.NA(), fmt.Errorf("result is not a number")
	}
	return profile.FloatCell(result), nil
}

// mean falls back to a scaled running mean when the plain sum overflows on
// finite input.
func mean(data stats.Float64Data) (float64, error) {
	m, err := stats.Mean(data)
	if err != nil || !math.IsInf(m, 0) || !allFinite(data) {
		return m, err
	}
	m = 0
	for i, x := range data {
		k := float64(i + 1)
		m += x/k - m/k
	}
	return m, nil
}

// median takes the midpoint of the two middle values without adding them
// first, so finite input never yields an infinite median.
func median(data stats.Float64Data) (float64, error) {
	m, err := stats.Median(data)
	if err != nil || !math.IsInf(m, 0) || !allFinite(data) {
		return m, err
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return sorted[n/2-1]/2 + sorted[n/2]/2, nil
}

func allFinite(data stats.Float64Data) bool {
	for _, x := range data {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

// numericExtreme keeps Int64 columns exact and integer-typed; Float64 columns go
// through the stats package.
func numericExtreme(col table.Column, fn func(stats.Float64Data) (float64, error), better func(a, b int64) bool) (profile.Cell, error) {
	if col.Type == table.TypeInt64 {
		found := false
		var best int64
		for _, v := range col.Values {
			if v.IsNull {
				continue
			}
			if v.Type != table.TypeInt64 {
				return profile.NA(), fmt.Errorf("value %q is not an integer", v.String())
			}
			if !found || better(v.IntVal, best) {
				best = v.IntVal
				found = true
			}
		}
		if !found {
			return profile.NA(), nil
		}
		return profile.IntCell(best), nil
	}
	return numericSummary(col, fn)
}

func orderedExtreme(col table.Column, better func(a, b table.Value) bool) profile.Cell {
	found := false
	var best table.Value
	for _, v := range col.Values {
		if v.IsNull {
			continue
		}
		if !found || better(v, best) {
			best = v
			found = true
		}
	}
	if !found {
		return profile.NA()
	}
	return profile.CellOf(best)
}
