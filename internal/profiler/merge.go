package profiler

import (
	"fmt"

	"factcheck/domain/core"
	"factcheck/domain/profile"

	"gonum.org/v1/gonum/floats/scalar"
)

// wideTable is the merge accumulator: Variable_Name plus one column per
// statistic joined so far. Row order is fixed by the anchor.
type wideTable struct {
	columns []string
	rows    [][]profile.Cell
	colIdx  map[string]int
}

func newWideTable(anchor *profile.PartialTable) (*wideTable, error) {
	w := &wideTable{
		columns: []string{profile.JoinKey, anchor.Statistic},
		rows:    make([][]profile.Cell, 0, anchor.Len()),
		colIdx:  map[string]int{profile.JoinKey: 0, anchor.Statistic: 1},
	}
	seen := make(map[string]struct{}, anchor.Len())
	for i, key := range anchor.Keys {
		if _, dup := seen[key]; dup {
			return nil, core.NewDuplicateColumnError(key)
		}
		seen[key] = struct{}{}
		w.rows = append(w.rows, []profile.Cell{profile.TextCell(key), anchor.Cells[i]})
	}
	return w, nil
}

func (w *wideTable) addColumn(name string, cells []profile.Cell) error {
	if _, exists := w.colIdx[name]; exists {
		return fmt.Errorf("%w: column %q joined twice", core.ErrDuplicateJoinKey, name)
	}
	w.colIdx[name] = len(w.columns)
	w.columns = append(w.columns, name)
	for i := range w.rows {
		w.rows[i] = append(w.rows[i], cells[i])
	}
	return nil
}

// leftJoin adds partial's statistic as a new column. Anchor rows the partial
// does not cover get NA; partial keys unknown to the anchor are dropped.
func (w *wideTable) leftJoin(partial *profile.PartialTable) error {
	lookup := make(map[string]profile.Cell, partial.Len())
	for i, key := range partial.Keys {
		if _, dup := lookup[key]; dup {
			return fmt.Errorf("%w: %q in %s", core.ErrDuplicateJoinKey, key, partial.Statistic)
		}
		lookup[key] = partial.Cells[i]
	}

	cells := make([]profile.Cell, len(w.rows))
	for i, row := range w.rows {
		if c, ok := lookup[row[0].Text]; ok {
			cells[i] = c
		} else {
			cells[i] = profile.NA()
		}
	}
	return w.addColumn(partial.Statistic, cells)
}

func (w *wideTable) cell(row int, column string) profile.Cell {
	idx, ok := w.colIdx[column]
	if !ok {
		return profile.NA()
	}
	return w.rows[row][idx]
}

// missingPercent is missing/(missing+non_missing)*100 rounded to 2 decimals,
// NA when either count is unknown or both are zero.
func missingPercent(missing, nonMissing profile.Cell) profile.Cell {
	m, okM := missing.Number()
	n, okN := nonMissing.Number()
	if !okM || !okN || m+n == 0 {
		return profile.NA()
	}
	return profile.FloatCell(scalar.Round(m/(m+n)*100, 2))
}

// Unify left-joins the partial tables on Variable_Name, anchored on the first
// one, derives Missing_% and S_No, and projects onto the fixed report schema.
func Unify(partials []*profile.PartialTable) (*profile.Report, error) {
	if len(partials) == 0 {
		return &profile.Report{Columns: profile.Schema(), Rows: [][]profile.Cell{}}, nil
	}

	acc, err := newWideTable(partials[0])
	if err != nil {
		return nil, err
	}
	for _, partial := range partials[1:] {
		if err := acc.leftJoin(partial); err != nil {
			return nil, err
		}
	}

	pct := make([]profile.Cell, len(acc.rows))
	sno := make([]profile.Cell, len(acc.rows))
	for i := range acc.rows {
		pct[i] = missingPercent(acc.cell(i, profile.ColMissing), acc.cell(i, profile.ColNonMissing))
		sno[i] = profile.IntCell(int64(i + 1))
	}
	if err := acc.addColumn(profile.ColMissingPct, pct); err != nil {
		return nil, err
	}
	if err := acc.addColumn(profile.ColSNo, sno); err != nil {
		return nil, err
	}

	return project(acc, profile.Schema())
}

func project(acc *wideTable, columns []string) (*profile.Report, error) {
	indexes := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := acc.colIdx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrSchemaColumnMissing, name)
		}
		indexes[i] = idx
	}

	report := &profile.Report{
		Columns: columns,
		Rows:    make([][]profile.Cell, len(acc.rows)),
	}
	for r, row := range acc.rows {
		out := make([]profile.Cell, len(indexes))
		for c, idx := range indexes {
			out[c] = row[idx]
		}
		report.Rows[r] = out
	}
	return report, nil
}
