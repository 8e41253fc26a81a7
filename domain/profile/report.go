package profile

import (
	"bytes"
	"encoding/csv"

	"factcheck/domain/core"
)

// Report is the merged report table: one row per source column, columns in
// Schema order. It is fully materialized so sinks can retry formats freely.
type Report struct {
	Columns     []string     `json:"columns"`
	Rows        [][]Cell     `json:"rows"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Row is a name-addressed view of one report row
type Row map[string]Cell

// Len returns the number of rows
func (r *Report) Len() int {
	return len(r.Rows)
}

// ColumnIndex returns the position of a report column, or -1
func (r *Report) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Get returns the cell at (row, column name); NA if the column is unknown
func (r *Report) Get(row int, column string) Cell {
	idx := r.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(r.Rows) {
		return NA()
	}
	return r.Rows[row][idx]
}

// Lookup returns the row for a source variable
func (r *Report) Lookup(variable string) (Row, bool) {
	nameIdx := r.ColumnIndex(ColVariableName)
	if nameIdx < 0 {
		return nil, false
	}
	for _, cells := range r.Rows {
		if cells[nameIdx].Text != variable {
			continue
		}
		row := make(Row, len(r.Columns))
		for i, c := range r.Columns {
			row[c] = cells[i]
		}
		return row, true
	}
	return nil, false
}

// Variables returns the Variable_Name column in row order
func (r *Report) Variables() []string {
	nameIdx := r.ColumnIndex(ColVariableName)
	out := make([]string, 0, len(r.Rows))
	if nameIdx < 0 {
		return out
	}
	for _, cells := range r.Rows {
		out = append(out, cells[nameIdx].Text)
	}
	return out
}

// Records renders the header and every row as strings
func (r *Report) Records() [][]string {
	records := make([][]string, 0, len(r.Rows)+1)
	header := make([]string, len(r.Columns))
	copy(header, r.Columns)
	records = append(records, header)
	for _, cells := range r.Rows {
		rec := make([]string, len(cells))
		for i, c := range cells {
			rec[i] = c.String()
		}
		records = append(records, rec)
	}
	return records
}

// Fingerprint hashes the CSV encoding of Records. Two reports with identical
// content have identical fingerprints.
func (r *Report) Fingerprint() core.ReportHash {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.WriteAll(r.Records())
	return core.NewReportHash(buf.Bytes())
}
