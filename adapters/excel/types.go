package excel

// RawData is a source file as read: trimmed headers and rows of raw cell text.
// Rows may be shorter than Headers when trailing cells are empty.
type RawData struct {
	Headers []string
	Rows    [][]string
}

// column returns the raw cells of column i, padding short rows with ""
func (d *RawData) column(i int) []string {
	cells := make([]string, len(d.Rows))
	for r, row := range d.Rows {
		if i < len(row) {
			cells[r] = row[i]
		}
	}
	return cells
}
