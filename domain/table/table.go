package table

import (
	"factcheck/domain/core"
)

// Column is a named, typed sequence of values
type Column struct {
	Name   string
	Type   DataType
	Values []Value
}

// NewColumn creates a column. Values are not copied.
func NewColumn(name string, dataType DataType, values ...Value) Column {
	return Column{Name: name, Type: dataType, Values: values}
}

// Len returns the number of values (null or not)
func (c Column) Len() int {
	return len(c.Values)
}

// NullCount returns the number of missing values
func (c Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull {
			n++
		}
	}
	return n
}

// NonNull returns the non-missing values in source order
func (c Column) NonNull() []Value {
	out := make([]Value, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.IsNull {
			out = append(out, v)
		}
	}
	return out
}

// Descriptor returns the column's (name, type) pair
func (c Column) Descriptor() Descriptor {
	return Descriptor{Name: c.Name, Type: c.Type}
}

// Table is an ordered sequence of equally long columns with unique names.
// It is treated as read-only once built.
type Table struct {
	columns []Column
	height  int
	index   map[string]int
}

// New validates and assembles a table. Column names must be unique and every
// column must have the same number of values; each non-null value must match
// its column's declared type.
func New(columns ...Column) (*Table, error) {
	t := &Table{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(t.columns, columns)

	for i, col := range t.columns {
		if _, dup := t.index[col.Name]; dup {
			return nil, core.NewDuplicateColumnError(col.Name)
		}
		t.index[col.Name] = i

		if i == 0 {
			t.height = col.Len()
		} else if col.Len() != t.height {
			return nil, core.NewRaggedColumnError(col.Name, col.Len(), t.height)
		}

		for _, v := range col.Values {
			if v.IsNull || v.Type == col.Type {
				continue
			}
			return nil, core.ErrValueTypeMismatch
		}
	}
	return t, nil
}

// MustNew is New for fixtures; it panics on an invalid table.
func MustNew(columns ...Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.columns)
}

// Height returns the number of rows
func (t *Table) Height() int {
	return t.height
}

// Columns returns the columns in source order. The slice is a copy; the value
// slices inside are shared and must not be modified.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column returns the i-th column
func (t *Table) Column(i int) Column {
	return t.columns[i]
}

// Lookup finds a column by name
func (t *Table) Lookup(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Names returns the column names in source order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Descriptors returns the (name, type) pairs in source order
func (t *Table) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Descriptor()
	}
	return out
}
