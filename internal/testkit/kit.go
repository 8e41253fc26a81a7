// Package testkit provides table fixtures for tests across the module.
package testkit

import (
	"fmt"
	"time"

	"factcheck/domain/table"
)

// Column builds a column from plain Go values; nil becomes null. Accepted value
// types: int, int64, float64, string, bool, time.Time.
func Column(name string, dataType table.DataType, values ...interface{}) table.Column {
	out := make([]table.Value, len(values))
	for i, raw := range values {
		out[i] = Value(dataType, raw)
	}
	return table.NewColumn(name, dataType, out...)
}

// Value converts one plain Go value; it panics on an unsupported type so that
// broken fixtures fail loudly.
func Value(dataType table.DataType, raw interface{}) table.Value {
	if raw == nil {
		return table.NewNullValue(dataType)
	}
	switch v := raw.(type) {
	case int:
		if dataType == table.TypeFloat64 {
			return table.NewFloatValue(float64(v))
		}
		return table.NewIntValue(int64(v))
	case int64:
		return table.NewIntValue(v)
	case float64:
		return table.NewFloatValue(v)
	case string:
		return table.NewStringValue(v)
	case bool:
		return table.NewBoolValue(v)
	case time.Time:
		return table.NewTimeValue(v)
	}
	panic(fmt.Sprintf("testkit: unsupported fixture value %T", raw))
}

// Table assembles columns into a table, panicking on invalid input
func Table(columns ...table.Column) *table.Table {
	return table.MustNew(columns...)
}

// ScenarioA is the mixed numeric/text table with one null per column
func ScenarioA() *table.Table {
	return Table(
		Column("A", table.TypeFloat64, 1, 2, 3.5, nil),
		Column("B", table.TypeString, "a", "b", "c", nil),
	)
}

// EmptyRows has two typed columns and no rows
func EmptyRows() *table.Table {
	return Table(
		Column("id", table.TypeInt64),
		Column("name", table.TypeString),
	)
}

// CSVFixture is a small delimited file covering every inferred type
const CSVFixture = `id,name,score,active,joined
1,alice,3.5,true,2024-01-02
2,bob,,false,2024-02-03
3,alice,7,true,
4,,1.25,,2024-01-02
`
