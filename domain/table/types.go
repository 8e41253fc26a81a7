// Package table defines the in-memory source table that gets profiled: an ordered
// set of named, typed columns whose values may be null.
package table

// DataType is the declared element type of a column. Its string form is the
// D_Type tag written to the report.
type DataType string

const (
	TypeInt64    DataType = "Int64"
	TypeFloat64  DataType = "Float64"
	TypeString   DataType = "String"
	TypeBoolean  DataType = "Boolean"
	TypeDatetime DataType = "Datetime"
	TypeNull     DataType = "Null" // column whose type could not be determined (no non-null values)
)

// String returns the D_Type tag
func (t DataType) String() string {
	return string(t)
}

// IsNumeric reports whether min/max/mean/median use numeric semantics for this type
func (t DataType) IsNumeric() bool {
	return t == TypeInt64 || t == TypeFloat64
}

// IsValid reports whether t is one of the known data types
func (t DataType) IsValid() bool {
	switch t {
	case TypeInt64, TypeFloat64, TypeString, TypeBoolean, TypeDatetime, TypeNull:
		return true
	}
	return false
}

// Descriptor is the (name, type) pair derived once per column. Name is the join
// key for every partial statistic table.
type Descriptor struct {
	Name string   `json:"name"`
	Type DataType `json:"type"`
}
