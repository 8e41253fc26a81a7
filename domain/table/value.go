package table

import (
	"math"
	"strconv"
	"time"
)

// Value is a single cell of a source column. Exactly one of the typed fields is
// meaningful, selected by Type; IsNull marks a missing value.
type Value struct {
	Type      DataType
	IntVal    int64
	FloatVal  float64
	StringVal string
	BoolVal   bool
	TimeVal   time.Time
	IsNull    bool
}

// NewIntValue creates an Int64 value
func NewIntValue(n int64) Value {
	return Value{Type: TypeInt64, IntVal: n}
}

// NewFloatValue creates a Float64 value. NaN is stored as null.
func NewFloatValue(f float64) Value {
	if math.IsNaN(f) {
		return NewNullValue(TypeFloat64)
	}
	return Value{Type: TypeFloat64, FloatVal: f}
}

// NewStringValue creates a String value
func NewStringValue(s string) Value {
	return Value{Type: TypeString, StringVal: s}
}

// NewBoolValue creates a Boolean value
func NewBoolValue(b bool) Value {
	return Value{Type: TypeBoolean, BoolVal: b}
}

// NewTimeValue creates a Datetime value
func NewTimeValue(t time.Time) Value {
	return Value{Type: TypeDatetime, TimeVal: t}
}

// NewNullValue creates a missing value for a column of the given type
func NewNullValue(t DataType) Value {
	return Value{Type: t, IsNull: true}
}

// Float returns the numeric value as float64. ok is false for nulls and
// non-numeric values.
func (v Value) Float() (float64, bool) {
	if v.IsNull {
		return 0, false
	}
	switch v.Type {
	case TypeInt64:
		return float64(v.IntVal), true
	case TypeFloat64:
		return v.FloatVal, true
	}
	return 0, false
}

// Key returns a canonical encoding used to test two values for equality
// when counting distinct values and modes.
func (v Value) Key() string {
	if v.IsNull {
		return "\x00null"
	}
	switch v.Type {
	case TypeInt64:
		return "i:" + strconv.FormatInt(v.IntVal, 10)
	case TypeFloat64:
		if v.FloatVal == 0 {
			return "f:0" // -0 and +0 are one value
		}
		return "f:" + strconv.FormatFloat(v.FloatVal, 'g', -1, 64)
	case TypeString:
		return "s:" + v.StringVal
	case TypeBoolean:
		return "b:" + strconv.FormatBool(v.BoolVal)
	case TypeDatetime:
		return "t:" + strconv.FormatInt(v.TimeVal.UnixNano(), 10)
	}
	return "?:" + v.String()
}

// Less orders two non-null values of the same type: numeric order for numbers,
// false before true, chronological for datetimes and byte-wise lexicographic for strings.
func (v Value) Less(other Value) bool {
	switch v.Type {
	case TypeInt64:
		return v.IntVal < other.IntVal
	case TypeFloat64:
		return v.FloatVal < other.FloatVal
	case TypeBoolean:
		return !v.BoolVal && other.BoolVal
	case TypeDatetime:
		return v.TimeVal.Before(other.TimeVal)
	}
	return v.String() < other.String()
}

// String returns the display form of the value
func (v Value) String() string {
	if v.IsNull {
		return ""
	}
	switch v.Type {
	case TypeInt64:
		return strconv.FormatInt(v.IntVal, 10)
	case TypeFloat64:
		return FormatFloat(v.FloatVal)
	case TypeString:
		return v.StringVal
	case TypeBoolean:
		return strconv.FormatBool(v.BoolVal)
	case TypeDatetime:
		return v.TimeVal.Format(time.RFC3339)
	}
	return v.StringVal
}

// FormatFloat prints f in plain decimal notation, switching to exponent form
// for magnitudes outside [1e-6, 1e21). Infinities print as +Inf and -Inf.
func FormatFloat(f float64) string {
	if abs := math.Abs(f); f != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
