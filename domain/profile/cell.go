package profile

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"factcheck/domain/table"
)

// NAText is how an undefined statistic is rendered
const NAText = "NA"

// CellKind selects which field of a Cell holds its value
type CellKind string

const (
	KindNA    CellKind = "na"
	KindInt   CellKind = "int"
	KindFloat CellKind = "float"
	KindText  CellKind = "text"
	KindBool  CellKind = "bool"
	KindTime  CellKind = "time"
)

// Cell is one value in a partial or merged report table. KindNA is the explicit
// "undefined" marker, distinct from any computed value (including NaN or 0).
type Cell struct {
	Kind  CellKind
	Int   int64
	Float float64
	Text  string
	Bool  bool
	Time  time.Time
}

func NA() Cell                  { return Cell{Kind: KindNA} }
func IntCell(n int64) Cell      { return Cell{Kind: KindInt, Int: n} }
func FloatCell(f float64) Cell  { return Cell{Kind: KindFloat, Float: f} }
func TextCell(s string) Cell    { return Cell{Kind: KindText, Text: s} }
func BoolCell(b bool) Cell      { return Cell{Kind: KindBool, Bool: b} }
func TimeCell(t time.Time) Cell { return Cell{Kind: KindTime, Time: t} }

// CellOf converts a source value into a report cell; nulls become NA.
func CellOf(v table.Value) Cell {
	if v.IsNull {
		return NA()
	}
	switch v.Type {
	case table.TypeInt64:
		return IntCell(v.IntVal)
	case table.TypeFloat64:
		return FloatCell(v.FloatVal)
	case table.TypeBoolean:
		return BoolCell(v.BoolVal)
	case table.TypeDatetime:
		return TimeCell(v.TimeVal)
	case table.TypeString:
		return TextCell(v.StringVal)
	}
	return NA()
}

// IsNA reports whether the cell is the undefined marker
func (c Cell) IsNA() bool {
	return c.Kind == KindNA || c.Kind == ""
}

// Number returns the cell as float64 for Int and Float cells
func (c Cell) Number() (float64, bool) {
	switch c.Kind {
	case KindInt:
		return float64(c.Int), true
	case KindFloat:
		return c.Float, true
	}
	return 0, false
}

// String renders the cell for text sinks
func (c Cell) String() string {
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return table.FormatFloat(c.Float)
	case KindText:
		return c.Text
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindTime:
		return c.Time.Format(time.RFC3339)
	}
	return NAText
}

// Interface returns the native Go value, with NA as the NAText string. Used
// by spreadsheet writers that type cells by their Go value.
func (c Cell) Interface() interface{} {
	switch c.Kind {
	case KindInt:
		return c.Int
	case KindFloat:
		if math.IsInf(c.Float, 0) {
			return c.String()
		}
		return c.Float
	case KindText:
		return c.Text
	case KindBool:
		return c.Bool
	case KindTime:
		return c.Time
	}
	return NAText
}

// MarshalJSON encodes NA as null and every other cell as its native JSON type.
// Infinite floats have no JSON number form and are written as "+Inf" or "-Inf".
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindInt:
		return json.Marshal(c.Int)
	case KindFloat:
		if math.IsInf(c.Float, 0) {
			return json.Marshal(c.String())
		}
		return json.Marshal(c.Float)
	case KindText:
		return json.Marshal(c.Text)
	case KindBool:
		return json.Marshal(c.Bool)
	case KindTime:
		return json.Marshal(c.Time.Format(time.RFC3339))
	}
	return []byte("null"), nil
}
