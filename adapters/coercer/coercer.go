// Package coercer infers a column type from raw text cells and converts the
// cells into typed table values.
package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"factcheck/domain/table"
)

// TypeCoercer handles deterministic type inference and coercion
type TypeCoercer struct {
	config CoercionConfig
	nulls  map[string]struct{}
}

// CoercionConfig defines the inference thresholds and parsing rules
type CoercionConfig struct {
	IntegerThreshold   float64  `json:"integer_threshold"`   // share of non-null values that must parse as integers
	NumericThreshold   float64  `json:"numeric_threshold"`   // share that must parse as numbers
	BooleanThreshold   float64  `json:"boolean_threshold"`   // share that must parse as booleans
	TimestampThreshold float64  `json:"timestamp_threshold"` // share that must parse as timestamps
	NullTokens         []string `json:"null_tokens"`         // cell texts read as missing
	TrimSpace          bool     `json:"trim_space"`          // trim cells before parsing
	LenientNumbers     bool     `json:"lenient_numbers"`     // accept currency symbols, thousands separators, (123) negatives
}

// DefaultCoercionConfig requires every non-null value to parse before a column
// is typed, and treats only the empty cell as missing.
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		IntegerThreshold:   1.0,
		NumericThreshold:   1.0,
		BooleanThreshold:   1.0,
		TimestampThreshold: 1.0,
		NullTokens:         []string{""},
		TrimSpace:          true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	nulls := make(map[string]struct{}, len(config.NullTokens))
	for _, tok := range config.NullTokens {
		nulls[tok] = struct{}{}
	}
	return &TypeCoercer{config: config, nulls: nulls}
}

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"01-02-06",
	"1/2/06 15:04",
}

// TypeAnalysis counts how many non-null values parse as each type
type TypeAnalysis struct {
	TotalCount      int            `json:"total_count"`
	ValidCount      int            `json:"valid_count"`
	IntegerCount    int            `json:"integer_count"`
	NumericCount    int            `json:"numeric_count"`
	BooleanCount    int            `json:"boolean_count"`
	TimestampCount  int            `json:"timestamp_count"`
	RecommendedType table.DataType `json:"recommended_type"`
}

func (a TypeAnalysis) ratio(n int) float64 {
	if a.ValidCount == 0 {
		return 0
	}
	return float64(n) / float64(a.ValidCount)
}

func (c *TypeCoercer) clean(raw string) string {
	if c.config.TrimSpace {
		return strings.TrimSpace(raw)
	}
	return raw
}

// IsNull reports whether a raw cell is a missing value
func (c *TypeCoercer) IsNull(raw string) bool {
	_, ok := c.nulls[c.clean(raw)]
	return ok
}

// AnalyzeTypeDistribution classifies a column sample
func (c *TypeCoercer) AnalyzeTypeDistribution(raw []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(raw)}
	for _, cell := range raw {
		if c.IsNull(cell) {
			continue
		}
		analysis.ValidCount++
		s := c.clean(cell)
		if _, ok := c.parseInt(s); ok {
			analysis.IntegerCount++
		}
		if _, ok := c.parseFloat(s); ok {
			analysis.NumericCount++
		}
		if _, ok := parseBool(s); ok {
			analysis.BooleanCount++
		}
		if _, ok := parseTimestamp(s); ok {
			analysis.TimestampCount++
		}
	}
	analysis.RecommendedType = c.determineRecommendedType(analysis)
	return analysis
}

// determineRecommendedType checks thresholds from most to least restrictive.
// A column with no non-null values is String.
func (c *TypeCoercer) determineRecommendedType(a TypeAnalysis) table.DataType {
	if a.ValidCount == 0 {
		return table.TypeString
	}
	switch {
	case a.ratio(a.IntegerCount) >= c.config.IntegerThreshold:
		return table.TypeInt64
	case a.ratio(a.NumericCount) >= c.config.NumericThreshold:
		return table.TypeFloat64
	case a.ratio(a.BooleanCount) >= c.config.BooleanThreshold:
		return table.TypeBoolean
	case a.ratio(a.TimestampCount) >= c.config.TimestampThreshold:
		return table.TypeDatetime
	}
	return table.TypeString
}

// InferType returns the recommended type for a column of raw cells
func (c *TypeCoercer) InferType(raw []string) table.DataType {
	return c.AnalyzeTypeDistribution(raw).RecommendedType
}

// CoerceValue converts one raw cell to dataType. Cells that do not parse
// (possible only with thresholds below 1) become null.
func (c *TypeCoercer) CoerceValue(raw string, dataType table.DataType) table.Value {
	if c.IsNull(raw) {
		return table.NewNullValue(dataType)
	}
	s := c.clean(raw)
	switch dataType {
	case table.TypeInt64:
		if n, ok := c.parseInt(s); ok {
			return table.NewIntValue(n)
		}
	case table.TypeFloat64:
		if f, ok := c.parseFloat(s); ok {
			return table.NewFloatValue(f)
		}
	case table.TypeBoolean:
		if b, ok := parseBool(s); ok {
			return table.NewBoolValue(b)
		}
	case table.TypeDatetime:
		if t, ok := parseTimestamp(s); ok {
			return table.NewTimeValue(t)
		}
	case table.TypeString:
		return table.NewStringValue(s)
	}
	return table.NewNullValue(dataType)
}

// CoerceColumn infers the type of raw and converts every cell
func (c *TypeCoercer) CoerceColumn(name string, raw []string) table.Column {
	dataType := c.InferType(raw)
	values := make([]table.Value, len(raw))
	for i, cell := range raw {
		values[i] = c.CoerceValue(cell, dataType)
	}
	return table.NewColumn(name, dataType, values...)
}

func (c *TypeCoercer) parseInt(s string) (int64, bool) {
	if c.config.LenientNumbers {
		s = normalizeNumber(s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func (c *TypeCoercer) parseFloat(s string) (float64, bool) {
	if c.config.LenientNumbers {
		s = normalizeNumber(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// normalizeNumber strips currency symbols and thousands separators and turns
// accounting negatives "(123)" into "-123".
func normalizeNumber(s string) string {
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		negative = true
	}
	for _, symbol := range []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if negative {
		s = "-" + s
	}
	return s
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
