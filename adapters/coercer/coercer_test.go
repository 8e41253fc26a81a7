package coercer

import (
	"testing"
	"time"

	"factcheck/domain/table"

	"github.com/stretchr/testify/assert"
)

func TestInferType(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name   string
		values []string
		want   table.DataType
	}{
		{"integers", []string{"1", "-2", " 30 "}, table.TypeInt64},
		{"integers with blanks", []string{"1", "", "3"}, table.TypeInt64},
		{"floats", []string{"1", "2.5", "1e3"}, table.TypeFloat64},
		{"booleans", []string{"true", "FALSE", "True"}, table.TypeBoolean},
		{"ones and zeros are integers", []string{"1", "0", "1"}, table.TypeInt64},
		{"dates", []string{"2024-01-02", "2024-02-03"}, table.TypeDatetime},
		{"text", []string{"North", "South", "1"}, table.TypeString},
		{"all blank", []string{"", " "}, table.TypeString},
		{"no rows", nil, table.TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.InferType(tt.values))
		})
	}
}

func TestCoerceColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	col := c.CoerceColumn("score", []string{"3.5", "", "7"})

	assert.Equal(t, "score", col.Name)
	assert.Equal(t, table.TypeFloat64, col.Type)
	assert.Equal(t, []table.Value{
		table.NewFloatValue(3.5),
		table.NewNullValue(table.TypeFloat64),
		table.NewFloatValue(7),
	}, col.Values)
}

func TestCoerceDatetime(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	v := c.CoerceValue("2024-01-02", table.TypeDatetime)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), v.TimeVal)
}

func TestCustomNullTokens(t *testing.T) {
	cfg := DefaultCoercionConfig()
	cfg.NullTokens = []string{"", "NA", "null"}
	c := NewTypeCoercer(cfg)

	col := c.CoerceColumn("n", []string{"1", "NA", "null", "4"})

	assert.Equal(t, table.TypeInt64, col.Type)
	assert.Equal(t, 2, col.NullCount())
}

func TestThresholdBelowOneNullsUnparseable(t *testing.T) {
	cfg := DefaultCoercionConfig()
	cfg.IntegerThreshold = 0.75
	c := NewTypeCoercer(cfg)

	col := c.CoerceColumn("n", []string{"1", "2", "3", "n/a"})

	assert.Equal(t, table.TypeInt64, col.Type)
	assert.True(t, col.Values[3].IsNull)
}

func TestLenientNumbers(t *testing.T) {
	cfg := DefaultCoercionConfig()
	cfg.LenientNumbers = true
	c := NewTypeCoercer(cfg)

	col := c.CoerceColumn("amount", []string{"$1,200", "(300)", "€45"})

	assert.Equal(t, table.TypeInt64, col.Type)
	assert.Equal(t, int64(1200), col.Values[0].IntVal)
	assert.Equal(t, int64(-300), col.Values[1].IntVal)
	assert.Equal(t, int64(45), col.Values[2].IntVal)
}

func TestAnalyzeTypeDistribution(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	a := c.AnalyzeTypeDistribution([]string{"1", "2.5", "", "x"})

	assert.Equal(t, 4, a.TotalCount)
	assert.Equal(t, 3, a.ValidCount)
	assert.Equal(t, 1, a.IntegerCount)
	assert.Equal(t, 2, a.NumericCount)
	assert.Equal(t, table.TypeString, a.RecommendedType)
}
