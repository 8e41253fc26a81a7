package profiler

import (
	"testing"

	"factcheck/domain/table"
	"factcheck/internal/testkit"

	"github.com/stretchr/testify/assert"
)

func TestMode(t *testing.T) {
	tests := []struct {
		name   string
		column table.Column
		want   interface{}
		ok     bool
	}{
		{
			name:   "single most frequent",
			column: testkit.Column("c", table.TypeString, "b", "a", "b", "c"),
			want:   "b",
			ok:     true,
		},
		{
			name:   "all tie returns first in source order",
			column: testkit.Column("c", table.TypeInt64, 3, 1, 2),
			want:   int64(3),
			ok:     true,
		},
		{
			name:   "tie among leaders returns first leader seen",
			column: testkit.Column("c", table.TypeString, "x", "y", "z", "y", "x"),
			want:   "x",
			ok:     true,
		},
		{
			name:   "nulls are dropped even when most frequent",
			column: testkit.Column("c", table.TypeFloat64, nil, nil, nil, 1.5, 2.5, 2.5),
			want:   2.5,
			ok:     true,
		},
		{
			name:   "all null has no mode",
			column: testkit.Column("c", table.TypeString, nil, nil),
			ok:     false,
		},
		{
			name:   "empty column has no mode",
			column: testkit.Column("c", table.TypeBoolean),
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mode(tt.column.Values)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, testkit.Value(tt.column.Type, tt.want), got)
		})
	}
}
