package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShoppingGeneratorDeterministic(t *testing.T) {
	cfg := DefaultShoppingConfig()
	cfg.Rows = 50

	a := NewShoppingDataGenerator(cfg).GenerateTable()
	b := NewShoppingDataGenerator(cfg).GenerateTable()

	assert.Equal(t, a.Names(), b.Names())
	assert.Equal(t, 50, a.Height())
	for i := 0; i < a.Width(); i++ {
		assert.Equal(t, a.Column(i).Values, b.Column(i).Values, a.Column(i).Name)
	}
}

func TestShoppingGeneratorNullRate(t *testing.T) {
	cfg := DefaultShoppingConfig()
	cfg.NullRate = 0

	tbl := NewShoppingDataGenerator(cfg).GenerateTable()
	col, ok := tbl.Lookup("amount")
	assert.True(t, ok)
	assert.Zero(t, col.NullCount())
}
