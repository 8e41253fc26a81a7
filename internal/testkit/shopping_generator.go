package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"factcheck/domain/table"
)

// ShoppingGeneratorConfig configures the synthetic orders table
type ShoppingGeneratorConfig struct {
	Rows       int       `json:"rows"`
	Customers  int       `json:"customers"`
	NullRate   float64   `json:"null_rate"`
	ReturnRate float64   `json:"return_rate"`
	StartDate  time.Time `json:"start_date"`
	WindowDays int       `json:"window_days"`
	Seed       int64     `json:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for order generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		Rows:       500,
		Customers:  40,
		NullRate:   0.1,
		ReturnRate: 0.08,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		WindowDays: 90,
		Seed:       42,
	}
}

// ShoppingDataGenerator produces a deterministic orders table with every column
// type and a controllable share of nulls
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateTable builds the orders table: order_id, customer, amount, quantity,
// returned, ordered_at, coupon (mostly null)
func (g *ShoppingDataGenerator) GenerateTable() *table.Table {
	n := g.config.Rows
	orderID := make([]table.Value, n)
	customer := make([]table.Value, n)
	amount := make([]table.Value, n)
	quantity := make([]table.Value, n)
	returned := make([]table.Value, n)
	orderedAt := make([]table.Value, n)
	coupon := make([]table.Value, n)

	for i := 0; i < n; i++ {
		orderID[i] = table.NewIntValue(int64(i + 1))
		customer[i] = g.maybeNull(table.TypeString, func() table.Value {
			return table.NewStringValue(fmt.Sprintf("customer_%03d", g.rng.Intn(g.config.Customers)+1))
		})
		amount[i] = g.maybeNull(table.TypeFloat64, func() table.Value {
			return table.NewFloatValue(float64(g.rng.Intn(50000)) / 100)
		})
		quantity[i] = g.maybeNull(table.TypeInt64, func() table.Value {
			return table.NewIntValue(int64(g.rng.Intn(5) + 1))
		})
		returned[i] = g.maybeNull(table.TypeBoolean, func() table.Value {
			return table.NewBoolValue(g.rng.Float64() < g.config.ReturnRate)
		})
		orderedAt[i] = g.maybeNull(table.TypeDatetime, func() table.Value {
			offset := time.Duration(g.rng.Intn(g.config.WindowDays*24)) * time.Hour
			return table.NewTimeValue(g.config.StartDate.Add(offset))
		})
		if g.rng.Float64() < 0.05 {
			coupon[i] = table.NewStringValue("SPRING10")
		} else {
			coupon[i] = table.NewNullValue(table.TypeString)
		}
	}

	return table.MustNew(
		table.NewColumn("order_id", table.TypeInt64, orderID...),
		table.NewColumn("customer", table.TypeString, customer...),
		table.NewColumn("amount", table.TypeFloat64, amount...),
		table.NewColumn("quantity", table.TypeInt64, quantity...),
		table.NewColumn("returned", table.TypeBoolean, returned...),
		table.NewColumn("ordered_at", table.TypeDatetime, orderedAt...),
		table.NewColumn("coupon", table.TypeString, coupon...),
	)
}

func (g *ShoppingDataGenerator) maybeNull(dataType table.DataType, gen func() table.Value) table.Value {
	if g.rng.Float64() < g.config.NullRate {
		return table.NewNullValue(dataType)
	}
	return gen()
}
