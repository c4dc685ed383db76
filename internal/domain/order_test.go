package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("rejects empty order", func(t *testing.T) {
		_, err := NewOrder(nil, nil, nil)
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("rejects non-positive recipe id", func(t *testing.T) {
		_, err := NewOrder([]OrderLine{{RecipeID: 0, Quantity: 1}}, nil, nil)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrder([]OrderLine{{RecipeID: 1, Quantity: 0}}, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("starts pending", func(t *testing.T) {
		order, err := NewOrder([]OrderLine{{RecipeID: 1, Quantity: 2}}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, order.Status)
		assert.Zero(t, order.Total)
	})
}

func TestUnitCount(t *testing.T) {
	order := &Order{Lines: []OrderLine{
		{RecipeID: 1, Quantity: 2},
		{RecipeID: 2, Quantity: 3},
	}}
	assert.Equal(t, 5, order.UnitCount())
}

func TestBucketHourly(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, time.March, 14, hour, 30, 0, 0, time.Local)
	}

	report := BucketHourly([]LedgerEntry{
		{CreatedAt: at(9), Total: 10.80},
		{CreatedAt: at(9), Total: 4.20},
		{CreatedAt: at(17), Total: 7.00},
	})

	assert.InDelta(t, 22.00, report.Total, 1e-9)
	assert.InDelta(t, 15.00, report.Hourly[9], 1e-9)
	assert.InDelta(t, 7.00, report.Hourly[17], 1e-9)
	assert.Zero(t, report.Hourly[0])
}

func TestBucketHourlyEmpty(t *testing.T) {
	report := BucketHourly(nil)
	assert.Zero(t, report.Total)
}

func TestStockLevelLow(t *testing.T) {
	threshold := 5.0

	assert.False(t, StockLevel{Quantity: 2}.Low(), "no threshold means never low")
	assert.False(t, StockLevel{Quantity: 5.1, MinimumStock: &threshold}.Low())
	assert.True(t, StockLevel{Quantity: 5, MinimumStock: &threshold}.Low(), "threshold is inclusive")
	assert.True(t, StockLevel{Quantity: -1, MinimumStock: &threshold}.Low())
}
