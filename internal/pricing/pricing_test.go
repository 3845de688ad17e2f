package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 200, ProteinPerUnit: 30, CaloriesPerUnit: 400, Quantity: 2},
		{UnitPrice: 150, ProteinPerUnit: 10, CaloriesPerUnit: 250, Quantity: 1},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, int64(550), totals.Subtotal)
	assert.Equal(t, int64(70), totals.TotalProtein)
	assert.Equal(t, int64(1050), totals.TotalCalories)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TotalProtein)
	assert.Equal(t, int64(0), totals.TotalCalories)
}

func TestComputeTotalsRoundsFractionalMacros(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 100, ProteinPerUnit: 12.3, CaloriesPerUnit: 210.6, Quantity: 3},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, int64(300), totals.Subtotal)
	assert.Equal(t, int64(37), totals.TotalProtein)   // 36.9 rounds up
	assert.Equal(t, int64(632), totals.TotalCalories) // 631.8 rounds up
}

func TestComputeDiscountPercent(t *testing.T) {
	discount := ComputeDiscount(1000, DiscountRule{Type: "percent", Value: 10, MaxDiscount: 0})
	assert.Equal(t, int64(100), discount)
}

func TestComputeDiscountPercentCappedByMaxDiscount(t *testing.T) {
	discount := ComputeDiscount(1000, DiscountRule{Type: "percent", Value: 10, MaxDiscount: 50})
	assert.Equal(t, int64(50), discount)
}

func TestComputeDiscountFlatCappedBySubtotal(t *testing.T) {
	discount := ComputeDiscount(40, DiscountRule{Type: "flat", Value: 100})
	assert.Equal(t, int64(40), discount)
}

func TestComputeDiscountFlat(t *testing.T) {
	discount := ComputeDiscount(500, DiscountRule{Type: "flat", Value: 100})
	assert.Equal(t, int64(100), discount)
}

func TestComputeDiscountNeverNegative(t *testing.T) {
	discount := ComputeDiscount(500, DiscountRule{Type: "flat", Value: -50})
	assert.Equal(t, int64(0), discount)
}
