// Package pricing holds the pure monetary computation for checkout.
// Amounts are whole rupees; rounding happens once, on the totals.
package pricing

import "math"

type LineItem struct {
	UnitPrice       int64
	ProteinPerUnit  float64
	CaloriesPerUnit float64
	Quantity        int
}

type Totals struct {
	Subtotal      int64
	TotalProtein  int64
	TotalCalories int64
}

// DiscountRule is the slice of a coupon that pricing needs.
type DiscountRule struct {
	Type        string // "flat" or "percent"
	Value       float64
	MaxDiscount int64 // percent only, 0 = uncapped
}

// ComputeTotals sums price, protein and calories across line items,
// each total rounded to the nearest integer.
func ComputeTotals(items []LineItem) Totals {
	var subtotal int64
	var protein, calories float64

	for _, it := range items {
		qty := int64(it.Quantity)
		subtotal += it.UnitPrice * qty
		protein += it.ProteinPerUnit * float64(it.Quantity)
		calories += it.CaloriesPerUnit * float64(it.Quantity)
	}

	return Totals{
		Subtotal:      subtotal,
		TotalProtein:  int64(math.Round(protein)),
		TotalCalories: int64(math.Round(calories)),
	}
}

// ComputeDiscount applies a coupon rule to a subtotal. A flat rule discounts
// its value; a percent rule discounts round(subtotal*value/100), capped at
// MaxDiscount when set. The result never exceeds the subtotal.
func ComputeDiscount(subtotal int64, rule DiscountRule) int64 {
	var discount int64

	if rule.Type == "flat" {
		discount = int64(math.Round(rule.Value))
	} else {
		discount = int64(math.Round(float64(subtotal) * rule.Value / 100))
		if rule.MaxDiscount > 0 && discount > rule.MaxDiscount {
			discount = rule.MaxDiscount
		}
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
