package billing

import (
	"github.com/shopspring/decimal"

	"github.com/rajatkhanna/invoice-api/internal/models"
)

// LineResult is the contribution of a single line item. Skipped marks rows
// whose numeric fields could not be coerced; they contribute zero.
type LineResult struct {
	Subtotal float64
	Tax      float64
	Skipped  bool
}

// LineTotals computes one item's subtotal and per-item tax. Negative
// quantities and prices flow through arithmetically.
func LineTotals(item models.LineItem) LineResult {
	if item.Quantity.Invalid || item.UnitPrice.Invalid || item.Tax.Invalid {
		return LineResult{Skipped: true}
	}
	subtotal := item.Quantity.Value * item.UnitPrice.Value
	return LineResult{
		Subtotal: subtotal,
		Tax:      subtotal * item.Tax.Value / 100,
	}
}

// ComputeTotal folds line items into the invoice total: subtotal plus
// per-item tax plus GST on the subtotal, rounded to 2 decimals at the end.
// Skipped rows contribute zero; an empty item list totals zero.
func ComputeTotal(items []models.LineItem, gstRate float64) float64 {
	if len(items) == 0 {
		return 0
	}
	var subtotal, itemTax float64
	for _, item := range items {
		res := LineTotals(item)
		if res.Skipped {
			continue
		}
		subtotal += res.Subtotal
		itemTax += res.Tax
	}
	gst := subtotal * gstRate / 100
	return Round2(subtotal + itemTax + gst)
}

// Round2 rounds to 2 decimal places, half away from zero. Callers accumulate
// at full float precision and round once at the output boundary.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
