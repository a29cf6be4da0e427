package calculator

import (
	"fmt"
	"math"
)

// LineItem is one invoice row.
type LineItem struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// LineTotal returns quantity × unit price.
func (li LineItem) LineTotal() float64 {
	// The conversion forces rounding of the product so it is never fused
	// into the caller's running sum.
	return float64(li.Quantity * li.UnitPrice)
}

// InvoiceTotals holds the computed figures for one invoice.
// Values are unrounded; use Round2 or FormatAmount when presenting them.
type InvoiceTotals struct {
	Subtotal       float64
	TaxAmount      float64
	DiscountAmount float64
	GrandTotal     float64
}

// ComputeTotals sums the line items and applies tax and discount percentages
// to the subtotal.
//
//	subtotal = Σ quantity × unit_price
//	tax      = subtotal × taxPercent / 100
//	discount = subtotal × discountPercent / 100
//	total    = subtotal + tax − discount
//
// The total is not floored at zero: a discount above 100% yields a negative
// total. Negative or non-finite inputs, and totals that overflow float64,
// return an error wrapping ErrInvalidInput.
func ComputeTotals(items []LineItem, taxPercent, discountPercent float64) (InvoiceTotals, error) {
	if err := checkNonNegative("tax percent", taxPercent); err != nil {
		return InvoiceTotals{}, err
	}
	if err := checkNonNegative("discount percent", discountPercent); err != nil {
		return InvoiceTotals{}, err
	}

	var subtotal float64
	for i, item := range items {
		if err := checkNonNegative(fmt.Sprintf("item %d quantity", i+1), item.Quantity); err != nil {
			return InvoiceTotals{}, err
		}
		if err := checkNonNegative(fmt.Sprintf("item %d unit price", i+1), item.UnitPrice); err != nil {
			return InvoiceTotals{}, err
		}
		subtotal += item.LineTotal()
	}

	tax := subtotal * taxPercent / 100
	discount := subtotal * discountPercent / 100

	totals := InvoiceTotals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		GrandTotal:     subtotal + tax - discount,
	}
	if !totals.finite() {
		return InvoiceTotals{}, invalid("total", "overflows")
	}
	return totals, nil
}

func (t InvoiceTotals) finite() bool {
	for _, v := range []float64{t.Subtotal, t.TaxAmount, t.DiscountAmount, t.GrandTotal} {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkNonNegative(field string, v float64) error {
	if !isFinite(v) {
		return invalid(field, "must be a finite number")
	}
	if v < 0 {
		return invalid(field, "cannot be negative")
	}
	return nil
}
