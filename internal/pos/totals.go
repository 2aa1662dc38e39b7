package pos

import (
	"github.com/shopspring/decimal"
)

// LineItem is one line of a pending cart.
type LineItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Totals is the money side of a checkout.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Tendered decimal.Decimal
	Change   decimal.Decimal

	// Underpaid is set when the tendered amount does not cover the
	// total. The sale still goes through; blocking is the caller's job.
	Underpaid bool
}

// ComputeTotals validates the cart and produces subtotal, tax, total and
// change. Tax is rounded half-up at the currency's minor unit. A nil
// tendered amount means exact payment (zero change).
func ComputeTotals(items []LineItem, taxRate decimal.Decimal, tendered *decimal.Decimal, minorUnits int32) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, &ValidationError{Msg: "empty cart"}
	}
	if taxRate.IsNegative() {
		return Totals{}, &ValidationError{Msg: "tax rate cannot be negative"}
	}

	subtotal := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			return Totals{}, &ValidationError{Msg: "invalid quantity"}
		}
		if it.UnitPrice.IsNegative() {
			return Totals{}, &ValidationError{Msg: "invalid unit price"}
		}
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts involved here.
	tax := subtotal.Mul(taxRate).Round(minorUnits)
	total := subtotal.Add(tax)

	t := Totals{Subtotal: subtotal, Tax: tax, Total: total}
	if tendered == nil {
		t.Tendered = total
		t.Change = decimal.Zero
		return t, nil
	}
	if tendered.IsNegative() {
		return Totals{}, &ValidationError{Msg: "invalid tendered amount"}
	}

	t.Tendered = *tendered
	t.Change = tendered.Sub(total)
	if t.Change.IsNegative() {
		t.Change = decimal.Zero
		t.Underpaid = true
	}
	return t, nil
}
