package pos

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnits returns how many decimal places the currency's minor unit has.
// Rupiah (and a few others) have none; everything else gets the usual two.
func MinorUnits(currency string) int32 {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "IDR", "JPY", "KRW", "VND":
		return 0
	default:
		return 2
	}
}

// ParseTaxRatePercent converts the stored percent string (e.g. "11") into
// the fraction the totals math uses (0.11). An empty value means no tax.
func ParseTaxRatePercent(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{Msg: "invalid tax rate"}
	}
	if d.IsNegative() {
		return decimal.Decimal{}, &ValidationError{Msg: "tax rate cannot be negative"}
	}
	return d.Div(decimal.NewFromInt(100)), nil
}
