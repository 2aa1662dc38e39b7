package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestComputeTotalsBasic(t *testing.T) {
	items := []LineItem{{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 2}}

	totals, err := ComputeTotals(items, d("0.10"), nil, 0)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(d("240000")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(d("24000")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(d("264000")), "total %s", totals.Total)
	assert.True(t, totals.Change.Equal(decimal.Zero))
	assert.False(t, totals.Underpaid)
	// exact payment when no tendered amount is given
	assert.True(t, totals.Tendered.Equal(d("264000")))
}

func TestComputeTotalsChange(t *testing.T) {
	items := []LineItem{{ProductID: 1, UnitPrice: d("120000"), Quantity: 2}}

	totals, err := ComputeTotals(items, d("0.10"), dp("300000"), 0)
	require.NoError(t, err)

	assert.True(t, totals.Change.Equal(d("36000")), "change %s", totals.Change)
	assert.False(t, totals.Underpaid)
}

func TestComputeTotalsUnderpaidClampsChange(t *testing.T) {
	items := []LineItem{{ProductID: 1, UnitPrice: d("120000"), Quantity: 2}}

	totals, err := ComputeTotals(items, d("0.10"), dp("200000"), 0)
	require.NoError(t, err)

	assert.True(t, totals.Change.Equal(decimal.Zero), "change is never negative, got %s", totals.Change)
	assert.True(t, totals.Underpaid)
}

func TestComputeTotalsMultiItem(t *testing.T) {
	items := []LineItem{
		{ProductID: 1, UnitPrice: d("120000"), Quantity: 2},
		{ProductID: 2, UnitPrice: d("899000"), Quantity: 1},
		{ProductID: 3, UnitPrice: d("0"), Quantity: 3}, // freebie line, zero price is valid
	}

	totals, err := ComputeTotals(items, d("0.11"), nil, 0)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(d("1139000")))
	// 1139000 * 0.11 = 125290
	assert.True(t, totals.Tax.Equal(d("125290")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(d("1264290")))
}

func TestComputeTotalsTaxRoundingHalfUp(t *testing.T) {
	// 12345 * 0.11 = 1357.95 -> 1358 at zero minor units
	items := []LineItem{{ProductID: 1, UnitPrice: d("12345"), Quantity: 1}}

	totals, err := ComputeTotals(items, d("0.11"), nil, 0)
	require.NoError(t, err)
	assert.True(t, totals.Tax.Equal(d("1358")), "tax %s", totals.Tax)

	// two minor units: 10.125 * 0.10 = 1.0125 -> 1.01
	items = []LineItem{{ProductID: 1, UnitPrice: d("10.125"), Quantity: 1}}
	totals, err = ComputeTotals(items, d("0.10"), nil, 2)
	require.NoError(t, err)
	assert.True(t, totals.Tax.Equal(d("1.01")), "tax %s", totals.Tax)
}

func TestComputeTotalsZeroTaxRate(t *testing.T) {
	items := []LineItem{{ProductID: 1, UnitPrice: d("5000"), Quantity: 4}}

	totals, err := ComputeTotals(items, decimal.Zero, nil, 0)
	require.NoError(t, err)
	assert.True(t, totals.Tax.Equal(decimal.Zero))
	assert.True(t, totals.Total.Equal(d("20000")))
}

func TestComputeTotalsValidation(t *testing.T) {
	valid := []LineItem{{ProductID: 1, UnitPrice: d("100"), Quantity: 1}}

	cases := []struct {
		name     string
		items    []LineItem
		taxRate  decimal.Decimal
		tendered *decimal.Decimal
	}{
		{"empty cart", nil, d("0.10"), nil},
		{"zero quantity", []LineItem{{ProductID: 1, UnitPrice: d("100"), Quantity: 0}}, d("0.10"), nil},
		{"negative quantity", []LineItem{{ProductID: 1, UnitPrice: d("100"), Quantity: -2}}, d("0.10"), nil},
		{"negative price", []LineItem{{ProductID: 1, UnitPrice: d("-1"), Quantity: 1}}, d("0.10"), nil},
		{"negative tax rate", valid, d("-0.10"), nil},
		{"negative tendered", valid, d("0.10"), dp("-5")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeTotals(tc.items, tc.taxRate, tc.tendered, 0)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestParseTaxRatePercent(t *testing.T) {
	rate, err := ParseTaxRatePercent("11")
	require.NoError(t, err)
	assert.True(t, rate.Equal(d("0.11")))

	rate, err = ParseTaxRatePercent("")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.Zero))

	_, err = ParseTaxRatePercent("abc")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = ParseTaxRatePercent("-5")
	require.ErrorAs(t, err, &verr)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int32(0), MinorUnits("IDR"))
	assert.Equal(t, int32(0), MinorUnits("idr"))
	assert.Equal(t, int32(2), MinorUnits("USD"))
	assert.Equal(t, int32(2), MinorUnits(""))
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "S001", FormatCode("sale", 1))
	assert.Equal(t, "S042", FormatCode("sale", 42))
	assert.Equal(t, "S1000", FormatCode("sale", 1000))
	assert.Equal(t, "B003", FormatCode("purchase", 3))
}
