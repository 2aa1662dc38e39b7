package pos

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokopos/internal/models"
)

type capturedEvents struct {
	events []Event
	fail   error
}

func (c *capturedEvents) Emit(_ context.Context, ev Event) error {
	if c.fail != nil {
		return c.fail
	}
	c.events = append(c.events, ev)
	return nil
}

func newTestStores() *MemoryStores {
	m := NewMemoryStores()
	m.AddProduct(models.Product{ID: 1, Name: "Kopi Organik", Price: d("120000"), Cost: d("65000"), StockQuantity: 5, MinStockLevel: 10})
	m.AddProduct(models.Product{ID: 2, Name: "Earbuds Nirkabel", Price: d("899000"), Cost: d("450000"), StockQuantity: 2, MinStockLevel: 5})
	m.AddCustomer(models.Customer{ID: 1, Name: "Budi Santoso"})
	return m
}

func cashRequest(items ...LineItem) CheckoutRequest {
	return CheckoutRequest{
		Items:         items,
		PaymentMethod: PaymentCash,
		CashierID:     2,
		CashierName:   "Kasir Utama",
	}
}

func TestFinalizeSaleHappyPath(t *testing.T) {
	stores := newTestStores()
	sink := &capturedEvents{}
	p := NewProcessor(stores, sink, "IDR")

	req := cashRequest(LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 2})
	req.AmountTendered = dp("300000")

	res, err := p.FinalizeSale(context.Background(), req, d("0.10"))
	require.NoError(t, err)
	require.NotNil(t, res.Sale)

	sale := res.Sale
	assert.Equal(t, "S001", sale.Code)
	assert.Equal(t, SaleStatusCompleted, sale.Status)
	assert.True(t, sale.Subtotal.Equal(d("240000")))
	assert.True(t, sale.Tax.Equal(d("24000")))
	assert.True(t, sale.Total.Equal(d("264000")))
	assert.True(t, sale.Change.Equal(d("36000")))
	assert.Equal(t, WalkInCustomerName, sale.CustomerName)
	assert.Empty(t, res.Warnings)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 2, sale.Items[0].Quantity)

	// stock decremented, movement recorded
	prod, err := stores.Products().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, prod.StockQuantity)
	require.Len(t, stores.Movements, 1)
	assert.Equal(t, -2, stores.Movements[0].Delta)
	assert.Equal(t, "Penjualan #S001", stores.Movements[0].Reason)

	// sale persisted, event emitted
	require.Len(t, stores.SalesLog, 1)
	require.Len(t, sink.events, 1)
	ev, ok := sink.events[0].(SaleCompleted)
	require.True(t, ok)
	assert.Equal(t, "S001", ev.Code)
	assert.Equal(t, "sale_completed", ev.AuditAction())
}

func TestFinalizeSaleCodesAreMonotonic(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	for i, want := range []string{"S001", "S002", "S003"} {
		res, err := p.FinalizeSale(context.Background(),
			cashRequest(LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 1}),
			decimal.Zero)
		require.NoError(t, err, "sale %d", i)
		assert.Equal(t, want, res.Sale.Code)
	}
}

func TestFinalizeSaleResolvesCustomerName(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	req := cashRequest(LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 1})
	customerID := uint(1)
	req.CustomerID = &customerID

	res, err := p.FinalizeSale(context.Background(), req, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", res.Sale.CustomerName)
}

func TestFinalizeSaleMissingCustomerFallsBack(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	req := cashRequest(LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 1})
	customerID := uint(999)
	req.CustomerID = &customerID

	res, err := p.FinalizeSale(context.Background(), req, decimal.Zero)
	require.NoError(t, err, "a stale customer reference must not kill the sale")
	assert.Equal(t, WalkInCustomerName, res.Sale.CustomerName)
}

func TestFinalizeSaleClampsStockAtZero(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	// product 2 has stock 2, sell 5
	res, err := p.FinalizeSale(context.Background(),
		cashRequest(LineItem{ProductID: 2, Name: "Earbuds Nirkabel", UnitPrice: d("899000"), Quantity: 5}),
		decimal.Zero)
	require.NoError(t, err)
	require.NotNil(t, res.Sale)

	prod, err := stores.Products().Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, prod.StockQuantity, "clamped at zero, not -3")
}

func TestFinalizeSaleEmptyCart(t *testing.T) {
	p := NewProcessor(newTestStores(), nil, "IDR")

	_, err := p.FinalizeSale(context.Background(), cashRequest(), d("0.10"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestFinalizeSaleInvalidPaymentMethod(t *testing.T) {
	p := NewProcessor(newTestStores(), nil, "IDR")

	req := cashRequest(LineItem{ProductID: 1, UnitPrice: d("100"), Quantity: 1})
	req.PaymentMethod = "barter"

	_, err := p.FinalizeSale(context.Background(), req, decimal.Zero)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestFinalizeSaleUnderpaidCashWarns(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	req := cashRequest(LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 2})
	req.AmountTendered = dp("200000") // total is 264000

	res, err := p.FinalizeSale(context.Background(), req, d("0.10"))
	require.NoError(t, err, "underpayment is a warning, not an error")
	assert.True(t, res.Sale.Change.Equal(decimal.Zero))
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarningUnderpaid, res.Warnings[0].Code)
}

func TestFinalizeSaleCardWithoutTender(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	req := cashRequest(LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 1})
	req.PaymentMethod = PaymentCard
	req.AmountTendered = nil

	res, err := p.FinalizeSale(context.Background(), req, d("0.10"))
	require.NoError(t, err)
	assert.True(t, res.Sale.AmountTendered.Equal(res.Sale.Total))
	assert.True(t, res.Sale.Change.Equal(decimal.Zero))
	assert.Empty(t, res.Warnings)
}

func TestFinalizeSaleMissingProductAbortsEverything(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	// first line exists, second does not; nothing may stick
	_, err := p.FinalizeSale(context.Background(), cashRequest(
		LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 2},
		LineItem{ProductID: 404, Name: "Hantu", UnitPrice: d("1000"), Quantity: 1},
	), decimal.Zero)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint(404), nf.ID)

	prod, err := stores.Products().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, prod.StockQuantity, "rolled back")
	assert.Empty(t, stores.SalesLog)
	assert.Empty(t, stores.Movements)
}

func TestFinalizeSalePartialFailureSurfaces(t *testing.T) {
	stores := newTestStores()
	stores.DisableRollback = true
	p := NewProcessor(stores, nil, "IDR")

	_, err := p.FinalizeSale(context.Background(), cashRequest(
		LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 2},
		LineItem{ProductID: 404, Name: "Hantu", UnitPrice: d("1000"), Quantity: 1},
	), decimal.Zero)

	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, []uint{1}, pf.Applied)

	var nf *NotFoundError
	assert.ErrorAs(t, pf.Err, &nf)

	// the damage the error reports is real
	prod, err := stores.Products().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, prod.StockQuantity)
}

func TestFinalizeSaleAuditFailureDoesNotAbort(t *testing.T) {
	stores := newTestStores()
	sink := &capturedEvents{fail: errors.New("audit store down")}
	p := NewProcessor(stores, sink, "IDR")

	res, err := p.FinalizeSale(context.Background(),
		cashRequest(LineItem{ProductID: 1, Name: "Kopi Organik", UnitPrice: d("120000"), Quantity: 1}),
		decimal.Zero)
	require.NoError(t, err, "audit is best effort")
	require.NotNil(t, res.Sale)
	require.Len(t, stores.SalesLog, 1)
}

func TestProductLookupIsIdempotent(t *testing.T) {
	stores := newTestStores()

	a, err := stores.Products().Get(context.Background(), 1)
	require.NoError(t, err)
	b, err := stores.Products().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
