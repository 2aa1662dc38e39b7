package pos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustInventoryPositiveDelta(t *testing.T) {
	stores := newTestStores()
	sink := &capturedEvents{}
	p := NewProcessor(stores, sink, "IDR")

	prod, err := p.AdjustInventory(context.Background(), 1, 10, "Restocking", Actor{ID: 1, Name: "Admin Sistem"})
	require.NoError(t, err)
	assert.Equal(t, 15, prod.StockQuantity)

	require.Len(t, stores.Movements, 1)
	assert.Equal(t, 10, stores.Movements[0].Delta)
	assert.Equal(t, "Restocking", stores.Movements[0].Reason)

	require.Len(t, sink.events, 1)
	ev, ok := sink.events[0].(InventoryAdjusted)
	require.True(t, ok)
	assert.Equal(t, "inventory_adjusted", ev.AuditAction())
	assert.Contains(t, ev.AuditDetails(), "Kopi Organik")
}

func TestAdjustInventoryNegativeDeltaWithinStock(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	prod, err := p.AdjustInventory(context.Background(), 1, -5, "Barang rusak", Actor{ID: 1, Name: "Admin Sistem"})
	require.NoError(t, err)
	assert.Equal(t, 0, prod.StockQuantity)
}

func TestAdjustInventoryRejectsNegativeResult(t *testing.T) {
	stores := newTestStores()
	p := NewProcessor(stores, nil, "IDR")

	// stock is 5; the operator path rejects instead of clamping
	_, err := p.AdjustInventory(context.Background(), 1, -6, "Koreksi", Actor{ID: 1, Name: "Admin Sistem"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	prod, err := stores.Products().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, prod.StockQuantity, "nothing applied")
	assert.Empty(t, stores.Movements)
}

func TestAdjustInventoryValidation(t *testing.T) {
	p := NewProcessor(newTestStores(), nil, "IDR")
	actor := Actor{ID: 1, Name: "Admin Sistem"}

	_, err := p.AdjustInventory(context.Background(), 1, 0, "noop", actor)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = p.AdjustInventory(context.Background(), 1, 3, "", actor)
	require.ErrorAs(t, err, &verr)

	var nf *NotFoundError
	_, err = p.AdjustInventory(context.Background(), 404, 3, "Restock", actor)
	require.ErrorAs(t, err, &nf)
}
