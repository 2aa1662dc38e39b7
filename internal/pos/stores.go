package pos

import (
	"context"
	"fmt"
	"strings"

	"tokopos/internal/models"
)

// ProductStore is the narrow slice of the catalog the checkout core touches.
type ProductStore interface {
	Get(ctx context.Context, id uint) (*models.Product, error)

	// DecrementStock subtracts qty from the product's stock, clamped at
	// zero. The sale path uses this: a sale that already happened at the
	// till is recorded even if the book stock was wrong.
	DecrementStock(ctx context.Context, id uint, qty int) (*models.Product, error)

	// AdjustStock applies a signed delta and rejects a result below zero.
	// The operator path uses this: an explicit correction has no reason
	// to overdraw.
	AdjustStock(ctx context.Context, id uint, delta int) (*models.Product, error)

	RecordMovement(ctx context.Context, m *models.StockMovement) error
}

// CustomerDirectory resolves receipt names.
type CustomerDirectory interface {
	Get(ctx context.Context, id uint) (*models.Customer, error)
}

// SaleWriter persists the immutable sale record.
type SaleWriter interface {
	Create(ctx context.Context, sale *models.Sale) error
}

// CodeGenerator hands out the monotonic human-facing codes (S001, ...).
type CodeGenerator interface {
	NextCode(ctx context.Context, name string) (string, error)
}

// Stores bundles the collaborators behind one transaction boundary.
// WithinTx runs fn against a store view whose mutations either all commit
// or all roll back; implementations that cannot roll back must wrap a
// mid-fn failure in PartialFailureError.
type Stores interface {
	Products() ProductStore
	Customers() CustomerDirectory
	Sales() SaleWriter
	Codes() CodeGenerator
	WithinTx(ctx context.Context, fn func(Stores) error) error
}

// FormatCode renders the nth code of a sequence, e.g. FormatCode("sale", 7)
// -> "S007". Codes keep growing past three digits.
func FormatCode(name string, n uint64) string {
	prefix := strings.ToUpper(name[:1])
	switch name {
	case "sale":
		prefix = "S"
	case "purchase":
		prefix = "B" // "B" for "beli", matching the receipts
	}
	return fmt.Sprintf("%s%03d", prefix, n)
}
