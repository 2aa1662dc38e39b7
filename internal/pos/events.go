package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Event is a domain event the core emits after a completed operation.
// The audit trail subscribes to these; the core itself never writes
// audit rows.
type Event interface {
	AuditAction() string
	AuditDetails() string
	Actor() (id uint, name string)
}

// EventSink receives domain events. Failures are logged by the emitter
// and never abort the operation that produced the event.
type EventSink interface {
	Emit(ctx context.Context, ev Event) error
}

// SaleCompleted is emitted once per finalized sale.
type SaleCompleted struct {
	SaleID      uint
	Code        string
	Total       decimal.Decimal
	CashierID   uint
	CashierName string
	OccurredAt  time.Time
}

func (e SaleCompleted) AuditAction() string { return "sale_completed" }

func (e SaleCompleted) AuditDetails() string {
	return fmt.Sprintf("Sale #%s completed, total %s", e.Code, e.Total.String())
}

func (e SaleCompleted) Actor() (uint, string) { return e.CashierID, e.CashierName }

// InventoryAdjusted is emitted once per operator stock adjustment.
type InventoryAdjusted struct {
	ProductID   uint
	ProductName string
	Delta       int
	Reason      string
	ActorID     uint
	ActorName   string
}

func (e InventoryAdjusted) AuditAction() string { return "inventory_adjusted" }

func (e InventoryAdjusted) AuditDetails() string {
	return fmt.Sprintf("Adjusted stock of %q by %+d. Reason: %s", e.ProductName, e.Delta, e.Reason)
}

func (e InventoryAdjusted) Actor() (uint, string) { return e.ActorID, e.ActorName }
