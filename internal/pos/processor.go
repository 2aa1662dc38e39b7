// Package pos implements the checkout core: it turns a finalized cart into
// an immutable sale record and applies the matching stock decrements. All
// persistence goes through the Stores interfaces so the same logic runs
// against the gorm-backed store in production and the in-memory store in
// tests.
package pos

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"tokopos/internal/models"
)

// WalkInCustomerName is the receipt name used when no customer is attached
// or the referenced customer no longer exists.
const WalkInCustomerName = "Pelanggan Umum"

// Payment methods accepted at the till.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentOther = "other"
)

// SaleStatusCompleted is the only status a finalized sale can have.
const SaleStatusCompleted = "completed"

// WarningUnderpaid flags a cash sale where the tendered amount did not
// cover the total.
const WarningUnderpaid = "underpaid"

// CheckoutRequest is the finalized cart handed to the processor.
type CheckoutRequest struct {
	Items          []LineItem
	PaymentMethod  string
	AmountTendered *decimal.Decimal // nil: exact payment
	CustomerID     *uint
	CashierID      uint
	CashierName    string
}

// Warning is a non-fatal condition attached to a checkout result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckoutResult is the persisted sale plus any warnings.
type CheckoutResult struct {
	Sale     *models.Sale `json:"sale"`
	Warnings []Warning    `json:"warnings,omitempty"`
}

// Actor identifies who performed an operator action.
type Actor struct {
	ID   uint
	Name string
}

// Processor is the sale transaction processor. It is cheap to construct;
// handlers build one per request with the currently configured currency.
type Processor struct {
	stores     Stores
	events     EventSink
	minorUnits int32
	now        func() time.Time
}

// NewProcessor wires the processor to its stores and event sink. Currency
// decides the minor unit used for tax rounding.
func NewProcessor(stores Stores, events EventSink, currency string) *Processor {
	return &Processor{
		stores:     stores,
		events:     events,
		minorUnits: MinorUnits(currency),
		now:        time.Now,
	}
}

// FinalizeSale converts a cart into a durable Sale and decrements stock for
// every line item. Code allocation, the decrements, the movement ledger rows
// and the sale insert all happen inside one store transaction; a missing
// product aborts the whole sale with no stock touched.
func (p *Processor) FinalizeSale(ctx context.Context, req CheckoutRequest, taxRate decimal.Decimal) (*CheckoutResult, error) {
	switch req.PaymentMethod {
	case PaymentCash, PaymentCard, PaymentOther:
	default:
		return nil, &ValidationError{Msg: "invalid payment method"}
	}

	totals, err := ComputeTotals(req.Items, taxRate, req.AmountTendered, p.minorUnits)
	if err != nil {
		return nil, err
	}

	var sale *models.Sale
	err = p.stores.WithinTx(ctx, func(s Stores) error {
		customerName := WalkInCustomerName
		if req.CustomerID != nil {
			customer, err := s.Customers().Get(ctx, *req.CustomerID)
			switch {
			case err == nil:
				customerName = customer.Name
			case isNotFound(err):
				// A stale customer reference must not kill the sale.
			default:
				return err
			}
		}

		code, err := s.Codes().NextCode(ctx, "sale")
		if err != nil {
			return err
		}

		items := make([]models.SaleItem, 0, len(req.Items))
		for _, li := range req.Items {
			if _, err := s.Products().DecrementStock(ctx, li.ProductID, li.Quantity); err != nil {
				return err
			}
			err = s.Products().RecordMovement(ctx, &models.StockMovement{
				ProductID: li.ProductID,
				Delta:     -li.Quantity,
				Reason:    "Penjualan #" + code,
				UserID:    req.CashierID,
				Username:  req.CashierName,
			})
			if err != nil {
				return err
			}
			items = append(items, models.SaleItem{
				ProductID: li.ProductID,
				Name:      li.Name,
				UnitPrice: li.UnitPrice,
				Quantity:  li.Quantity,
			})
		}

		sale = &models.Sale{
			Code:           code,
			CustomerID:     req.CustomerID,
			CustomerName:   customerName,
			PaymentMethod:  req.PaymentMethod,
			Subtotal:       totals.Subtotal,
			Tax:            totals.Tax,
			Total:          totals.Total,
			AmountTendered: totals.Tendered,
			Change:         totals.Change,
			CashierID:      req.CashierID,
			CashierName:    req.CashierName,
			Status:         SaleStatusCompleted,
			SaleTime:       p.now(),
			Items:          items,
		}
		return s.Sales().Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Sale: sale}
	if totals.Underpaid && req.PaymentMethod == PaymentCash {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarningUnderpaid,
			Message: "tendered amount is less than the total",
		})
		log.WithFields(log.Fields{
			"sale":     sale.Code,
			"total":    totals.Total.String(),
			"tendered": totals.Tendered.String(),
		}).Warn("cash sale underpaid")
	}

	p.emit(ctx, SaleCompleted{
		SaleID:      sale.ID,
		Code:        sale.Code,
		Total:       sale.Total,
		CashierID:   sale.CashierID,
		CashierName: sale.CashierName,
		OccurredAt:  sale.SaleTime,
	})
	return result, nil
}

// AdjustInventory applies a signed operator correction to a product's
// stock. Unlike the sale path it rejects a negative result outright.
func (p *Processor) AdjustInventory(ctx context.Context, productID uint, delta int, reason string, actor Actor) (*models.Product, error) {
	if delta == 0 {
		return nil, &ValidationError{Msg: "adjustment cannot be zero"}
	}
	if reason == "" {
		return nil, &ValidationError{Msg: "adjustment reason is required"}
	}

	var updated *models.Product
	err := p.stores.WithinTx(ctx, func(s Stores) error {
		var err error
		updated, err = s.Products().AdjustStock(ctx, productID, delta)
		if err != nil {
			return err
		}
		return s.Products().RecordMovement(ctx, &models.StockMovement{
			ProductID: productID,
			Delta:     delta,
			Reason:    reason,
			UserID:    actor.ID,
			Username:  actor.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	p.emit(ctx, InventoryAdjusted{
		ProductID:   updated.ID,
		ProductName: updated.Name,
		Delta:       delta,
		Reason:      reason,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
	})
	return updated, nil
}

// emit pushes a domain event to the sink. Audit is best effort: a failing
// sink is logged and never rolls back the operation.
func (p *Processor) emit(ctx context.Context, ev Event) {
	if p.events == nil {
		return
	}
	if err := p.events.Emit(ctx, ev); err != nil {
		log.WithError(err).WithField("action", ev.AuditAction()).Warn("audit event dropped")
	}
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
