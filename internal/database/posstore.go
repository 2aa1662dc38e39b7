package database

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tokopos/internal/models"
	"tokopos/internal/pos"
)

// Store is the gorm-backed implementation of the checkout core's store
// interfaces. WithinTx maps to a database transaction; product reads that
// precede a write lock the row, the way the checkout handler of old did.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Products() pos.ProductStore       { return (*productStore)(s) }
func (s *Store) Customers() pos.CustomerDirectory { return (*customerStore)(s) }
func (s *Store) Sales() pos.SaleWriter            { return (*saleStore)(s) }
func (s *Store) Codes() pos.CodeGenerator         { return (*codeStore)(s) }

func (s *Store) WithinTx(ctx context.Context, fn func(pos.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

type productStore Store

func (s *productStore) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translateNotFound(err, "product", id)
	}
	return &p, nil
}

func (s *productStore) lockedGet(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error
	if err != nil {
		return nil, translateNotFound(err, "product", id)
	}
	return &p, nil
}

func (s *productStore) DecrementStock(ctx context.Context, id uint, qty int) (*models.Product, error) {
	p, err := s.lockedGet(ctx, id)
	if err != nil {
		return nil, err
	}
	p.StockQuantity -= qty
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	if err := s.db.WithContext(ctx).Model(p).Update("stock_quantity", p.StockQuantity).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "decrement stock")
	}
	return p, nil
}

func (s *productStore) AdjustStock(ctx context.Context, id uint, delta int) (*models.Product, error) {
	p, err := s.lockedGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.StockQuantity+delta < 0 {
		return nil, &pos.ValidationError{Msg: "stock cannot go negative"}
	}
	p.StockQuantity += delta
	if err := s.db.WithContext(ctx).Model(p).Update("stock_quantity", p.StockQuantity).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "adjust stock")
	}
	return p, nil
}

func (s *productStore) RecordMovement(ctx context.Context, m *models.StockMovement) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).Create(m).Error, "record stock movement")
}

type customerStore Store

func (s *customerStore) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translateNotFound(err, "customer", id)
	}
	return &c, nil
}

type saleStore Store

func (s *saleStore) Create(ctx context.Context, sale *models.Sale) error {
	// gorm inserts the items alongside the header
	return pkgerrors.Wrap(s.db.WithContext(ctx).Create(sale).Error, "create sale")
}

type codeStore Store

// NextCode bumps the named counter row under a row lock, so codes stay
// monotonic under concurrent checkouts.
func (s *codeStore) NextCode(ctx context.Context, name string) (string, error) {
	var c models.Counter
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "name = ?", name).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c = models.Counter{Name: name, Value: 1}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return "", pkgerrors.Wrap(err, "create counter")
		}
	case err != nil:
		return "", pkgerrors.Wrap(err, "read counter")
	default:
		c.Value++
		if err := s.db.WithContext(ctx).Model(&c).Update("value", c.Value).Error; err != nil {
			return "", pkgerrors.Wrap(err, "bump counter")
		}
	}
	return pos.FormatCode(name, c.Value), nil
}

func translateNotFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &pos.NotFoundError{Entity: entity, ID: id}
	}
	return pkgerrors.Wrapf(err, "load %s %d", entity, id)
}
