package pos

import (
	"context"

	"tokopos/internal/models"
)

// MemoryStores is the in-memory Stores implementation backing the core's
// tests. WithinTx snapshots the whole state up front and restores it when
// fn fails, giving the same all-or-nothing contract as the database
// transaction. Not safe for concurrent use.
type MemoryStores struct {
	ProductsByID  map[uint]*models.Product
	CustomersByID map[uint]*models.Customer
	SalesLog      []*models.Sale
	Movements     []*models.StockMovement
	Counters      map[string]uint64

	// DisableRollback makes WithinTx keep whatever fn managed to apply
	// and surface the failure as a PartialFailureError, imitating a
	// store without transactions.
	DisableRollback bool

	nextSaleID uint
	mutated    []uint
}

// NewMemoryStores returns an empty in-memory store.
func NewMemoryStores() *MemoryStores {
	return &MemoryStores{
		ProductsByID:  make(map[uint]*models.Product),
		CustomersByID: make(map[uint]*models.Customer),
		Counters:      make(map[string]uint64),
	}
}

// AddProduct seeds one product.
func (m *MemoryStores) AddProduct(p models.Product) {
	cp := p
	m.ProductsByID[p.ID] = &cp
}

// AddCustomer seeds one customer.
func (m *MemoryStores) AddCustomer(c models.Customer) {
	cp := c
	m.CustomersByID[c.ID] = &cp
}

func (m *MemoryStores) Products() ProductStore       { return (*memProducts)(m) }
func (m *MemoryStores) Customers() CustomerDirectory { return (*memCustomers)(m) }
func (m *MemoryStores) Sales() SaleWriter            { return (*memSales)(m) }
func (m *MemoryStores) Codes() CodeGenerator         { return (*memCodes)(m) }

func (m *MemoryStores) WithinTx(_ context.Context, fn func(Stores) error) error {
	snap := m.snapshot()
	m.mutated = nil

	err := fn(m)
	if err == nil {
		return nil
	}
	if m.DisableRollback {
		if len(m.mutated) > 0 {
			return &PartialFailureError{Applied: m.mutated, Err: err}
		}
		return err
	}
	m.restore(snap)
	return err
}

type memSnapshot struct {
	products  map[uint]*models.Product
	sales     []*models.Sale
	movements []*models.StockMovement
	counters  map[string]uint64
	nextSale  uint
}

func (m *MemoryStores) snapshot() memSnapshot {
	products := make(map[uint]*models.Product, len(m.ProductsByID))
	for id, p := range m.ProductsByID {
		cp := *p
		products[id] = &cp
	}
	counters := make(map[string]uint64, len(m.Counters))
	for k, v := range m.Counters {
		counters[k] = v
	}
	return memSnapshot{
		products:  products,
		sales:     append([]*models.Sale(nil), m.SalesLog...),
		movements: append([]*models.StockMovement(nil), m.Movements...),
		counters:  counters,
		nextSale:  m.nextSaleID,
	}
}

func (m *MemoryStores) restore(s memSnapshot) {
	m.ProductsByID = s.products
	m.SalesLog = s.sales
	m.Movements = s.movements
	m.Counters = s.counters
	m.nextSaleID = s.nextSale
}

type memProducts MemoryStores

func (m *memProducts) Get(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.ProductsByID[id]
	if !ok {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) DecrementStock(_ context.Context, id uint, qty int) (*models.Product, error) {
	p, ok := m.ProductsByID[id]
	if !ok {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	p.StockQuantity -= qty
	if p.StockQuantity < 0 {
		p.StockQuantity = 0
	}
	m.mutated = append(m.mutated, id)
	cp := *p
	return &cp, nil
}

func (m *memProducts) AdjustStock(_ context.Context, id uint, delta int) (*models.Product, error) {
	p, ok := m.ProductsByID[id]
	if !ok {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	if p.StockQuantity+delta < 0 {
		return nil, &ValidationError{Msg: "stock cannot go negative"}
	}
	p.StockQuantity += delta
	m.mutated = append(m.mutated, id)
	cp := *p
	return &cp, nil
}

func (m *memProducts) RecordMovement(_ context.Context, mv *models.StockMovement) error {
	cp := *mv
	cp.ID = uint(len(m.Movements) + 1)
	m.Movements = append(m.Movements, &cp)
	return nil
}

type memCustomers MemoryStores

func (m *memCustomers) Get(_ context.Context, id uint) (*models.Customer, error) {
	c, ok := m.CustomersByID[id]
	if !ok {
		return nil, &NotFoundError{Entity: "customer", ID: id}
	}
	cp := *c
	return &cp, nil
}

type memSales MemoryStores

func (m *memSales) Create(_ context.Context, sale *models.Sale) error {
	m.nextSaleID++
	sale.ID = m.nextSaleID
	m.SalesLog = append(m.SalesLog, sale)
	return nil
}

type memCodes MemoryStores

func (m *memCodes) NextCode(_ context.Context, name string) (string, error) {
	m.Counters[name]++
	return FormatCode(name, m.Counters[name]), nil
}
