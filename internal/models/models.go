package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User - someone who can sign in to the dashboard
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:50" json:"username"`
	Name         string     `json:"name"`
	Email        string     `gorm:"size:120" json:"email"`
	PasswordHash string     `json:"-"`    // Never return this in JSON
	Role         string     `json:"role"` // 'admin', 'cashier'
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Product - the inventory
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `gorm:"index" json:"category"`
	Price         decimal.Decimal `gorm:"type:decimal(15,2)" json:"price"`
	Cost          decimal.Decimal `gorm:"type:decimal(15,2)" json:"cost"`
	SKU           string          `gorm:"size:40;index" json:"sku"`
	Barcode       string          `gorm:"size:40;index" json:"barcode"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	ImageURL      string          `json:"image_url"`
}

// Category groups products for the catalog and the reports
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:60" json:"name"`
}

// Customer - the directory used for receipt names
type Customer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `json:"name"`
	Email   string `gorm:"size:120" json:"email"`
	Phone   string `gorm:"size:30" json:"phone"`
	Address string `json:"address"`
}

// Sale - the transaction header. Created once at checkout, never mutated.
type Sale struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex;size:20" json:"code"` // S001, S002, ...
	CustomerID     *uint           `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	PaymentMethod  string          `json:"payment_method"` // 'cash', 'card', 'other'
	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2)" json:"subtotal"`
	Tax            decimal.Decimal `gorm:"type:decimal(15,2)" json:"tax"`
	Total          decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
	AmountTendered decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_tendered"`
	Change         decimal.Decimal `gorm:"type:decimal(15,2)" json:"change"`
	CashierID      uint            `json:"cashier_id"`
	CashierName    string          `json:"cashier_name"`
	Status         string          `json:"status"` // 'completed'
	SaleTime       time.Time       `json:"sale_time"`
	Items          []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - one cart line, snapshotted at checkout time
type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"index" json:"sale_id"`
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2)" json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Wholesaler - a supplier we buy stock from
type Wholesaler struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `gorm:"size:30" json:"phone"`
	Email         string    `gorm:"size:120" json:"email"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Purchase - the stock-increasing mirror of Sale
type Purchase struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex;size:20" json:"code"` // B001, B002, ...
	WholesalerID   uint            `gorm:"index" json:"wholesaler_id"`
	WholesalerName string          `json:"wholesaler_name"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2)" json:"subtotal"`
	Tax            decimal.Decimal `gorm:"type:decimal(15,2)" json:"tax"`
	Total          decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
	PaymentMethod  string          `json:"payment_method"`              // 'cash', 'transfer'
	PaymentStatus  string          `gorm:"index" json:"payment_status"` // 'pending', 'paid'
	Notes          string          `json:"notes"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	ReceivedDate   *time.Time      `json:"received_date"`
	CreatedBy      uint            `json:"created_by"`
	CreatedByName  string          `json:"created_by_name"`
	Items          []PurchaseItem  `gorm:"foreignKey:PurchaseID" json:"items"`
}

// PurchaseItem - one received line on a purchase
type PurchaseItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	PurchaseID uint            `gorm:"index" json:"purchase_id"`
	ProductID  uint            `json:"product_id"`
	Name       string          `json:"name"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(15,2)" json:"unit_cost"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `gorm:"type:decimal(15,2)" json:"total"`
}

// StockMovement - the inventory ledger. One signed row per stock change.
type StockMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLog - append-only action trail
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `gorm:"index;size:50" json:"action"`
	Details   string    `json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
}

// StoreSettings - singleton row (ID is always 1)
type StoreSettings struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	StoreName             string `json:"store_name"`
	StoreAddress          string `json:"store_address"`
	StoreCity             string `json:"store_city"`
	StoreState            string `json:"store_state"`
	StoreZip              string `gorm:"size:10" json:"store_zip"`
	StorePhone            string `gorm:"size:30" json:"store_phone"`
	StoreEmail            string `gorm:"size:120" json:"store_email"`
	StoreTaxRate          string `gorm:"size:10" json:"store_tax_rate"` // percent, e.g. "11"
	StoreCurrency         string `gorm:"size:5" json:"store_currency"`
	StoreLogoURL          string `json:"store_logo_url"`
	ReceiptFooter         string `json:"receipt_footer"`
	EnableAutomaticBackup bool   `json:"enable_automatic_backup"`
	BackupFrequency       string `gorm:"size:10" json:"backup_frequency"` // 'daily', 'weekly'
	Language              string `gorm:"size:5" json:"language"`
}

// Backup - one snapshot on disk
type Backup struct {
	ID        string    `gorm:"primaryKey;size:40" json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SizeBytes int64     `json:"size_bytes"`
	Note      string    `json:"note"`
	Path      string    `json:"-"` // server-side file location
	CreatedBy string    `json:"created_by"`
}

// Counter backs the monotonic human-facing codes (S001, B001, ...).
type Counter struct {
	Name  string `gorm:"primaryKey;size:20"`
	Value uint64
}
