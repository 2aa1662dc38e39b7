package database

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tokopos/internal/models"
)

var DB *gorm.DB

// Connect opens the MySQL connection, waits for the database to come up
// and syncs the schema.
func Connect(dsn string) error {
	var err error
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.WithError(err).Warnf("database not ready, retrying in 2s (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return err
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Customer{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Wholesaler{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.StockMovement{},
		&models.AuditLog{},
		&models.StoreSettings{},
		&models.Backup{},
		&models.Counter{},
	)
	if err != nil {
		return err
	}

	if err := ensureSettings(); err != nil {
		return err
	}

	log.Info("database connected and schema synced")
	return nil
}

// ensureSettings creates the singleton settings row on first boot.
func ensureSettings() error {
	var count int64
	if err := DB.Model(&models.StoreSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&models.StoreSettings{
		ID:              1,
		StoreName:       "Sistem POS Modern",
		StoreAddress:    "Jl. Utama No. 123",
		StoreCity:       "Jakarta",
		StoreState:      "DKI Jakarta",
		StoreZip:        "12345",
		StorePhone:      "(021) 123-4567",
		StoreEmail:      "info@modernpos.example",
		StoreTaxRate:    "11",
		StoreCurrency:   "IDR",
		ReceiptFooter:   "Terima kasih atas kunjungan Anda!",
		BackupFrequency: "daily",
		Language:        "id",
	}).Error
}

// Settings loads the singleton settings row.
func Settings() (*models.StoreSettings, error) {
	var s models.StoreSettings
	if err := DB.First(&s, 1).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
