package database

import (
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"tokopos/internal/models"
)

// SeedDemoData fills an empty database with the demo catalog. It does
// nothing when products already exist.
func SeedDemoData() error {
	var count int64
	if err := DB.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Warn("seeding demo data, including demo accounts admin/admin and cashier/cashier")

	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	categories := []models.Category{
		{Name: "Minuman"}, {Name: "Elektronik"}, {Name: "Pakaian"},
		{Name: "Aksesoris"}, {Name: "Kebugaran"}, {Name: "Makanan"}, {Name: "Rumah Tangga"},
	}
	products := []models.Product{
		{Name: "Kopi Organik", Description: "Biji kopi organik premium dari Ethiopia", Category: "Minuman", Price: d("120000"), Cost: d("65000"), SKU: "MIN-KOPI-001", Barcode: "123456789012", StockQuantity: 5, MinStockLevel: 10},
		{Name: "Earbuds Nirkabel", Description: "Earbuds nirkabel Bluetooth 5.0 dengan peredam bising", Category: "Elektronik", Price: d("899000"), Cost: d("450000"), SKU: "ELEK-AUDIO-002", Barcode: "223456789012", StockQuantity: 2, MinStockLevel: 5},
		{Name: "Kaos Katun", Description: "Kaos katun organik 100%", Category: "Pakaian", Price: d("199000"), Cost: d("80000"), SKU: "PAK-KAOS-003", Barcode: "323456789012", StockQuantity: 3, MinStockLevel: 8},
		{Name: "Botol Air Stainless", Description: "Botol air stainless steel berinsulasi, 600ml", Category: "Aksesoris", Price: d("249000"), Cost: d("100000"), SKU: "AKS-BOTOL-004", Barcode: "423456789012", StockQuantity: 4, MinStockLevel: 10},
		{Name: "Matras Yoga", Description: "Matras yoga anti-slip, ketebalan 5mm", Category: "Kebugaran", Price: d("299000"), Cost: d("125000"), SKU: "KEB-YOGA-005", Barcode: "523456789012", StockQuantity: 1, MinStockLevel: 5},
		{Name: "Casing Smartphone", Description: "Casing pelindung untuk iPhone 13", Category: "Aksesoris", Price: d("149000"), Cost: d("50000"), SKU: "AKS-CASE-006", Barcode: "623456789012", StockQuantity: 15, MinStockLevel: 10},
		{Name: "Speaker Bluetooth", Description: "Speaker bluetooth portabel dengan baterai tahan 10 jam", Category: "Elektronik", Price: d("499000"), Cost: d("225000"), SKU: "ELEK-SPEAK-007", Barcode: "723456789012", StockQuantity: 8, MinStockLevel: 5},
	}
	customers := []models.Customer{
		{Name: "Budi Santoso", Email: "budi.santoso@example.com", Phone: "0812-3456-7890", Address: "Jl. Merdeka No. 123, Jakarta"},
		{Name: "Siti Rahayu", Email: "siti.rahayu@example.com", Phone: "0813-2345-6789", Address: "Jl. Pahlawan No. 456, Bandung"},
		{Name: "Agus Wijaya", Email: "agus.wijaya@example.com", Phone: "0857-1234-5678", Address: "Jl. Diponegoro No. 789, Surabaya"},
		{Name: "Dewi Lestari", Email: "dewi.lestari@example.com", Phone: "0878-9012-3456", Address: "Jl. Sudirman No. 101, Semarang"},
		{Name: "Eko Prasetyo", Email: "eko.prasetyo@example.com", Phone: "0856-7890-1234", Address: "Jl. Gatot Subroto No. 202, Yogyakarta"},
	}
	wholesalers := []models.Wholesaler{
		{Name: "PT Sumber Hasil Tani", ContactPerson: "Budi Santoso", Phone: "0812-3456-7890", Email: "budi@sumberhasiltani.com", Address: "Jl. Pasar Induk No. 123, Bogor", Notes: "Pemasok utama beras dan biji-bijian", IsActive: true},
		{Name: "CV Mitra Tani Sejahtera", ContactPerson: "Siti Rahayu", Phone: "0813-2345-6789", Email: "siti@mitratani.co.id", Address: "Jl. Raya Cibadak No. 45, Sukabumi", Notes: "Pemasok sayuran organik", IsActive: true},
		{Name: "UD Hasil Bumi Nusantara", ContactPerson: "Ahmad Hidayat", Phone: "0857-1234-5678", Email: "ahmad@hasilbumi.com", Address: "Jl. Pasar Minggu No. 78, Jakarta Selatan", Notes: "Pemasok buah-buahan lokal dan impor", IsActive: true},
	}

	if err := DB.Create(&categories).Error; err != nil {
		return err
	}
	if err := DB.Create(&products).Error; err != nil {
		return err
	}
	if err := DB.Create(&customers).Error; err != nil {
		return err
	}
	if err := DB.Create(&wholesalers).Error; err != nil {
		return err
	}

	for _, u := range []struct {
		username, name, email, password, role string
	}{
		{"admin", "Admin Sistem", "admin@example.com", "admin", "admin"},
		{"cashier", "Kasir Utama", "kasir@example.com", "cashier", "cashier"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{Username: u.username, Name: u.name, Email: u.email, PasswordHash: string(hash), Role: u.role}
		if err := DB.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
