package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"tokopos/internal/audit"
	"tokopos/internal/auth"
	"tokopos/internal/backup"
	"tokopos/internal/config"
	"tokopos/internal/database"
	"tokopos/internal/handlers"
	"tokopos/internal/middleware"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	auth.Init(cfg.JWTSecret)

	if err := database.Connect(cfg.DBDSN); err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if cfg.SeedDemoData {
		if err := database.SeedDemoData(); err != nil {
			log.WithError(err).Fatal("seeding demo data failed")
		}
	}

	auditSvc := audit.New(database.DB)
	backupSvc := backup.New(database.DB, cfg.BackupDir)
	handlers.Init(cfg, auditSvc, backupSvc)

	go backupSvc.RunScheduler(context.Background())

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOriginList(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)
	r.Static("/uploads", cfg.UploadDir)

	// first-time setup only; keep disabled in production
	if cfg.AllowRegistration {
		r.POST("/register", handlers.Register)
		log.Warn("registration route is OPEN, disable ALLOW_REGISTRATION in production")
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// cashier & admin
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id", handlers.GetProduct)
		api.GET("/products/scan/:barcode", handlers.ScanProduct)
		api.GET("/categories", handlers.GetCategories)
		api.POST("/checkout", handlers.ProcessCheckout)
		api.GET("/sales", handlers.GetSales)
		api.GET("/sales/:id", handlers.GetSale)
		api.GET("/customers", handlers.GetCustomers)
		api.GET("/customers/:id", handlers.GetCustomer)
		api.GET("/dashboard", handlers.GetDashboardStats)

		// admin only
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/upload", handlers.UploadImage)
			admin.POST("/products", handlers.AddProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)

			admin.GET("/inventory", handlers.GetInventory)
			admin.GET("/inventory/low-stock", handlers.GetLowStockProducts)
			admin.GET("/inventory/movements", handlers.GetStockMovements)
			admin.POST("/inventory/adjust", handlers.AdjustInventory)

			admin.GET("/wholesalers", handlers.GetWholesalers)
			admin.GET("/wholesalers/:id", handlers.GetWholesaler)
			admin.POST("/wholesalers", handlers.AddWholesaler)
			admin.PUT("/wholesalers/:id", handlers.UpdateWholesaler)
			admin.DELETE("/wholesalers/:id", handlers.DeleteWholesaler)
			admin.PATCH("/wholesalers/:id/toggle", handlers.ToggleWholesalerStatus)

			admin.GET("/purchases", handlers.GetPurchases)
			admin.GET("/purchases/stats", handlers.GetPurchaseStats)
			admin.GET("/purchases/:id", handlers.GetPurchase)
			admin.POST("/purchases", handlers.CreatePurchase)
			admin.PATCH("/purchases/:id/status", handlers.UpdatePurchaseStatus)

			admin.GET("/reports/sales", handlers.GetSalesReport)
			admin.GET("/reports/products", handlers.GetProductSales)
			admin.GET("/reports/categories", handlers.GetCategorySales)
			admin.GET("/reports/daily", handlers.GetDailySales)

			admin.GET("/users", handlers.GetUsers)
			admin.POST("/users", handlers.AddUser)
			admin.PUT("/users/:id", handlers.UpdateUser)
			admin.DELETE("/users/:id", handlers.DeleteUser)
			admin.POST("/users/:id/reset-password", handlers.ResetUserPassword)

			admin.GET("/audit-logs", handlers.GetAuditLogs)

			admin.GET("/settings", handlers.GetSettings)
			admin.PUT("/settings", handlers.UpdateSettings)

			admin.GET("/backups", handlers.GetBackups)
			admin.POST("/backups", handlers.CreateBackup)
			admin.POST("/backups/restore-upload", handlers.RestoreBackupUpload)
			admin.POST("/backups/:id/restore", handlers.RestoreBackup)
			admin.DELETE("/backups/:id", handlers.DeleteBackup)
		}
	}

	log.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("server failed to start")
	}
}
