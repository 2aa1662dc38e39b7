package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tokopos/internal/audit"
	"tokopos/internal/database"
	"tokopos/internal/models"
	"tokopos/internal/pos"
)

func GetPurchases(c *gin.Context) {
	q := database.DB.Preload("Items").Order("purchase_date desc")

	if wid, err := strconv.Atoi(c.Query("wholesaler_id")); err == nil {
		q = q.Where("wholesaler_id = ?", wid)
	}
	if start, err := time.Parse("2006-01-02", c.Query("start")); err == nil {
		q = q.Where("purchase_date >= ?", start)
	}
	if end, err := time.Parse("2006-01-02", c.Query("end")); err == nil {
		q = q.Where("purchase_date < ?", end.AddDate(0, 0, 1))
	}

	var purchases []models.Purchase
	if err := q.Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func GetPurchase(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID"})
		return
	}
	var purchase models.Purchase
	if err := database.DB.Preload("Items").First(&purchase, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}
	c.JSON(http.StatusOK, purchase)
}

type purchaseItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type purchaseRequest struct {
	WholesalerID  uint                  `json:"wholesaler_id" binding:"required"`
	Items         []purchaseItemRequest `json:"items" binding:"required,min=1"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	PaymentStatus string                `json:"payment_status"`
	Notes         string                `json:"notes"`
	PurchaseDate  *time.Time            `json:"purchase_date"`
	ReceivedDate  *time.Time            `json:"received_date"`
}

// CreatePurchase records a delivery from a wholesaler: stock goes up
// through the same ledgered path a sale takes it down, and product costs
// follow the latest unit cost. Everything runs in one transaction.
func CreatePurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = "pending"
	}

	settings, err := database.Settings()
	if err != nil {
		respondError(c, err)
		return
	}
	taxRate, err := pos.ParseTaxRatePercent(settings.StoreTaxRate)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := currentActor(c)
	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	var purchase *models.Purchase
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var wholesaler models.Wholesaler
		if err := tx.First(&wholesaler, req.WholesalerID).Error; err != nil {
			return &pos.NotFoundError{Entity: "wholesaler", ID: req.WholesalerID}
		}

		store := database.NewStore(tx)
		code, err := store.Codes().NextCode(c.Request.Context(), "purchase")
		if err != nil {
			return err
		}

		items := make([]models.PurchaseItem, 0, len(req.Items))
		lines := make([]pos.LineItem, 0, len(req.Items))
		for _, it := range req.Items {
			product, err := store.Products().AdjustStock(c.Request.Context(), it.ProductID, it.Quantity)
			if err != nil {
				return err
			}
			err = store.Products().RecordMovement(c.Request.Context(), &models.StockMovement{
				ProductID: it.ProductID,
				Delta:     it.Quantity,
				Reason:    fmt.Sprintf("Pembelian #%s dari %s", code, wholesaler.Name),
				UserID:    actor.ID,
				Username:  actor.Name,
			})
			if err != nil {
				return err
			}

			// track the latest purchase cost on the product
			if !product.Cost.Equal(it.UnitCost) {
				if err := tx.Model(product).Update("cost", it.UnitCost).Error; err != nil {
					return err
				}
			}

			items = append(items, models.PurchaseItem{
				ProductID: it.ProductID,
				Name:      product.Name,
				UnitCost:  it.UnitCost,
				Quantity:  it.Quantity,
				Total:     it.UnitCost.Mul(decimal.NewFromInt(int64(it.Quantity))),
			})
			lines = append(lines, pos.LineItem{
				ProductID: it.ProductID,
				UnitPrice: it.UnitCost,
				Quantity:  it.Quantity,
			})
		}

		totals, err := pos.ComputeTotals(lines, taxRate, nil, pos.MinorUnits(settings.StoreCurrency))
		if err != nil {
			return err
		}

		purchase = &models.Purchase{
			Code:           code,
			WholesalerID:   wholesaler.ID,
			WholesalerName: wholesaler.Name,
			Subtotal:       totals.Subtotal,
			Tax:            totals.Tax,
			Total:          totals.Total,
			PaymentMethod:  req.PaymentMethod,
			PaymentStatus:  req.PaymentStatus,
			Notes:          req.Notes,
			PurchaseDate:   purchaseDate,
			ReceivedDate:   req.ReceivedDate,
			CreatedBy:      actor.ID,
			CreatedByName:  actor.Name,
			Items:          items,
		}
		return tx.Create(purchase).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionPurchaseCreated,
		fmt.Sprintf("Purchase #%s from %s, total %s", purchase.Code, purchase.WholesalerName, purchase.Total.String()),
		c.ClientIP())

	c.JSON(http.StatusCreated, purchase)
}

type purchaseStatusRequest struct {
	PaymentStatus string     `json:"payment_status" binding:"required,oneof=pending paid"`
	ReceivedDate  *time.Time `json:"received_date"`
}

func UpdatePurchaseStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID"})
		return
	}

	var req purchaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var purchase models.Purchase
	if err := database.DB.First(&purchase, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}

	updates := map[string]interface{}{"payment_status": req.PaymentStatus}
	if req.ReceivedDate != nil {
		updates["received_date"] = req.ReceivedDate
	}
	if err := database.DB.Model(&purchase).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purchase"})
		return
	}

	c.JSON(http.StatusOK, purchase)
}

func GetPurchaseStats(c *gin.Context) {
	var totalPurchases int64
	if err := database.DB.Model(&models.Purchase{}).Count(&totalPurchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count purchases"})
		return
	}

	var spent struct {
		Total decimal.Decimal
	}
	err := database.DB.Model(&models.Purchase{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&spent).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum purchases"})
		return
	}

	var pendingPayments int64
	err = database.DB.Model(&models.Purchase{}).
		Where("payment_status = ?", "pending").
		Count(&pendingPayments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_purchases":  totalPurchases,
		"total_spent":      spent.Total,
		"pending_payments": pendingPayments,
	})
}
