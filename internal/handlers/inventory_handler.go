package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tokopos/internal/database"
	"tokopos/internal/models"
)

// GetInventory returns the catalog with stock levels; the inventory page
// shows the same rows as the product list.
func GetInventory(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetLowStockProducts(c *gin.Context) {
	var products []models.Product
	err := database.DB.
		Where("stock_quantity <= min_stock_level").
		Order("stock_quantity").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch low stock products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

type adjustRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Delta     int    `json:"delta" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// AdjustInventory applies an operator stock correction. Unlike a sale this
// rejects any adjustment that would drive stock negative.
func AdjustInventory(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	processor, _, _, err := newProcessor()
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := processor.AdjustInventory(c.Request.Context(), req.ProductID, req.Delta, req.Reason, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetStockMovements lists the inventory ledger, newest first.
func GetStockMovements(c *gin.Context) {
	limit := 100
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}

	q := database.DB.Order("created_at desc").Limit(limit)
	if pid, err := strconv.Atoi(c.Query("product_id")); err == nil {
		q = q.Where("product_id = ?", pid)
	}

	var movements []models.StockMovement
	if err := q.Find(&movements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock movements"})
		return
	}
	c.JSON(http.StatusOK, movements)
}
