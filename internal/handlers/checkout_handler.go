package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tokopos/internal/database"
	"tokopos/internal/models"
	"tokopos/internal/pos"
)

type checkoutItem struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" binding:"required"`
}

type checkoutRequest struct {
	Items          []checkoutItem   `json:"items" binding:"required"`
	PaymentMethod  string           `json:"payment_method" binding:"required"`
	AmountTendered *decimal.Decimal `json:"amount_tendered"`
	CustomerID     *uint            `json:"customer_id"`
}

// ProcessCheckout finalizes a cart: totals, sale record, stock decrements.
// All the interesting rules live in the pos package.
func ProcessCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	processor, taxRate, _, err := newProcessor()
	if err != nil {
		respondError(c, err)
		return
	}

	actor := currentActor(c)
	items := make([]pos.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, pos.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	result, err := processor.FinalizeSale(c.Request.Context(), pos.CheckoutRequest{
		Items:          items,
		PaymentMethod:  req.PaymentMethod,
		AmountTendered: req.AmountTendered,
		CustomerID:     req.CustomerID,
		CashierID:      actor.ID,
		CashierName:    actor.Name,
	}, taxRate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func GetSales(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}

	var sales []models.Sale
	err := database.DB.Preload("Items").
		Order("sale_time desc").
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSale accepts either the numeric id or the receipt code (S001).
func GetSale(c *gin.Context) {
	param := c.Param("id")

	var sale models.Sale
	q := database.DB.Preload("Items")
	var err error
	if id, convErr := strconv.Atoi(param); convErr == nil {
		err = q.First(&sale, id).Error
	} else {
		err = q.Where("code = ?", param).First(&sale).Error
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, sale)
}
