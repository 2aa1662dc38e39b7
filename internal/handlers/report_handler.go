package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tokopos/internal/database"
	"tokopos/internal/models"
)

// sinceForRange maps the dashboard's time-range dropdown onto a cutoff.
func sinceForRange(timeRange string) (time.Time, bool) {
	now := time.Now()
	switch timeRange {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	default: // "all"
		return time.Time{}, false
	}
}

// SalesReportRow is one sale with its real profit (revenue minus the cost
// of the items sold).
type SalesReportRow struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	SaleTime      time.Time       `json:"sale_time"`
	CustomerName  string          `json:"customer_name"`
	CashierName   string          `json:"cashier_name"`
	Total         decimal.Decimal `json:"total"`
	Profit        decimal.Decimal `json:"profit"`
	PaymentMethod string          `json:"payment_method"`
}

func GetSalesReport(c *gin.Context) {
	q := database.DB.Table("sales").
		Select(`sales.id, sales.code, sales.sale_time, sales.customer_name, sales.cashier_name,
			sales.total, sales.payment_method,
			COALESCE(SUM((sale_items.unit_price - products.cost) * sale_items.quantity), 0) AS profit`).
		Joins("JOIN sale_items ON sale_items.sale_id = sales.id").
		Joins("LEFT JOIN products ON products.id = sale_items.product_id").
		Group("sales.id, sales.code, sales.sale_time, sales.customer_name, sales.cashier_name, sales.total, sales.payment_method").
		Order("sales.sale_time desc")

	if since, ok := sinceForRange(c.Query("time_range")); ok {
		q = q.Where("sales.sale_time >= ?", since)
	}

	var rows []SalesReportRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ProductSalesRow aggregates sold quantities per product.
type ProductSalesRow struct {
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

func GetProductSales(c *gin.Context) {
	q := database.DB.Table("sale_items").
		Select(`sale_items.product_id, sale_items.name,
			COALESCE(products.category, 'Unknown') AS category,
			SUM(sale_items.quantity) AS quantity_sold,
			SUM(sale_items.unit_price * sale_items.quantity) AS revenue,
			COALESCE(SUM((sale_items.unit_price - products.cost) * sale_items.quantity), 0) AS profit`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("LEFT JOIN products ON products.id = sale_items.product_id").
		Group("sale_items.product_id, sale_items.name, products.category").
		Order("revenue desc")

	if since, ok := sinceForRange(c.Query("time_range")); ok {
		q = q.Where("sales.sale_time >= ?", since)
	}

	var rows []ProductSalesRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build product sales report"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CategorySalesRow aggregates revenue per category.
type CategorySalesRow struct {
	Name      string          `json:"name"`
	ItemsSold int             `json:"items_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

func GetCategorySales(c *gin.Context) {
	q := database.DB.Table("sale_items").
		Select(`COALESCE(products.category, 'Unknown') AS name,
			SUM(sale_items.quantity) AS items_sold,
			SUM(sale_items.unit_price * sale_items.quantity) AS revenue,
			COALESCE(SUM((sale_items.unit_price - products.cost) * sale_items.quantity), 0) AS profit`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("LEFT JOIN products ON products.id = sale_items.product_id").
		Group("products.category").
		Order("revenue desc")

	if since, ok := sinceForRange(c.Query("time_range")); ok {
		q = q.Where("sales.sale_time >= ?", since)
	}

	var rows []CategorySalesRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build category sales report"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DailySalesRow is one point of the sales chart.
type DailySalesRow struct {
	Date  string          `json:"date"`
	Sales decimal.Decimal `json:"sales"`
}

func GetDailySales(c *gin.Context) {
	q := database.DB.Table("sales").
		Select("DATE(sale_time) AS date, COALESCE(SUM(total), 0) AS sales").
		Group("DATE(sale_time)").
		Order("date")

	if since, ok := sinceForRange(c.Query("time_range")); ok {
		q = q.Where("sale_time >= ?", since)
	} else {
		// the chart defaults to the last 7 days
		q = q.Where("sale_time >= ?", time.Now().AddDate(0, 0, -7))
	}

	var rows []DailySalesRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build daily sales"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DashboardStats feeds the landing page cards.
type DashboardStats struct {
	DailySales    decimal.Decimal `json:"daily_sales"`
	TotalOrders   int64           `json:"total_orders"`
	TotalProducts int64           `json:"total_products"`
	LowStockCount int64           `json:"low_stock_count"`
	RecentSales   []models.Sale   `json:"recent_sales"`
}

func GetDashboardStats(c *gin.Context) {
	var stats DashboardStats
	today, _ := sinceForRange("today")

	var revenue struct {
		Total decimal.Decimal
	}
	err := database.DB.Model(&models.Sale{}).
		Where("sale_time >= ?", today).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&revenue).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate revenue"})
		return
	}
	stats.DailySales = revenue.Total

	if err := database.DB.Model(&models.Sale{}).Count(&stats.TotalOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
		return
	}
	if err := database.DB.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}
	err = database.DB.Model(&models.Product{}).
		Where("stock_quantity <= min_stock_level").
		Count(&stats.LowStockCount).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count low stock"})
		return
	}

	err = database.DB.Order("sale_time desc").Limit(5).Find(&stats.RecentSales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent sales"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
