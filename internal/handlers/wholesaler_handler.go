package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tokopos/internal/audit"
	"tokopos/internal/database"
	"tokopos/internal/models"
)

func GetWholesalers(c *gin.Context) {
	q := database.DB.Order("name")
	if c.Query("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}

	var wholesalers []models.Wholesaler
	if err := q.Find(&wholesalers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wholesalers"})
		return
	}
	c.JSON(http.StatusOK, wholesalers)
}

func GetWholesaler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wholesaler ID"})
		return
	}
	var w models.Wholesaler
	if err := database.DB.First(&w, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wholesaler not found"})
		return
	}
	c.JSON(http.StatusOK, w)
}

func AddWholesaler(c *gin.Context) {
	var w models.Wholesaler
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if w.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wholesaler name is required"})
		return
	}
	w.ID = 0
	w.IsActive = true

	if err := database.DB.Create(&w).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wholesaler"})
		return
	}

	actor := currentActor(c)
	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionWholesalerCreated,
		fmt.Sprintf("Wholesaler %q created", w.Name), c.ClientIP())

	c.JSON(http.StatusCreated, w)
}

func UpdateWholesaler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wholesaler ID"})
		return
	}

	var w models.Wholesaler
	if err := database.DB.First(&w, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wholesaler not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := database.DB.Model(&w).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wholesaler"})
		return
	}

	actor := currentActor(c)
	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionWholesalerUpdated,
		fmt.Sprintf("Wholesaler %q updated", w.Name), c.ClientIP())

	c.JSON(http.StatusOK, w)
}

func DeleteWholesaler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wholesaler ID"})
		return
	}

	var w models.Wholesaler
	if err := database.DB.First(&w, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wholesaler not found"})
		return
	}

	if err := database.DB.Delete(&w).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete wholesaler. It might be linked to past purchases."})
		return
	}

	actor := currentActor(c)
	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionWholesalerDeleted,
		fmt.Sprintf("Wholesaler %q deleted", w.Name), c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Wholesaler deleted successfully"})
}

// ToggleWholesalerStatus flips the active flag, the softer alternative to
// deleting a supplier with purchase history.
func ToggleWholesalerStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wholesaler ID"})
		return
	}

	var w models.Wholesaler
	if err := database.DB.First(&w, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wholesaler not found"})
		return
	}

	if err := database.DB.Model(&w).Update("is_active", !w.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wholesaler"})
		return
	}
	w.IsActive = !w.IsActive
	c.JSON(http.StatusOK, w)
}
