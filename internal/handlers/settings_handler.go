package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tokopos/internal/audit"
	"tokopos/internal/database"
	"tokopos/internal/models"
	"tokopos/internal/pos"
)

func GetSettings(c *gin.Context) {
	settings, err := database.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateSettings(c *gin.Context) {
	var input models.StoreSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// the tax rate must stay parseable, checkout depends on it
	if _, err := pos.ParseTaxRatePercent(input.StoreTaxRate); err != nil {
		respondError(c, err)
		return
	}

	input.ID = 1
	if err := database.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	actor := currentActor(c)
	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionSettingsUpdated,
		"Store settings updated", c.ClientIP())

	c.JSON(http.StatusOK, input)
}
