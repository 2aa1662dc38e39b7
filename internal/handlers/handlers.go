// Package handlers holds the gin handlers behind the API routes. They stay
// thin: bind, call into the domain, translate errors to status codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tokopos/internal/audit"
	"tokopos/internal/backup"
	"tokopos/internal/config"
	"tokopos/internal/database"
	"tokopos/internal/models"
	"tokopos/internal/pos"
)

var (
	cfg       *config.Config
	auditSvc  *audit.Service
	backupSvc *backup.Service
)

// Init wires the handler package to its services. Call once at startup.
func Init(c *config.Config, a *audit.Service, b *backup.Service) {
	cfg = c
	auditSvc = a
	backupSvc = b
}

// currentActor reads the authenticated user out of the request context
// (set by the auth middleware).
func currentActor(c *gin.Context) pos.Actor {
	return pos.Actor{
		ID:   c.MustGet("userID").(uint),
		Name: c.GetString("name"),
	}
}

// newProcessor builds a checkout processor against the live database with
// the currently configured currency, and returns the configured tax rate.
func newProcessor() (*pos.Processor, decimal.Decimal, *models.StoreSettings, error) {
	settings, err := database.Settings()
	if err != nil {
		return nil, decimal.Decimal{}, nil, err
	}
	taxRate, err := pos.ParseTaxRatePercent(settings.StoreTaxRate)
	if err != nil {
		return nil, decimal.Decimal{}, nil, err
	}
	p := pos.NewProcessor(database.NewStore(database.DB), auditSvc, settings.StoreCurrency)
	return p, taxRate, settings, nil
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var verr *pos.ValidationError
	var nf *pos.NotFoundError
	var pf *pos.PartialFailureError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &pf):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":            "checkout partially applied",
			"applied_products": pf.Applied,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
