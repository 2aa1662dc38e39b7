// Package audit persists the append-only action trail. The checkout core
// reaches it only through domain events; handlers append directly for the
// plain CRUD actions.
package audit

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tokopos/internal/models"
	"tokopos/internal/pos"
)

// Well-known action kinds, matching what the dashboard filters on.
const (
	ActionLogin             = "login"
	ActionProductCreated    = "product_created"
	ActionProductUpdated    = "product_updated"
	ActionProductDeleted    = "product_deleted"
	ActionUserCreated       = "user_created"
	ActionUserUpdated       = "user_updated"
	ActionUserDeleted       = "user_deleted"
	ActionPasswordReset     = "password_reset"
	ActionWholesalerCreated = "wholesaler_created"
	ActionWholesalerUpdated = "wholesaler_updated"
	ActionWholesalerDeleted = "wholesaler_deleted"
	ActionPurchaseCreated   = "purchase_created"
	ActionSettingsUpdated   = "settings_updated"
	ActionBackupCreated     = "backup_created"
	ActionBackupRestored    = "backup_restored"
	ActionBackupDeleted     = "backup_deleted"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// Append writes one audit row. Callers treat failures as best effort.
func (s *Service) Append(ctx context.Context, userID uint, username, action, details, ip string) error {
	row := models.AuditLog{
		Timestamp: time.Now(),
		UserID:    userID,
		Username:  username,
		Action:    action,
		Details:   details,
		IPAddress: ip,
	}
	return pkgerrors.Wrap(s.db.WithContext(ctx).Create(&row).Error, "append audit log")
}

// Try is Append with the failure swallowed into a log line, for call sites
// where the main operation already succeeded.
func (s *Service) Try(ctx context.Context, userID uint, username, action, details, ip string) {
	if err := s.Append(ctx, userID, username, action, details, ip); err != nil {
		log.WithError(err).WithField("action", action).Warn("audit append failed")
	}
}

// Emit implements pos.EventSink, turning core domain events into audit rows.
func (s *Service) Emit(ctx context.Context, ev pos.Event) error {
	actorID, actorName := ev.Actor()
	return s.Append(ctx, actorID, actorName, ev.AuditAction(), ev.AuditDetails(), "")
}

// List returns audit rows, newest first. timeRange is one of
// all/today/week/month; action filters by substring match like the
// dashboard's action-type dropdown.
func (s *Service) List(ctx context.Context, timeRange, action string, limit int) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{}).Order("timestamp desc")

	if since, ok := sinceFor(timeRange); ok {
		q = q.Where("timestamp >= ?", since)
	}
	if action != "" && action != "all" {
		q = q.Where("action LIKE ?", "%"+action+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list audit logs")
	}
	return logs, nil
}

func sinceFor(timeRange string) (time.Time, bool) {
	now := time.Now()
	switch timeRange {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}
