package backup

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"tokopos/internal/models"
)

// RunScheduler ticks hourly and creates an automatic backup when the store
// settings enable it and the last one is older than the configured
// frequency. Blocks until ctx is done; run it in its own goroutine.
func (s *Service) RunScheduler(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

func (s *Service) runDue(ctx context.Context) {
	var settings models.StoreSettings
	if err := s.db.WithContext(ctx).First(&settings, 1).Error; err != nil {
		log.WithError(err).Warn("backup scheduler: cannot load settings")
		return
	}
	if !settings.EnableAutomaticBackup {
		return
	}

	interval := 24 * time.Hour
	if settings.BackupFrequency == "weekly" {
		interval = 7 * 24 * time.Hour
	}

	var last models.Backup
	err := s.db.WithContext(ctx).Order("timestamp desc").First(&last).Error
	if err == nil && time.Since(last.Timestamp) < interval {
		return
	}

	note := "Backup otomatis " + settings.BackupFrequency
	if _, err := s.Create(ctx, note, "scheduler"); err != nil {
		log.WithError(err).Warn("automatic backup failed")
	}
}
