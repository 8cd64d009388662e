package services

import (
	"huddle/internal/database"
	"huddle/internal/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// changeLogRetention is how long skip audit rows are kept.
const changeLogRetention = 90 * 24 * time.Hour

// MaintenanceJob runs nightly cleanup: expired unconfirmed reminder tokens
// and old series change logs.
type MaintenanceJob struct {
	db     *gorm.DB
	tokens *database.TokenStore
	cron   *cron.Cron
}

func NewMaintenanceJob() *MaintenanceJob {
	db := database.GetDB()
	return &MaintenanceJob{
		db:     db,
		tokens: database.NewTokenStore(db),
		cron:   cron.New(),
	}
}

// Start schedules the nightly run at 04:00 server time
func (j *MaintenanceJob) Start() error {
	if _, err := j.cron.AddFunc("0 4 * * *", j.runOnce); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (j *MaintenanceJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *MaintenanceJob) runOnce() {
	now := time.Now()

	purged, err := j.tokens.DeleteExpiredUnconfirmed(now)
	if err != nil {
		log.Printf("Error: Failed to purge expired reminder tokens: %v", err)
	} else if purged > 0 {
		log.Printf("Purged %d expired reminder tokens", purged)
	}

	cutoff := now.Add(-changeLogRetention)
	result := j.db.Where("created_at < ?", cutoff).Delete(&models.SeriesChangeLog{})
	if result.Error != nil {
		log.Printf("Error: Failed to trim series change logs: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Trimmed %d series change log rows", result.RowsAffected)
	}
}
