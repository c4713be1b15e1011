package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/saikumarp/eapcet-predictor/model"
	"github.com/saikumarp/eapcet-predictor/utils/cache"
)

// ReloadCutoffSnapshot swaps in a fresh in-memory cutoff table and drops the
// cached shortlists computed against the old one. Runs nightly so same-day
// imports become visible without a restart.
func (m *CronManager) ReloadCutoffSnapshot() {
	jobName := "reload_cutoff_snapshot"

	count, err := m.snapshot.Reload()
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	if m.cache != nil {
		if err := m.cache.DeleteByPattern(context.Background(), cache.RecommendationKeyPrefix+"*"); err != nil {
			log.Printf("[CRON] failed to flush recommendation cache: %v", err)
		}
	}

	m.logJobComplete(jobName, fmt.Sprintf("Reloaded %d admission records", count))
}

// CleanupStaleImports fails import jobs that never finished
func (m *CronManager) CleanupStaleImports() {
	jobName := "cleanup_stale_imports"

	affected, err := m.importer.CleanupStaleJobs()
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	if affected == 0 {
		m.logJobComplete(jobName, "No stale import jobs")
		return
	}
	m.logJobComplete(jobName, fmt.Sprintf("Marked %d stale import jobs as failed", affected))
}

// CleanupOldJobLogs trims cron job logs older than 90 days
func (m *CronManager) CleanupOldJobLogs() {
	jobName := "cleanup_cron_logs"

	cutoff := time.Now().AddDate(0, 0, -90)
	result := m.db.Unscoped().
		Where("started_at < ?", cutoff).
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Deleted %d old log rows", result.RowsAffected))
}
