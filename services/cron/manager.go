package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/saikumarp/eapcet-predictor/model"
	"github.com/saikumarp/eapcet-predictor/services"
	"github.com/saikumarp/eapcet-predictor/utils/cache"
	"gorm.io/gorm"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron     *cron.Cron
	db       *gorm.DB
	snapshot *services.SnapshotService
	importer *services.ImportService
	cache    *cache.RedisCache // nil when Redis is not configured
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, snapshot *services.SnapshotService, importer *services.ImportService, redisCache *cache.RedisCache) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:     c,
		db:       db,
		snapshot: snapshot,
		importer: importer,
		cache:    redisCache,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Nightly at 02:30: reload the cutoff snapshot from Postgres
	_, err := m.cron.AddFunc("0 30 2 * * *", func() {
		m.logJobStart("reload_cutoff_snapshot")
		m.ReloadCutoffSnapshot()
	})
	if err != nil {
		return err
	}

	// 2. Daily at 03:00: fail import jobs stuck in "running"
	_, err = m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("cleanup_stale_imports")
		m.CleanupStaleImports()
	})
	if err != nil {
		return err
	}

	// 3. Weekly on Sunday 04:00: trim old cron job logs
	_, err = m.cron.AddFunc("0 0 4 * * 0", func() {
		m.logJobStart("cleanup_cron_logs")
		m.CleanupOldJobLogs()
	})
	return err
}

// logJobStart records the start of a job run
func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    "started",
		StartedAt: time.Now(),
	}
	if err := m.db.Create(entry).Error; err != nil {
		log.Printf("[CRON] Failed to log start of %s: %v", jobName, err)
	}
	return entry
}

// logJobComplete records a successful job run
func (m *CronManager) logJobComplete(jobName, message string) {
	m.finishJobLog(jobName, "completed", message, "")
}

// logJobError records a failed job run
func (m *CronManager) logJobError(jobName string, cause error) {
	log.Printf("[CRON] %s failed: %v", jobName, cause)
	m.finishJobLog(jobName, "failed", "", cause.Error())
}

func (m *CronManager) finishJobLog(jobName, status, message, errMsg string) {
	var entry model.CronJobLog
	err := m.db.Where("job_name = ? AND status = ?", jobName, "started").
		Order("started_at DESC").First(&entry).Error
	if err != nil {
		return
	}

	now := time.Now()
	entry.Status = status
	entry.CompletedAt = &now
	entry.Duration = int(now.Sub(entry.StartedAt).Milliseconds())
	entry.Message = message
	entry.ErrorMsg = errMsg

	if err := m.db.Save(&entry).Error; err != nil {
		log.Printf("[CRON] Failed to finalize log for %s: %v", jobName, err)
	}
}
