package jobs

import (
	"database/sql"

	"bloodlink-backend/internal/config"
	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/repository/postgres"
	"bloodlink-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	email  service.EmailService
	config *config.Config
}

func NewJobRunner(db *sql.DB, store *postgres.Store, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		email:  email,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs every daily job once (for manual execution).
func (jr *JobRunner) RunAllDailyJobs() {
	jr.ExpireStaleRequests()
	jr.SendDonationReminders()
}

// RunAllWeeklyJobs runs every weekly job once (for manual execution).
func (jr *JobRunner) RunAllWeeklyJobs() {
	jr.SendEligibilityReminders()
}
