package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"bloodlink-backend/internal/jobs"
	"bloodlink-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler with UTC timezone and seconds precision.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.ExpireStaleRequests, s.jobs.ExpireStaleRequests)
	if err != nil {
		logger.Error("Failed to register ExpireStaleRequests job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.SendDonationReminders, s.jobs.SendDonationReminders)
	if err != nil {
		logger.Error("Failed to register SendDonationReminders job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.SendEligibilityReminders, s.jobs.SendEligibilityReminders)
	if err != nil {
		logger.Error("Failed to register SendEligibilityReminders job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any jobs are registered.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
