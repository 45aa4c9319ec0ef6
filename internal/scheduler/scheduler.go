package scheduler

import (
	"fmt"

	"rentalmotor-backend/internal/jobs"
	"rentalmotor-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler that fires jobs in the billing time zone.
// It fails when a configured schedule cannot be parsed.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(jobRunner.Config().Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.MarkOverdueTransactions, s.jobs.MarkOverdueTransactions); err != nil {
		return fmt.Errorf("failed to register MarkOverdueTransactions job: %w", err)
	}

	if _, err := s.cron.AddFunc(cfg.SendOverdueReminders, s.jobs.SendOverdueReminders); err != nil {
		return fmt.Errorf("failed to register SendOverdueReminders job: %w", err)
	}

	logger.Info("All cron jobs registered successfully", "timezone", s.jobs.Config().Billing.Timezone)
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
