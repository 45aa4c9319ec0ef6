package jobs

import (
	"context"
	"time"

	"rentalmotor-backend/internal/config"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/service"
)

const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Transaction  service.TransactionService
	Notification service.NotificationService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
	}
}

// Config exposes the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	jobFunc(ctx)
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunByName runs a single job, used by the cronjob binary's -run-once flag
func (jr *JobRunner) RunByName(name string) bool {
	switch name {
	case "mark-overdue-transactions":
		jr.MarkOverdueTransactions()
	case "send-overdue-reminders":
		jr.SendOverdueReminders()
	case "all":
		jr.RunAll()
	default:
		return false
	}
	return true
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.MarkOverdueTransactions()
	jr.SendOverdueReminders()
}
