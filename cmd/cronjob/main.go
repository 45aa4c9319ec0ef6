package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentalmotor-backend/internal/config"
	"rentalmotor-backend/internal/jobs"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/notify"
	"rentalmotor-backend/internal/repository/postgres"
	"rentalmotor-backend/internal/scheduler"
	"rentalmotor-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-transactions', 'send-overdue-reminders', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Motor Cronjob Runner...", "log_level", cfg.Log.Level, "timezone", cfg.Billing.Timezone)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	noteSvc := service.NewNotificationService(
		store.NotificationRepository,
		store.AdminRepository,
		notify.EmailSenderFromConfig(cfg.Notification.SendGrid),
		notify.PushSenderFromConfig(context.Background(), cfg.Notification.Firebase),
		cfg.Notification.AdminEmails,
	)

	txSvc := service.NewTransactionService(
		store.TransactionRepository,
		store.MotorUnitRepository,
		noteSvc,
		cfg.Location(),
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(&jobs.Services{
		Transaction:  txSvc,
		Notification: noteSvc,
	}, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !jobRunner.RunByName(*runOnce) {
			logger.Error("Unknown job name", "job", *runOnce)
			fmt.Printf("Available jobs:\n")
			fmt.Printf("  - mark-overdue-transactions\n")
			fmt.Printf("  - send-overdue-reminders\n")
			fmt.Printf("  - all\n")
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to create scheduler", "error", err)
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
