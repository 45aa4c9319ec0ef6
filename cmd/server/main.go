package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentalmotor-backend/internal/api/http"
	"rentalmotor-backend/internal/config"
	"rentalmotor-backend/internal/jobs"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/notify"
	"rentalmotor-backend/internal/payment"
	"rentalmotor-backend/internal/repository/postgres"
	"rentalmotor-backend/internal/scheduler"
	"rentalmotor-backend/internal/security"
	"rentalmotor-backend/internal/service"
	"rentalmotor-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("scheduler", false, "Run the overdue jobs inside the server process")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Motor Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "timezone", cfg.Billing.Timezone)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	if cfg.Database.Migrate {
		if err := postgres.Migrate(context.Background(), db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Info("Database schema is up to date")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage
	fileStore, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	logger.Info("Using local file storage", "upload_dir", cfg.Storage.UploadDir)

	if cfg.Payment.QRISStaticPayload != "" {
		if err := payment.Validate(cfg.Payment.QRISStaticPayload); err != nil {
			log.Fatalf("Invalid static QRIS payload: %v", err)
		}
	} else {
		logger.Warn("QRIS payment is not configured, payment QR codes are disabled")
	}

	// Initialize Services
	noteSvc := service.NewNotificationService(
		store.NotificationRepository,
		store.AdminRepository,
		notify.EmailSenderFromConfig(cfg.Notification.SendGrid),
		notify.PushSenderFromConfig(context.Background(), cfg.Notification.Firebase),
		cfg.Notification.AdminEmails,
	)
	authSvc := service.NewAuthService(store.AdminRepository, tokenManager)
	motorSvc := service.NewMotorService(store.MotorTypeRepository, store.MotorUnitRepository)
	txSvc := service.NewTransactionService(store.TransactionRepository, store.MotorUnitRepository, noteSvc, cfg.Location())
	paymentSvc := service.NewPaymentService(
		store.TransactionRepository,
		cfg.Payment.QRISStaticPayload,
		payment.Fee{Type: payment.FeeType(cfg.Payment.FeeType), Value: cfg.Payment.FeeValue},
		cfg.Payment.QRCodeSize,
	)
	blogSvc := service.NewBlogService(store.BlogRepository)
	uploadSvc := service.NewUploadService(fileStore, cfg.Storage.AllowedTypes, cfg.MaxUploadBytes())

	if err := authSvc.EnsureBootstrapAdmin(context.Background(), cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		logger.Error("Failed to create bootstrap admin", "error", err)
		log.Fatalf("Failed to create bootstrap admin: %v", err)
	}

	router := httpapi.NewRouter(httpapi.Services{
		Auth:           authSvc,
		Motor:          motorSvc,
		Transaction:    txSvc,
		Payment:        paymentSvc,
		Blog:           blogSvc,
		Notification:   noteSvc,
		Upload:         uploadSvc,
		Tokens:         tokenManager,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		HealthCheck:    store.DB().PingContext,
	})

	var cronScheduler *scheduler.Scheduler
	if *withScheduler {
		jobRunner := jobs.NewJobRunner(&jobs.Services{Transaction: txSvc, Notification: noteSvc}, cfg)
		cronScheduler, err = scheduler.NewScheduler(jobRunner)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		cronScheduler.Start()
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve HTTP", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	if cronScheduler != nil {
		cronScheduler.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownGraceSecs)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
