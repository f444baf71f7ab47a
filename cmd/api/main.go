package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/liftworks/service-api/docs"
	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/config"
	"github.com/liftworks/service-api/internal/database"
	"github.com/liftworks/service-api/internal/http/handler"
	"github.com/liftworks/service-api/internal/http/middleware"
	"github.com/liftworks/service-api/internal/http/router"
	"github.com/liftworks/service-api/internal/jobs"
	"github.com/liftworks/service-api/internal/logger"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/service"
	"github.com/liftworks/service-api/internal/storage"
	"go.uber.org/zap"
)

// @title Liftworks Service API
// @version 1.0
// @description Lift maintenance backend for AMC customers, callbacks, service schedules, and field operations

// @contact.name API Support
// @contact.email support@liftworks.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "service-api-staging.liftworks.io"
	case "production":
		docs.SwaggerInfo.Host = "api.liftworks.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run auto migrations: %w", err)
		}
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	contractRepo := repository.NewContractRepository(db)
	callbackRepo := repository.NewCallbackRepository(db)
	repairRepo := repository.NewRepairRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	minorPointRepo := repository.NewMinorPointRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Initialize auth
	tokenManager, err := auth.NewTokenManager(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}
	authMiddleware := auth.NewMiddleware(tokenManager, log)

	// Initialize services
	sequenceService := service.NewSequenceService(sequenceRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, log)
	userService := service.NewUserService(userRepo, tokenManager, log)
	customerService := service.NewCustomerService(customerRepo, contractRepo, sequenceService, log)
	callbackService := service.NewCallbackService(callbackRepo, assignmentService, customerService, sequenceService, log)
	repairService := service.NewRepairService(repairRepo, customerRepo, assignmentService, sequenceService, log)
	complaintService := service.NewComplaintService(complaintRepo, customerRepo, userRepo, sequenceService, log)
	scheduleService := service.NewScheduleService(scheduleRepo, assignmentService, customerService, sequenceService, log)
	fieldService := service.NewFieldService(reportRepo, scheduleRepo, callbackRepo, repairRepo, contractRepo, assignmentService, sequenceService, log)
	materialService := service.NewMaterialService(materialRepo, customerRepo, log)
	minorPointService := service.NewMinorPointService(minorPointRepo, customerRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, customerRepo, sequenceService, log)
	reportingService := service.NewReportingService(
		customerRepo, contractRepo, callbackRepo, repairRepo, complaintRepo,
		scheduleRepo, reportRepo, materialRepo, paymentRepo, userRepo, assignmentRepo, log,
	)
	attachmentService := service.NewAttachmentService(attachmentRepo, fileStorage, log)

	// Initialize middleware and handlers
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	authHandler := handler.NewAuthHandler(userService, log)
	userHandler := handler.NewUserHandler(userService, log)
	customerHandler := handler.NewCustomerHandler(customerService, log)
	callbackHandler := handler.NewCallbackHandler(callbackService, log)
	repairHandler := handler.NewRepairHandler(repairService, log)
	complaintHandler := handler.NewComplaintHandler(complaintService, log)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, log)
	technicianHandler := handler.NewTechnicianHandler(fieldService, scheduleService, log)
	materialHandler := handler.NewMaterialHandler(materialService, log)
	minorPointHandler := handler.NewMinorPointHandler(minorPointService, log)
	paymentHandler := handler.NewPaymentHandler(paymentService, log)
	reportHandler := handler.NewReportHandler(reportingService, log)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		userHandler,
		customerHandler,
		callbackHandler,
		repairHandler,
		complaintHandler,
		scheduleHandler,
		technicianHandler,
		materialHandler,
		minorPointHandler,
		paymentHandler,
		reportHandler,
		attachmentHandler,
	)

	// Initialize and start scheduler for nightly sweeps
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterSweeps(scheduler, &cfg.Jobs, customerService, scheduleService, paymentService, log); err != nil {
			return fmt.Errorf("failed to register sweep jobs: %w", err)
		}
		scheduler.Start()
		log.Info("Scheduler started",
			zap.String("amc_expiry_cron", cfg.Jobs.AMCExpirySchedule),
			zap.String("overdue_cron", cfg.Jobs.OverdueSchedule),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
