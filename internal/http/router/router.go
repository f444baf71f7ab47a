package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/liftworks/service-api/internal/auth"
	"github.com/liftworks/service-api/internal/config"
	"github.com/liftworks/service-api/internal/database"
	"github.com/liftworks/service-api/internal/http/handler"
	"github.com/liftworks/service-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/liftworks/service-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	authHandler       *handler.AuthHandler
	userHandler       *handler.UserHandler
	customerHandler   *handler.CustomerHandler
	callbackHandler   *handler.CallbackHandler
	repairHandler     *handler.RepairHandler
	complaintHandler  *handler.ComplaintHandler
	scheduleHandler   *handler.ScheduleHandler
	technicianHandler *handler.TechnicianHandler
	materialHandler   *handler.MaterialHandler
	minorPointHandler *handler.MinorPointHandler
	paymentHandler    *handler.PaymentHandler
	reportHandler     *handler.ReportHandler
	attachmentHandler *handler.AttachmentHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	customerHandler *handler.CustomerHandler,
	callbackHandler *handler.CallbackHandler,
	repairHandler *handler.RepairHandler,
	complaintHandler *handler.ComplaintHandler,
	scheduleHandler *handler.ScheduleHandler,
	technicianHandler *handler.TechnicianHandler,
	materialHandler *handler.MaterialHandler,
	minorPointHandler *handler.MinorPointHandler,
	paymentHandler *handler.PaymentHandler,
	reportHandler *handler.ReportHandler,
	attachmentHandler *handler.AttachmentHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		authHandler:       authHandler,
		userHandler:       userHandler,
		customerHandler:   customerHandler,
		callbackHandler:   callbackHandler,
		repairHandler:     repairHandler,
		complaintHandler:  complaintHandler,
		scheduleHandler:   scheduleHandler,
		technicianHandler: technicianHandler,
		materialHandler:   materialHandler,
		minorPointHandler: minorPointHandler,
		paymentHandler:    paymentHandler,
		reportHandler:     reportHandler,
		attachmentHandler: attachmentHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		code := http.StatusOK
		if !allHealthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Users (administration)
			r.Route("/users", func(r chi.Router) {
				r.Get("/", rt.userHandler.List)
				r.Get("/technicians", rt.userHandler.ListTechnicians)
				r.Get("/{id}", rt.userHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.userHandler.Create)
					r.Put("/{id}", rt.userHandler.Update)
				})
			})

			// Customers and AMC contracts
			r.Route("/customers", func(r chi.Router) {
				r.Get("/", rt.customerHandler.List)
				r.Post("/", rt.customerHandler.Create)
				r.Post("/refresh-amc-status", rt.customerHandler.RefreshAMCStatus)
				r.Get("/{id}", rt.customerHandler.GetByID)
				r.Put("/{id}", rt.customerHandler.Update)
				r.Delete("/{id}", rt.customerHandler.Deactivate)
				r.Get("/{id}/contracts", rt.customerHandler.ListContracts)
			})
			r.Post("/contracts", rt.customerHandler.CreateContract)

			// Callbacks
			r.Route("/callbacks", func(r chi.Router) {
				r.Get("/", rt.callbackHandler.List)
				r.Post("/", rt.callbackHandler.Create)
				r.Get("/{id}", rt.callbackHandler.GetByID)

				// Lifecycle endpoints
				r.Post("/{id}/pick", rt.callbackHandler.Pick)
				r.Post("/{id}/on-the-way", rt.callbackHandler.OnTheWay)
				r.Post("/{id}/at-site", rt.callbackHandler.AtSite)
				r.Post("/{id}/start", rt.callbackHandler.StartWork)
				r.Post("/{id}/join", rt.callbackHandler.Join)
				r.Post("/{id}/complete", rt.callbackHandler.Complete)
				r.Post("/{id}/reopen", rt.callbackHandler.Reopen)
				r.Post("/{id}/cancel", rt.callbackHandler.Cancel)

				// Dispatcher assignment
				r.Post("/{id}/assign", rt.callbackHandler.Assign)
				r.Post("/{id}/unassign", rt.callbackHandler.Unassign)
			})

			// Repairs
			r.Route("/repairs", func(r chi.Router) {
				r.Get("/", rt.repairHandler.List)
				r.Post("/", rt.repairHandler.Create)
				r.Get("/{id}", rt.repairHandler.GetByID)
				r.Put("/{id}/status", rt.repairHandler.UpdateStatus)
				r.Post("/{id}/assign", rt.repairHandler.Assign)
				r.Post("/{id}/unassign", rt.repairHandler.Unassign)
			})

			// Complaints
			r.Route("/complaints", func(r chi.Router) {
				r.Get("/", rt.complaintHandler.List)
				r.Post("/", rt.complaintHandler.Create)
				r.Get("/{id}", rt.complaintHandler.GetByID)
				r.Post("/{id}/claim", rt.complaintHandler.Claim)
				r.Put("/{id}/status", rt.complaintHandler.UpdateStatus)
			})

			// Service schedules
			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", rt.scheduleHandler.List)
				r.Post("/", rt.scheduleHandler.Create)
				r.Get("/{id}", rt.scheduleHandler.GetByID)
				r.Get("/{id}/reports", rt.technicianHandler.ListReports)
				r.Post("/{id}/assign", rt.scheduleHandler.Assign)
				r.Post("/{id}/pick", rt.scheduleHandler.Pick)
				r.Post("/{id}/unpick", rt.scheduleHandler.Unpick)
				r.Post("/{id}/cancel", rt.scheduleHandler.Cancel)
			})

			// Field operations (technician mobile surface)
			r.Route("/technician", func(r chi.Router) {
				r.Get("/available-tickets", rt.technicianHandler.AvailableTickets)
				r.Post("/check-in", rt.technicianHandler.CheckIn)
				r.Post("/check-out", rt.technicianHandler.CheckOut)
				r.Post("/adhoc-service", rt.technicianHandler.CreateAdhoc)
			})

			// Materials
			r.Route("/materials", func(r chi.Router) {
				r.Get("/", rt.materialHandler.List)
				r.Post("/", rt.materialHandler.Record)
			})

			// Minor points
			r.Route("/minor-points", func(r chi.Router) {
				r.Get("/", rt.minorPointHandler.List)
				r.Post("/", rt.minorPointHandler.Create)
				r.Post("/{id}/close", rt.minorPointHandler.Close)
			})

			// Payments
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", rt.paymentHandler.List)
				r.Post("/", rt.paymentHandler.Create)
				r.Get("/stats", rt.paymentHandler.Stats)
				r.Get("/{id}", rt.paymentHandler.GetByID)
				r.Post("/{id}/mark-paid", rt.paymentHandler.MarkPaid)
			})

			// Reports
			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", rt.reportHandler.Daily)
				r.Get("/monthly", rt.reportHandler.Monthly)
				r.Get("/yearly", rt.reportHandler.Yearly)
				r.Get("/dashboard", rt.reportHandler.Dashboard)
				r.Get("/materials", rt.reportHandler.Materials)
				r.Get("/revenue", rt.reportHandler.Revenue)
				r.Get("/customer-amc/{id}", rt.reportHandler.CustomerAMC)
				r.Get("/customer-amc/{id}/export", rt.reportHandler.ExportCustomerAMC)
				r.Get("/technician/{id}", rt.reportHandler.Technician)
			})

			// Attachments
			r.Route("/attachments", func(r chi.Router) {
				r.Post("/", rt.attachmentHandler.Upload)
				r.Get("/{id}", rt.attachmentHandler.Download)
				r.Delete("/{id}", rt.attachmentHandler.Delete)
			})
		})
	})

	return r
}
