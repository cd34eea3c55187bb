package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "problem-solver/docs" // This is for Swagger
	"problem-solver/internal/auth"
	"problem-solver/internal/config"
	"problem-solver/internal/database"
	"problem-solver/internal/email"
	"problem-solver/internal/handlers"
	"problem-solver/internal/lock"
	"problem-solver/internal/logger"
	"problem-solver/internal/middleware"
	"problem-solver/internal/repository"
	"problem-solver/internal/scheduler"
	"problem-solver/internal/service"
)

// @title Problem Solver API
// @version 1.0
// @description Collects business problem questionnaires and turns them into emailed insight reports
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@problem-solver.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	if err := loadSecrets(cfg); err != nil {
		slog.Error("Failed to load secrets from Vault", "error", err)
		os.Exit(1)
	}
	if cfg.Admin.PasswordHash == "" {
		slog.Error("ADMIN_PASSWORD_HASH is not set in the environment or Vault")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	if err := db.RunMigrations(ctx, cfg.Database.MigrationsPath); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize repositories
	submissionRepo := repository.NewSubmissionRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)
	noteRepo := repository.NewAdminNoteRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)
	auditRepo := repository.NewAuditRepository(db.DB)

	// Per-submission lock, shared across instances when Redis is enabled
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.Redis.Enabled {
		redisLocker, err := lock.NewRedisLocker(ctx, cfg.Redis)
		if err != nil {
			slog.Error("Failed to initialize Redis lock", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisLocker.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
		locker = redisLocker
		slog.Info("Using Redis submission lock", "address", cfg.Redis.Address)
	}

	var sender email.Sender = email.LogSender{}
	if cfg.Email.SMTPHost != "" {
		sender = email.NewSMTPSender(cfg.Email)
	} else {
		slog.Warn("SMTP_HOST is not set - report emails will only be logged")
	}

	// Initialize services
	authService, err := auth.NewService(&cfg.JWT)
	if err != nil {
		slog.Error("Failed to initialize token service", "error", err)
		os.Exit(1)
	}
	llmService := service.NewLLMService(cfg.LLM)
	if !cfg.LLM.Enabled {
		slog.Warn("LLM is disabled - all reports will use the placeholder content")
	}

	reportGenerator, err := service.NewReportGenerator(submissionRepo, reportRepo, llmService, locker)
	if err != nil {
		slog.Error("Failed to initialize report generator", "error", err)
		os.Exit(1)
	}

	generationQueue := service.NewGenerationQueue(reportGenerator, cfg.Pipeline.Workers, cfg.Pipeline.QueueSize, cfg.LLM.Timeout+30*time.Second)
	generationQueue.Start(ctx)

	submissionService := service.NewSubmissionService(submissionRepo, generationQueue)
	dispatcher := service.NewDispatcher(submissionRepo, reportRepo, sender, locker)
	noteService := service.NewNoteService(submissionRepo, noteRepo)
	authSvc := service.NewAuthService(sessionRepo, authService, cfg.Admin)
	auditService := service.NewAuditService(auditRepo)

	// Initialize scheduler
	schedulerService := scheduler.NewScheduler(submissionRepo, generationQueue, authSvc, &cfg.Scheduler)
	schedulerService.Start()

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(authSvc)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	realIP, err := middleware.NewRealIP(cfg.RateLimit.TrustedProxies)
	if err != nil {
		slog.Error("Invalid TRUSTED_PROXIES", "error", err)
		os.Exit(1)
	}
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Stop()
	auditMw := middleware.NewAuditMiddleware(auditService)

	// Initialize handlers
	routes := &router{
		authMw:            authMw,
		auditMw:           auditMw,
		submissionHandler: handlers.NewSubmissionHandler(submissionService),
		adminHandler:      handlers.NewAdminHandler(submissionService, reportGenerator, dispatcher, noteService),
		authHandler:       handlers.NewAuthHandler(authSvc, auditService),
		auditHandler:      handlers.NewAuditHandler(auditService),
		healthHandler:     handlers.NewHealthHandler(db, cfg.App.Version),
	}

	// Apply global middleware
	handler := realIP.Handler(
		middleware.LoggingMiddleware(
			middleware.SecurityHeaders(
				corsMw.Handler(
					rateLimiter.Limit(routes.mux()),
				),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		slog.Error("Server failed to start", "error", err)
	}

	slog.Info("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := getContext(30 * time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	schedulerService.Stop()

	// Submissions still queued stay "new" and are picked up by the next sweep
	if err := generationQueue.Stop(shutdownCtx); err != nil {
		slog.Warn("Report generation did not drain before shutdown", "pending", generationQueue.Len(), "error", err)
	}

	slog.Info("Server stopped")
}
