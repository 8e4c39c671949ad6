package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/coopregistry/coopregistry-api/internal/config"
	"github.com/coopregistry/coopregistry-api/internal/database"
	"github.com/coopregistry/coopregistry-api/internal/handlers"
	"github.com/coopregistry/coopregistry-api/internal/middleware"
	"github.com/coopregistry/coopregistry-api/internal/repository"
	"github.com/coopregistry/coopregistry-api/internal/services"
	"github.com/coopregistry/coopregistry-api/internal/storage"
	"github.com/coopregistry/coopregistry-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Ensure schema exists (idempotent bootstrap)
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to bootstrap schema", "error", err)
		os.Exit(1)
	}
	logger.Info("Schema bootstrap complete")

	// Initialize document storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories, services and handlers
	repos := repository.NewRepositories(db)
	svcs := services.NewServices(repos, store, cfg, db)
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Health check (public)
	router.GET("/health", h.Health.Index)

	auth := router.Group("/auth")
	{
		// Public endpoints
		auth.POST("/developer/login", h.Auth.DeveloperLogin)
		auth.POST("/society/login", h.Auth.SocietyLogin)
		auth.POST("/society/register", h.Society.Register)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/society/:id", h.Society.Show)

		// Developer-only review endpoints
		review := auth.Group("")
		review.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireDeveloper())
		{
			review.GET("/pending-societies", h.Society.PendingIndex)
			review.GET("/pending-societies/export", h.Society.PendingExport)
			review.PUT("/society/:id/approval", h.Society.Approval)
		}
	}

	return router
}
