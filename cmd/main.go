package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/technotes/backend/docs"
	"github.com/technotes/backend/internal/config"
	"github.com/technotes/backend/internal/handlers"
	"github.com/technotes/backend/internal/logger"
	"github.com/technotes/backend/internal/middlewares"
	"github.com/technotes/backend/internal/repositories"
	"github.com/technotes/backend/internal/services"
	"github.com/technotes/backend/internal/token"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title techNotes API
// @version 1.0
// @description REST backend for the techNotes app: users and notes CRUD over MongoDB with JWT auth.

// @license.name MIT

// @host localhost:3500
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting techNotes backend")

	// Event log files (request log, error log, mongo error log)
	events := logger.NewEventLogger(cfg.Logging.Dir, logger.Logger)
	defer events.Close()

	// Connect to MongoDB
	client, err := repositories.Connect(context.Background(), cfg.Database.URI)
	if err != nil {
		events.Log(fmt.Sprintf("%v", err), "mongoErrLog.log")
		events.Close()
		logger.Logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	logger.Logger.Info("Connected to MongoDB", zap.String("database", cfg.Database.DBName))

	db := client.Database(cfg.Database.DBName)

	// Initialize JWT token generator
	tokenGenerator := token.NewGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	noteRepo := repositories.NewNoteRepository(db, logger.Logger)

	// Initialize services
	userService := services.NewUserService(userRepo, noteRepo, logger.Logger, cfg.Hashing.BcryptCost)
	noteService := services.NewNoteService(noteRepo, userRepo, logger.Logger)
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	noteHandler := handlers.NewNoteHandler(noteService, logger.Logger)
	loginLimiter := httprate.LimitByIP(5, time.Minute)
	authHandler := handlers.NewAuthHandler(authService, logger.Logger, cfg.JWT.RefreshTokenExpiry, loginLimiter)
	rootHandler := handlers.NewRootHandler("public", "views", logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger, events))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger, events))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Register routes
	authHandler.RegisterRoutes(r)
	userHandler.RegisterRoutes(r)
	noteHandler.RegisterRoutes(r)
	rootHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
