package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/spotlight/internal/catalog"
	"github.com/joshua-takyi/spotlight/internal/config"
	"github.com/joshua-takyi/spotlight/internal/connect"
	"github.com/joshua-takyi/spotlight/internal/container"
	"github.com/joshua-takyi/spotlight/internal/helpers"
	"github.com/joshua-takyi/spotlight/internal/models"
	"github.com/joshua-takyi/spotlight/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting Spotlight API server", "environment", cfg.Environment)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cld, err := connect.CloudinaryCredentials(cfg)
	if err != nil {
		logger.Error("Failed to connect to Cloudinary", "error", err)
		os.Exit(1)
	}

	// Initialize database connections
	supaClient, err := connect.InitSupabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to Supabase", "error", err)
		os.Exit(1)
	}

	mongoClient, err := connect.MongoDBConnect(cfg)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBDatabase)

	if err := models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase).EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to create indexes", "error", err)
	}

	redisClient, err := connect.RedisConnect(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, listings will not be cached", "error", err)
	}

	deps := container.Deps{
		Cloudinary:     cld,
		SupabaseClient: supaClient,
		MongoDBClient:  mongoClient,
		Cache:          redisClient,
	}

	if cfg.EventsSeedFile != "" {
		cat, err := catalog.Load(cfg.EventsSeedFile)
		if err != nil {
			logger.Error("Failed to load events catalog", "file", cfg.EventsSeedFile, "error", err)
			os.Exit(1)
		}
		deps.Posts = cat
		logger.Info("Serving posts from static catalog", "file", cfg.EventsSeedFile, "posts", cat.Len())
	}

	if supaClient != nil {
		validator, closeValidator := tokenValidator(ctx, cfg, logger)
		if validator != nil {
			deps.Validator = validator
			defer closeValidator()
		}
	}

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, deps)

	// Setup routes
	router := routes.SetupRoutes(appContainer)

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
		logger.Info("Server starting", "port", cfg.Port, "auth", appContainer.Auth.Enabled())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Close connections
	connect.Disconnect()
	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}
	if err := connect.RedisDisconnect(); err != nil {
		logger.Error("Error disconnecting from Redis", "error", err)
	}

	logger.Info("Server exited")
}

// tokenValidator prefers the shared JWT secret when set and otherwise
// verifies tokens against the provider's JWKS. It returns nil when neither
// is usable, which leaves protected routes unavailable.
func tokenValidator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (helpers.TokenValidator, func()) {
	if cfg.SupabaseJWTSecret != "" {
		return helpers.NewHMACValidator(cfg.SupabaseJWTSecret), func() {}
	}

	jwks, err := helpers.NewJWKSValidator(ctx, cfg.SupabaseURL, func(err error) {
		logger.Warn("JWKS refresh failed", "error", err)
	})
	if err != nil {
		logger.Error("Failed to load JWKS, protected routes disabled", "error", err)
		return nil, func() {}
	}
	return jwks, jwks.Close
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		})
	}

	return slog.New(handler)
}
