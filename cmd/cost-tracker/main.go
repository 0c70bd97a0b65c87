package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cost-tracker/internal/api"
	"cost-tracker/internal/api/handlers"
	"cost-tracker/internal/repository"
	"cost-tracker/internal/service"
	"cost-tracker/pkg/auth"
	"cost-tracker/pkg/config"
	"cost-tracker/pkg/logger"
	"cost-tracker/pkg/postgres"
	"cost-tracker/pkg/telemetry"

	"go.uber.org/zap"
)

// @title Cost Tracker API
// @version 1.0
// @description Personal expense tracking over a star schema of categories, vendors and payment methods

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting cost tracker")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.ApplySchema(&cfg.Database, false, appLogger); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	store := repository.NewStore(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.Expiration)
	if cfg.JWT.SecretKey == config.DefaultJWTSecret {
		appLogger.Warn("JWT_SECRET is not set, tokens are signed with the default key")
	}

	// Initialize services
	authService := service.NewAuthService(cfg.Admin, jwtManager, appLogger)
	expenseService := service.NewExpenseService(store, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)

	metrics, err := telemetry.NewMetrics("cost-tracker")
	if err != nil {
		appLogger.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer metrics.Shutdown(context.Background())

	app := api.SetupRouter(cfg, authHandler, expenseHandler, jwtManager, metrics, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
