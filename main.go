package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus/config"
	"campus/database"
	"campus/routers"
	"campus/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.DotEnvLoaded {
		logger.Warn("No .env file found, using environment variables")
	}

	db, err := database.ConnectDb(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to the database", zap.Error(err))
	}

	app, err := routers.NewApp(cfg, db, logger)
	if err != nil {
		logger.Fatal("Failed to set up server", zap.Error(err))
	}

	// Shut down cleanly on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server is running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}
