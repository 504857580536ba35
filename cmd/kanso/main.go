package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dstmrk/kanso/internal/amqp"
	"github.com/dstmrk/kanso/internal/cache"
	"github.com/dstmrk/kanso/internal/config"
	apphttp "github.com/dstmrk/kanso/internal/http"
	applog "github.com/dstmrk/kanso/internal/log"
	"github.com/dstmrk/kanso/internal/services"
	"github.com/dstmrk/kanso/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// AMQP is optional: without it the refresh endpoint reports unavailable
	// and the dashboard serves whatever snapshots exist.
	var publisher services.RefreshPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, refresh requests disabled", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	dashboard := services.NewDashboardService(
		repo, publisher, cfg.Currency, cfg.CacheSize, cfg.CacheTTL, logger)

	// Periodic sweep so expired dashboard entries don't linger until the
	// next access to the same key.
	cacheManager := cache.NewManager()
	dashboard.RegisterCaches(cacheManager)
	cacheManager.StartCleanup(cfg.CacheTTL)
	defer cacheManager.Stop()

	srv := apphttp.NewServer(":"+cfg.Port, dashboard, cfg.UserKey, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting kanso server", "port", cfg.Port, "user", cfg.UserKey, "currency", cfg.Currency)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
