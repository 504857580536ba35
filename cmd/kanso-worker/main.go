package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dstmrk/kanso/internal/amqp"
	"github.com/dstmrk/kanso/internal/config"
	applog "github.com/dstmrk/kanso/internal/log"
	"github.com/dstmrk/kanso/internal/sheets"
	gsheet "github.com/dstmrk/kanso/internal/sheets/google"
	"github.com/dstmrk/kanso/internal/sheets/memory"
	"github.com/dstmrk/kanso/internal/sheets/xlsx"
	"github.com/dstmrk/kanso/internal/storage"
	"github.com/dstmrk/kanso/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting kanso-worker")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reader sheets.TableReader
	switch cfg.DataBackend {
	case "sheets":
		reader, err = gsheet.New(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets source initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	case "xlsx":
		reader = xlsx.New(cfg, logger)
		logger.Info("XLSX source initialized", "workbook", cfg.XLSXWorkbookPath)
	case "memory":
		// Seeded demo data: lets the whole refresh pipeline run locally
		// without a spreadsheet or credentials.
		reader = memory.NewWithSampleData()
		logger.Info("In-memory sample source initialized")
	default:
		logger.Error("Unknown data backend", "backend", cfg.DataBackend)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	refreshWorker := worker.NewRefreshWorker(reader, repo)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	err = amqpClient.ConsumeSheetRefresh(ctx, func(msg *amqp.SheetRefreshMessage) error {
		return refreshWorker.HandleRefreshMessage(ctx, msg)
	})
	if err != nil && err != context.Canceled {
		logger.Error("Message consumption stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
