package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/PixelForgeIT-GH/income-hue/internal/amqp"
	"github.com/PixelForgeIT-GH/income-hue/internal/config"
	"github.com/PixelForgeIT-GH/income-hue/internal/export"
	applog "github.com/PixelForgeIT-GH/income-hue/internal/log"
	"github.com/PixelForgeIT-GH/income-hue/internal/services"
	"github.com/PixelForgeIT-GH/income-hue/internal/storage"
	"github.com/PixelForgeIT-GH/income-hue/internal/worker"
)

func main() {
	// Load .env for local development, ignore errors in production.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting import-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var repo storage.Repository
	switch cfg.DataBackend {
	case "sqlite":
		sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		repo = sqliteRepo
	default:
		logger.Warn("Memory backend in the worker holds no shared state, imports stay local")
		repo = storage.NewMemoryRepository()
	}
	defer repo.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Spreadsheet export is optional.
	var exporter worker.ReportExporter
	if cfg.ExportConfigured() {
		sheetsClient, err := export.NewSheetsClient(ctx, export.Config{
			SpreadsheetID:   cfg.SpreadsheetID,
			SheetName:       cfg.ReportSheetName,
			CredentialsJSON: cfg.ServiceAccountJSON,
			CredentialsFile: cfg.ServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Sheets client", "error", err)
			os.Exit(1)
		}
		exporter = sheetsClient
		logger.Info("Sheets export enabled", "spreadsheet_id", cfg.SpreadsheetID, "sheet", cfg.ReportSheetName)
	} else {
		logger.Info("Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPImportQueue, cfg.AMQPExportQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	w := worker.NewImportWorker(repo, services.NewReportService(repo), exporter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeTransactionBatches(gctx, func(msg *amqp.TransactionBatchMessage) error {
			return w.HandleTransactionBatch(gctx, msg)
		})
	})
	g.Go(func() error {
		return amqpClient.ConsumeReportExports(gctx, func(msg *amqp.ReportExportMessage) error {
			return w.HandleReportExport(gctx, msg)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
