package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/PixelForgeIT-GH/income-hue/internal/amqp"
	"github.com/PixelForgeIT-GH/income-hue/internal/config"
	apphttp "github.com/PixelForgeIT-GH/income-hue/internal/http"
	applog "github.com/PixelForgeIT-GH/income-hue/internal/log"
	"github.com/PixelForgeIT-GH/income-hue/internal/services"
	"github.com/PixelForgeIT-GH/income-hue/internal/storage"
)

func main() {
	// Load .env for local development, ignore errors in production.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

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
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		repo = storage.NewMemoryRepository()
		logger.Info("Initialized memory backend")
	}
	defer repo.Close()

	// AMQP is optional: without a broker, writes still work and export
	// triggers are skipped.
	var publisher services.ExportPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPImportQueue, cfg.AMQPExportQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, export triggers disabled", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	streams := services.NewStreamService(repo, publisher)
	reports := services.NewReportService(repo)

	srv := apphttp.NewServer(":"+cfg.Port, streams, reports, apphttp.Options{
		CacheSize:          cfg.CacheSize,
		CacheTTL:           cfg.CacheTTL,
		CacheCleanInterval: cfg.CacheCleanInterval,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

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

	logger.Info("Starting income-hue server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
