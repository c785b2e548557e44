package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"purchases/internal/amqp"
	"purchases/internal/backend"
	"purchases/internal/config"
	"purchases/internal/export"
	applog "purchases/internal/log"
	"purchases/internal/mirror"
	"purchases/internal/mirror/sheets"
)

func main() {
	// Load .env for local development (ignore errors in production).
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentMirror,
	})
	applog.SetDefault(logger)

	logger.Info("Starting purchases-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	st, err := backend.Open(cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to open record store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var targets []mirror.Target
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := sheets.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		targets = append(targets, sheetsClient)
		logger.Info("Google Sheets mirror enabled",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	}
	if cfg.ExportPath != "" {
		targets = append(targets, export.NewTarget(cfg.ExportPath))
		logger.Info("XLSX mirror enabled", "path", cfg.ExportPath)
	}
	if len(targets) == 0 {
		logger.Error("No mirror targets configured (set GOOGLE_SPREADSHEET_ID or EXPORT_PATH)")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	worker := mirror.NewSyncWorker(st, targets, cfg.BonusRatePercent)

	// Mirror the current state on startup to cover messages missed
	// while the worker was down.
	if err := worker.Resync(ctx); err != nil {
		logger.Error("Startup resync failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeLedgerSync(ctx, func(msg *amqp.LedgerSyncMessage) error {
			return worker.HandleSyncMessage(ctx, msg)
		})
	})
	g.Go(func() error {
		return worker.RunPeriodic(ctx, cfg.ResyncInterval)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
