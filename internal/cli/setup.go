// Package cli provides the cobra command tree and shared initialization
// for the purchases binaries.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"purchases/internal/amqp"
	"purchases/internal/backend"
	"purchases/internal/config"
	applog "purchases/internal/log"
	"purchases/internal/services"
)

// SetupLogger initializes structured logging and sets it as the default
// logger.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentCLI,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored, the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration, applying any CLI override,
// and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if flagBonusRate >= 0 {
		cfg.BonusRatePercent = flagBonusRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// OpenService builds the ledger service from configuration: record
// store plus an optional AMQP client. The caller owns Close.
func OpenService(cfg *config.Config, logger *applog.Logger) (*services.LedgerService, error) {
	st, err := backend.Open(cfg, logger.Logger)
	if err != nil {
		return nil, err
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Events are best effort; the ledger works without them.
			logger.Warn("Failed to initialize AMQP client, continuing without sync events", "error", err)
			amqpClient = nil
		} else {
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	return services.NewLedgerService(st, amqpClient), nil
}
