// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Storage backend: csv, sqlite or memory
	StoreBackend string
	CSVPath      string
	SQLiteDBPath string

	// Ledger
	BonusRatePercent float64

	// AMQP (optional; empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Mirror worker
	GoogleSpreadsheetID string
	GoogleSheetName     string
	ExportPath          string
	ResyncInterval      time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8082"),

		StoreBackend: getEnv("STORE_BACKEND", "csv"),
		CSVPath:      getEnv("CSV_PATH", "./data/purchases.csv"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/purchases.db"),

		BonusRatePercent: getEnvFloat("BONUS_RATE_PERCENT", 0),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "purchases"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_sync"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Purchases"),
		ExportPath:          getEnv("EXPORT_PATH", ""),
		ResyncInterval:      getEnvDuration("RESYNC_INTERVAL", 5*time.Minute),
	}
}

// Validate checks the configuration and returns one error naming every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case "csv":
		if strings.TrimSpace(c.CSVPath) == "" {
			problems = append(problems, "CSV path cannot be empty when using csv backend")
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					problems = append(problems, fmt.Sprintf("cannot create SQLite database directory %q: %v", dir, err))
				}
			}
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be one of [csv sqlite memory]", c.StoreBackend))
	}

	// The engine imposes no ceiling on the rate; the configured default
	// is a UI-level value and is held to the form's 0..100 range.
	if c.BonusRatePercent < 0 || c.BonusRatePercent > 100 {
		problems = append(problems, fmt.Sprintf("invalid bonus rate %v: must be between 0 and 100", c.BonusRatePercent))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSpreadsheetID != "" && strings.TrimSpace(c.GoogleSheetName) == "" {
		problems = append(problems, "Google sheet name cannot be empty when a spreadsheet ID is provided")
	}
	if c.ResyncInterval <= 0 {
		problems = append(problems, fmt.Sprintf("invalid resync interval %v: must be positive", c.ResyncInterval))
	}

	if len(problems) > 0 {
		return errors.New("configuration errors: " + strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
