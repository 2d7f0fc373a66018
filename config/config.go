package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tradecoach/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Identity
	UserID string // Stable user identifier supplied by the session collaborator

	// Ingestion
	ImportPath    string // CSV export to ingest (main pipeline binary)
	ExportCSVPath string // Optional positions CSV output; empty disables export

	// Database
	DBPath string

	// Risk rule book
	RulesPath string // Optional YAML rule-book file; empty uses defaults

	// Market data (optional mark-to-market for crypto tickers)
	QuotesEnabled bool
	APIKey        string
	SecretKey     string

	// Logging
	LogLevel  logger.LogLevel
	LogFormat string // "text" (standard logger) or "json" (zap)
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string

	cfg.UserID = getEnv("USER_ID", "local")
	if cfg.UserID == "" {
		errs = append(errs, "USER_ID must be set")
	}

	cfg.ImportPath = getEnv("IMPORT_PATH", "")
	cfg.ExportCSVPath = getEnv("EXPORT_CSV_PATH", "")

	cfg.DBPath = getEnv("DB_PATH", "./data/tradecoach.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	cfg.RulesPath = getEnv("RULES_PATH", "")

	cfg.QuotesEnabled = getEnvAsBool("QUOTES_ENABLED", false)
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("invalid LOG_FORMAT %q (want text or json)", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
