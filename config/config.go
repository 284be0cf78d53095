package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tradeTools/internal/adapters/logger" // Import the logger package for LogLevel
	"tradeTools/internal/report"
)

// Config holds all application configuration.
type Config struct {
	// Binance API (public market data works without keys)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Trade statement
	InputDir   string
	OutputDir  string
	TradesFile string            // Trade export file name inside InputDir
	PeriodType report.PeriodType // Default roll-up for period performance

	// Kline downloader
	SymbolsFile   string
	KlineInterval string
	KlineYear     int

	// Watchlist overlaps
	WatchlistDir       string
	BenchmarkWatchlist string

	// Database (trade archive)
	DBPath       string
	ArchiveTrade bool // Whether the statement run snapshots trades into the archive

	// HTTP report server
	ServerPort int

	// Logging
	LogLevel logger.LogLevel // Use the LogLevel type from the logger adapter
}

var validKlineIntervals = map[string]bool{
	"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true,
}

// TradesPath returns the full path of the trade export file.
func (c *Config) TradesPath() string {
	return filepath.Join(c.InputDir, c.TradesFile)
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Binance API (optional; only public endpoints are used)
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)

	// Trade statement
	cfg.InputDir = getEnv("INPUT_DIR", ".")
	cfg.OutputDir = getEnv("OUTPUT_DIR", ".")
	cfg.TradesFile = getEnv("TRADES_FILE", "OrderClerkTrades.csv")
	if cfg.TradesFile == "" {
		errs = append(errs, "TRADES_FILE must be set")
	}

	periodStr := getEnv("PERIOD_TYPE", string(report.PeriodMonth))
	cfg.PeriodType, err = report.ParsePeriodType(periodStr)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PERIOD_TYPE: %v", err))
	}

	// Kline downloader
	cfg.SymbolsFile = getEnv("SYMBOLS_FILE", "./symbols.txt")
	cfg.KlineInterval = getEnv("KLINE_INTERVAL", "1d")
	if !validKlineIntervals[cfg.KlineInterval] {
		errs = append(errs, fmt.Sprintf("invalid KLINE_INTERVAL %q", cfg.KlineInterval))
	}

	cfg.KlineYear, err = getEnvAsIntRequired("KLINE_YEAR", 2024)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid KLINE_YEAR: %v", err))
	} else if cfg.KlineYear < 2017 {
		errs = append(errs, "KLINE_YEAR must be 2017 or later")
	}

	// Watchlist overlaps
	cfg.WatchlistDir = getEnv("WATCHLIST_DIR", "./watchlists")
	cfg.BenchmarkWatchlist = getEnv("BENCHMARK_WATCHLIST", "SP500")

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/trade_tools.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}
	cfg.ArchiveTrade = getEnvAsBool("ARCHIVE_TRADES", false)

	// HTTP report server
	cfg.ServerPort, err = getEnvAsIntRequired("SERVER_PORT", 5000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SERVER_PORT: %v", err))
	} else if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		errs = append(errs, "SERVER_PORT must be between 1 and 65535")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
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

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
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
