package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"smartMoneyBot/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Binance API (kline endpoints are public; keys may stay empty)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Analysis target
	Symbol   string
	Interval string // bar interval for scans and backtests (e.g., "1d")

	// Strategy Parameters
	TakeProfitPct     float64 // target distance, e.g. 0.15 for 15%
	StopLossPct       float64 // stop distance, e.g. 0.08 for 8%
	MinRiskReward     float64 // reward:risk gate, e.g. 2.0
	SwingRadius       int     // swing detection half-window, e.g. 3
	BreakoutThreshold float64 // minimum fractional level break, e.g. 0.001
	VolumeMultiplier  float64 // baseline volume gate, e.g. 1.2

	// Scanner
	ScanLookbackBars int // candles fetched per scan, e.g. 200

	// Database
	DBPath string

	// Logging
	LogLevel logger.LogLevel // Use the LogLevel type from the logger adapter
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Binance API
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", true) // Default to testnet for safety

	// Analysis target
	cfg.Symbol = getEnv("SYMBOL", "ETHUSDT")
	if cfg.Symbol == "" {
		errs = append(errs, "SYMBOL must be set")
	}
	cfg.Interval = getEnv("INTERVAL", "1d")
	if cfg.Interval == "" {
		errs = append(errs, "INTERVAL must be set")
	}

	// Strategy Parameters
	cfg.TakeProfitPct, err = getEnvAsFloatRequired("TAKE_PROFIT_PCT", 0.15)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TAKE_PROFIT_PCT: %v", err))
	} else if cfg.TakeProfitPct <= 0 {
		errs = append(errs, "TAKE_PROFIT_PCT must be positive")
	}

	cfg.StopLossPct, err = getEnvAsFloatRequired("STOP_LOSS_PCT", 0.08)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid STOP_LOSS_PCT: %v", err))
	} else if cfg.StopLossPct <= 0 || cfg.StopLossPct >= 1.0 {
		errs = append(errs, "STOP_LOSS_PCT must be between 0.0 and 1.0 (exclusive)")
	}

	cfg.MinRiskReward, err = getEnvAsFloatRequired("MIN_RISK_REWARD", 2.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MIN_RISK_REWARD: %v", err))
	} else if cfg.MinRiskReward <= 0 {
		errs = append(errs, "MIN_RISK_REWARD must be positive")
	}

	cfg.SwingRadius = getEnvAsInt("SWING_RADIUS", 3)
	if cfg.SwingRadius <= 0 {
		errs = append(errs, "SWING_RADIUS must be positive")
	}

	cfg.BreakoutThreshold, err = getEnvAsFloatRequired("BREAKOUT_THRESHOLD", 0.001)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid BREAKOUT_THRESHOLD: %v", err))
	} else if cfg.BreakoutThreshold <= 0 {
		errs = append(errs, "BREAKOUT_THRESHOLD must be positive")
	}

	cfg.VolumeMultiplier, err = getEnvAsFloatRequired("VOLUME_MULTIPLIER", 1.2)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid VOLUME_MULTIPLIER: %v", err))
	} else if cfg.VolumeMultiplier <= 0 {
		errs = append(errs, "VOLUME_MULTIPLIER must be positive")
	}

	// Scanner
	cfg.ScanLookbackBars = getEnvAsInt("SCAN_LOOKBACK_BARS", 200)
	if cfg.ScanLookbackBars < 50 {
		errs = append(errs, "SCAN_LOOKBACK_BARS must be at least 50")
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/smart_money.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
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

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// For non-required fields the default is acceptable.
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
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
