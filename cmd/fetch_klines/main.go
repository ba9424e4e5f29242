package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"smartMoneyBot/config"
	"smartMoneyBot/internal/adapters/binanceclient"
	"smartMoneyBot/internal/adapters/logger"
	"smartMoneyBot/internal/utils"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Exchange Client (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	appLogger.Info(context.Background(), "Binance client initialized")

	symbol := cfg.Symbol
	interval := cfg.Interval
	end := time.Now()
	start := end.AddDate(-1, 0, 0) // 1 year ago

	fmt.Printf("Fetching candles for %s %s from %s to %s...\n", symbol, interval, start, end)
	candles, err := binanceClient.GetCandlesRange(context.Background(), symbol, interval, start, end)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error fetching candles")
		log.Fatalf("Error fetching candles: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched candles", map[string]interface{}{"count": len(candles)})

	// Stable name so cmd/backtest_runner can find the latest export.
	filename := fmt.Sprintf("data/%s_%s.csv", symbol, interval)
	err = utils.WriteCandlesToCSV(candles, filename)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(context.Background(), "Saved to", map[string]interface{}{"filename": filename})
}
