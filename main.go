package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up

	"smartMoneyBot/config"
	"smartMoneyBot/internal/adapters/binanceclient"
	"smartMoneyBot/internal/adapters/logger"
	"smartMoneyBot/internal/adapters/sqlite"
	"smartMoneyBot/internal/app"
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

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err) // Also log to stderr
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()
	appLogger.Info(context.Background(), "Database repository initialized")

	// 4. Initialize Exchange Client (Binance Adapter)
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

	// 5. Initialize Scanner Service
	scanner, err := app.NewScannerService(cfg, appLogger, binanceClient, repo)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize scanner service")
		log.Fatalf("FATAL: Failed to initialize scanner service: %v", err)
	}
	appLogger.Info(context.Background(), "Scanner service initialized")

	// 6. Run a single scan over the latest history
	sigs, err := scanner.ScanOnce(context.Background())
	if err != nil {
		appLogger.Error(context.Background(), err, "Scan exited with error")
		log.Fatalf("FATAL: Scan exited with error: %v", err)
	}

	for _, sig := range sigs {
		appLogger.Info(context.Background(), "Signal", map[string]interface{}{
			"id":         sig.ID,
			"symbol":     sig.Symbol,
			"direction":  sig.Direction,
			"entry":      sig.EntryPrice,
			"target":     sig.TargetPrice,
			"stop":       sig.StopLoss,
			"confidence": sig.ConfidenceScore,
			"riskReward": sig.RiskReward,
		})
	}

	appLogger.Info(context.Background(), "Application finished gracefully.")
}
