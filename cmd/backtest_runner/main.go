package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"smartMoneyBot/config"
	"smartMoneyBot/internal/adapters/logger"
	"smartMoneyBot/internal/adapters/sqlite"
	"smartMoneyBot/internal/strategy/backtesting"
	"smartMoneyBot/internal/utils"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 2. Load candles from CSV (produced by cmd/fetch_klines)
	filename := fmt.Sprintf("data/%s_%s.csv", cfg.Symbol, cfg.Interval)
	candles, err := utils.ReadCandlesFromCSV(filename)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error loading candles", map[string]interface{}{"filename": filename})
		log.Fatalf("Error loading candles from %s: %v", filename, err)
	}
	if len(candles) == 0 {
		log.Fatalf("No candles in %s", filename)
	}
	appLogger.Info(context.Background(), "Loaded candles", map[string]interface{}{
		"filename": filename,
		"count":    len(candles),
	})

	start := candles[0].Timestamp
	end := candles[len(candles)-1].Timestamp

	// 3. Initialize Repository for persisting results
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 4. Parameter grid: targets below 2x the stop never clear the
	// reward:risk gate, so sweep take-profit levels above it.
	tps := []float64{0.17, 0.20, 0.25}

	for _, tp := range tps {
		params := backtesting.DefaultParams()
		params.TakeProfitPct = tp

		sim, err := backtesting.NewSimulator(params, appLogger)
		if err != nil {
			appLogger.Error(context.Background(), err, "Failed to create simulator", map[string]interface{}{"takeProfit": tp})
			continue
		}

		result, err := sim.Run(context.Background(), cfg.Symbol, candles, start, end)
		if err != nil {
			appLogger.Error(context.Background(), err, "Backtest run failed", map[string]interface{}{"takeProfit": tp})
			continue
		}

		appLogger.Info(context.Background(), "Backtest complete", map[string]interface{}{
			"takeProfit":   tp,
			"stopLoss":     params.StopLossPct,
			"totalSignals": result.TotalSignals,
			"winRate":      result.WinRate,
			"profitFactor": result.ProfitFactor,
			"maxDrawdown":  result.MaxDrawdown,
			"sharpeRatio":  result.SharpeRatio,
			"totalReturn":  result.TotalReturn,
		})

		rec, err := result.Record()
		if err != nil {
			appLogger.Error(context.Background(), err, "Failed to build backtest record", map[string]interface{}{"takeProfit": tp})
			continue
		}
		if _, err := repo.CreateBacktest(context.Background(), rec); err != nil {
			appLogger.Error(context.Background(), err, "Failed to persist backtest result", map[string]interface{}{"takeProfit": tp})
		}

		if len(result.Signals) > 0 {
			out := fmt.Sprintf("data/signals_%s_%s_tp%.0f_%s.csv",
				cfg.Symbol, cfg.Interval, tp*100, time.Now().Format("20060102"))
			if err := utils.WriteSignalsToCSV(result.Signals, out); err != nil {
				appLogger.Error(context.Background(), err, "Error writing signals CSV", map[string]interface{}{"filename": out})
			} else {
				appLogger.Info(context.Background(), "Saved signals", map[string]interface{}{
					"filename": out,
					"count":    len(result.Signals),
				})
			}
		}
	}
}
