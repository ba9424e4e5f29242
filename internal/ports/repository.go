package ports

import (
	"context"
	"time"

	"smartMoneyBot/internal/domain"
)

// SignalRepository defines the interface for storing and retrieving
// synthesized trading signals.
type SignalRepository interface {
	// CreateSignal saves a new signal and returns its row ID.
	CreateSignal(ctx context.Context, sig *domain.Signal) (int64, error)
	// FindSignalsBySymbol retrieves the most recent signals for a symbol, up to a limit.
	FindSignalsBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Signal, error)
	// FindActiveSignals retrieves signals whose validity window covers now.
	FindActiveSignals(ctx context.Context, symbol string, now time.Time) ([]*domain.Signal, error)
}

// BacktestRepository defines the interface for storing backtest run results.
// A BacktestRecord is the flat, persistable view of one completed run.
type BacktestRepository interface {
	// CreateBacktest saves a completed run and returns its row ID.
	CreateBacktest(ctx context.Context, rec *BacktestRecord) (int64, error)
	// FindBacktestsBySymbol retrieves the most recent runs for a symbol, up to a limit.
	FindBacktestsBySymbol(ctx context.Context, symbol string, limit int) ([]*BacktestRecord, error)
}

// BacktestRecord is the persistence shape of a backtest result.
type BacktestRecord struct {
	ID           int64
	Symbol       string
	StartTime    time.Time
	EndTime      time.Time
	TotalSignals int
	WinRate      float64
	ProfitFactor float64 // stored as 0 when the run had no losing signals
	MaxDrawdown  float64
	SharpeRatio  float64
	TotalReturn  float64
	ParamsJSON   string // run parameters, serialized for reproducibility
	CreatedAt    time.Time
}
