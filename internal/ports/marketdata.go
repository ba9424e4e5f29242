package ports

import (
	"context"
	"time"

	"smartMoneyBot/internal/domain"
)

// MarketDataProvider defines the interface for retrieving historical candle
// data. The engine itself never talks to an exchange; this abstraction keeps
// the detection core independent of any specific market-data source.
type MarketDataProvider interface {
	// GetCandles retrieves the most recent candles for a symbol, up to limit.
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]*domain.Candle, error)

	// GetCandlesRange retrieves all candles for a symbol in [start, end],
	// in ascending timestamp order.
	GetCandlesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Candle, error)

	// Ping checks connectivity to the data source.
	Ping(ctx context.Context) error
}
