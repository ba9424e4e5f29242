// Package trend derives a coarse trend context from moving averages and
// recent swing structure.
package trend

import (
	"context"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
	"smartMoneyBot/internal/strategy/indicators"
	"smartMoneyBot/internal/strategy/swing"
)

const (
	shortMAPeriod = 20
	longMAPeriod  = 50
	recentSwings  = 3
)

// Builder computes TrendContext snapshots from candle windows.
type Builder struct {
	swingRadius int
	logger      ports.Logger
}

// NewBuilder creates a trend context builder. A non-positive swingRadius
// falls back to the swing package default.
func NewBuilder(swingRadius int, logger ports.Logger) *Builder {
	if swingRadius <= 0 {
		swingRadius = swing.DefaultRadius
	}
	return &Builder{swingRadius: swingRadius, logger: logger}
}

// Build computes the trend context at the latest candle. With fewer than two
// candles it returns a neutral up-trend context rather than failing; the long
// MA degrades gracefully to the available bars when fewer than 50 exist.
func (b *Builder) Build(ctx context.Context, candles []*domain.Candle) domain.TrendContext {
	if len(candles) < 2 {
		tc := domain.TrendContext{Direction: domain.TrendUp}
		if len(candles) == 1 {
			tc.CurrentPrice = candles[0].Close
			tc.ShortMA = candles[0].Close
			tc.LongMA = candles[0].Close
		}
		return tc
	}

	price := candles[len(candles)-1].Close

	shortPeriod := shortMAPeriod
	if len(candles) < shortPeriod {
		shortPeriod = len(candles)
	}
	longPeriod := longMAPeriod
	if len(candles) < longPeriod {
		longPeriod = len(candles)
	}

	shortMA, err := indicators.SMA(candles, shortPeriod)
	if err != nil {
		// Unreachable after the clamps above, but a neutral context is the
		// contract either way.
		shortMA = price
	}
	longMA, err := indicators.SMA(candles, longPeriod)
	if err != nil {
		longMA = price
	}

	tc := domain.TrendContext{
		CurrentPrice: price,
		ShortMA:      shortMA,
		LongMA:       longMA,
		Direction:    domain.TrendDown,
	}
	if shortMA >= longMA {
		tc.Direction = domain.TrendUp
	}
	if shortMA != 0 {
		strength := (price - shortMA) / shortMA
		if strength < 0 {
			strength = -strength
		}
		tc.Strength = strength
	}

	levels, err := swing.Detect(candles, b.swingRadius)
	if err != nil {
		// Too few bars for swing detection; the MA fields still describe
		// the trend, so keep going with empty swing lists.
		if b.logger != nil {
			b.logger.Debug(ctx, "Swing detection skipped", map[string]interface{}{"bars": len(candles), "radius": b.swingRadius})
		}
		return tc
	}
	tc.SwingHighs = swing.LastN(swing.Highs(levels), recentSwings)
	tc.SwingLows = swing.LastN(swing.Lows(levels), recentSwings)
	return tc
}
