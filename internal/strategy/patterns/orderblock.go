package patterns

import (
	"context"

	"smartMoneyBot/internal/domain"
)

const (
	obBodyMinFrac     = 0.02 // impulse body must be at least 2% of its open
	obVolumeMult      = 1.5  // impulse volume gate vs the 10-bar average
	obConsolidation   = 3    // bars of consolidation after the impulse
	obConsolidateFrac = 0.01 // consolidation range must stay under 1% of its low
)

// OrderBlock detects a high-volume directional bar followed by tight
// consolidation, read as an institutional accumulation zone.
type OrderBlock struct {
	cfg Config
}

// NewOrderBlock creates an order block detector.
func NewOrderBlock(cfg Config) *OrderBlock {
	return &OrderBlock{cfg: cfg.WithDefaults()}
}

// Kind returns the pattern kind this detector produces.
func (d *OrderBlock) Kind() domain.PatternKind { return domain.PatternOrderBlock }

// Detect looks for an impulse bar with a body of at least 2% of its open and
// volume 1.5x the rolling average, followed by exactly the configured number
// of consolidation bars reaching the window end whose combined range stays
// under 1% of its low. Confidence weighs consolidation tightness over volume.
func (d *OrderBlock) Detect(ctx context.Context, candles []*domain.Candle, tc domain.TrendContext) ([]domain.PatternMatch, error) {
	n := len(candles)
	impulseIdx := n - 1 - obConsolidation
	if impulseIdx < volumeLookback {
		return nil, nil
	}

	impulse := candles[impulseIdx]
	if impulse.Open <= 0 || impulse.Body() < impulse.Open*obBodyMinFrac {
		return nil, nil
	}

	volRatio := volumeRatio(candles, impulseIdx)
	if volRatio < obVolumeMult {
		return nil, nil
	}

	// Consolidation range across the bars after the impulse.
	maxHigh, minLow := candles[impulseIdx+1].High, candles[impulseIdx+1].Low
	for i := impulseIdx + 2; i < n; i++ {
		if candles[i].High > maxHigh {
			maxHigh = candles[i].High
		}
		if candles[i].Low < minLow {
			minLow = candles[i].Low
		}
	}
	if minLow <= 0 {
		return nil, nil
	}
	rangeFrac := (maxHigh - minLow) / minLow
	if rangeFrac >= obConsolidateFrac {
		return nil, nil
	}

	tightness := 1 - rangeFrac/obConsolidateFrac
	direction := domain.Sell
	if impulse.IsBullish() {
		direction = domain.Buy
	}

	return []domain.PatternMatch{{
		Kind:       domain.PatternOrderBlock,
		Direction:  direction,
		Confidence: clampConfidence(0.3*volRatio + 0.7*tightness),
		PriceLow:   impulse.Low,
		PriceHigh:  impulse.High,
		StartIndex: impulseIdx,
		EndIndex:   n - 1,
	}}, nil
}
