package patterns

import (
	"context"

	"smartMoneyBot/internal/domain"
)

const (
	sweepLookback     = 15     // bars defining the recent support/resistance level
	sweepMinPierce    = 0.0005 // minimum fractional pierce through the level, 0.05%
	sweepVolumeMult   = 1.8    // sweeps demand a stronger volume spike than breaks
	sweepNeutralClose = 0.5    // rejection fallback for a zero-range bar
)

// LiquiditySweep detects a brief spike through a recent support or
// resistance level that is rejected back across it, read as a stop hunt.
type LiquiditySweep struct {
	cfg Config
}

// NewLiquiditySweep creates a liquidity sweep detector.
func NewLiquiditySweep(cfg Config) *LiquiditySweep {
	return &LiquiditySweep{cfg: cfg.WithDefaults()}
}

// Kind returns the pattern kind this detector produces.
func (d *LiquiditySweep) Kind() domain.PatternKind { return domain.PatternLiquiditySweep }

// Detect reports a bullish sweep when the latest low pierces the 15-bar
// support by at least 0.05% on a 1.8x volume spike and the close rejects
// back above the level; resistance sweeps mirror it on the sell side.
func (d *LiquiditySweep) Detect(ctx context.Context, candles []*domain.Candle, tc domain.TrendContext) ([]domain.PatternMatch, error) {
	n := len(candles)
	if n < sweepLookback+2 || n < volumeLookback+2 {
		return nil, nil
	}

	volRatio := volumeRatio(candles, n-1)
	if volRatio < sweepVolumeMult {
		return nil, nil
	}

	latest := candles[n-1]
	support, resistance := candles[n-1-sweepLookback].Low, candles[n-1-sweepLookback].High
	for i := n - sweepLookback; i < n-1; i++ {
		if candles[i].Low < support {
			support = candles[i].Low
		}
		if candles[i].High > resistance {
			resistance = candles[i].High
		}
	}

	// Close position within the bar range measures how hard price rejected.
	rejection := sweepNeutralClose
	if latest.High > latest.Low {
		rejection = (latest.Close - latest.Low) / (latest.High - latest.Low)
	}

	var matches []domain.PatternMatch

	if support > 0 {
		pierceFrac := (support - latest.Low) / support
		if pierceFrac >= sweepMinPierce && latest.Close > support {
			sweepPct := pierceFrac * 100
			matches = append(matches, domain.PatternMatch{
				Kind:       domain.PatternLiquiditySweep,
				Direction:  domain.Buy,
				Confidence: clampConfidence(0.4*sweepPct + 0.4*rejection + 0.2*volRatio),
				PriceLow:   latest.Low,
				PriceHigh:  support,
				StartIndex: n - 1 - sweepLookback,
				EndIndex:   n - 1,
			})
		}
	}

	if resistance > 0 {
		pierceFrac := (latest.High - resistance) / resistance
		if pierceFrac >= sweepMinPierce && latest.Close < resistance {
			sweepPct := pierceFrac * 100
			matches = append(matches, domain.PatternMatch{
				Kind:       domain.PatternLiquiditySweep,
				Direction:  domain.Sell,
				Confidence: clampConfidence(0.4*sweepPct + (0.4*(1-rejection)) + 0.2*volRatio),
				PriceLow:   resistance,
				PriceHigh:  latest.High,
				StartIndex: n - 1 - sweepLookback,
				EndIndex:   n - 1,
			})
		}
	}

	return matches, nil
}
