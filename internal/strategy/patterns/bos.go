package patterns

import (
	"context"
	"fmt"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
	"smartMoneyBot/internal/strategy/swing"
)

// BOS detects a Break of Structure: the latest bar closing beyond the most
// recent swing level with elevated volume, read as trend continuation.
type BOS struct {
	cfg Config
}

// NewBOS creates a BOS detector.
func NewBOS(cfg Config) *BOS {
	return &BOS{cfg: cfg.WithDefaults()}
}

// Kind returns the pattern kind this detector produces.
func (d *BOS) Kind() domain.PatternKind { return domain.PatternBOS }

// Detect reports a bullish BOS when the latest high exceeds the prior swing
// high by at least the breakout threshold on volume above the gate, and the
// symmetric bearish case against swing lows. The swing reference is computed
// over the window excluding the triggering bar so a breakout cannot become
// its own reference level.
func (d *BOS) Detect(ctx context.Context, candles []*domain.Candle, tc domain.TrendContext) ([]domain.PatternMatch, error) {
	n := len(candles)
	if n < 2*d.cfg.SwingRadius+2 || n < volumeLookback+2 {
		return nil, nil
	}

	levels, err := swing.Detect(candles[:n-1], d.cfg.SwingRadius)
	if err != nil {
		return nil, fmt.Errorf("%w: swing detection for BOS: %v", ports.ErrDetectionFailed, err)
	}

	latest := candles[n-1]
	volRatio := volumeRatio(candles, n-1)
	if volRatio < d.cfg.VolumeMultiplier {
		return nil, nil
	}

	var matches []domain.PatternMatch

	if highs := swing.Highs(levels); len(highs) > 0 {
		ref := highs[len(highs)-1]
		if ref.Price > 0 {
			breakFrac := (latest.High - ref.Price) / ref.Price
			if breakFrac >= d.cfg.BreakoutThreshold {
				breakPct := breakFrac * 100
				matches = append(matches, domain.PatternMatch{
					Kind:       domain.PatternBOS,
					Direction:  domain.Buy,
					Confidence: clampConfidence(breakPct*10 + volRatio*0.1),
					PriceLow:   ref.Price,
					PriceHigh:  latest.High,
					StartIndex: ref.Index,
					EndIndex:   n - 1,
				})
			}
		}
	}

	if lows := swing.Lows(levels); len(lows) > 0 {
		ref := lows[len(lows)-1]
		if ref.Price > 0 {
			breakFrac := (ref.Price - latest.Low) / ref.Price
			if breakFrac >= d.cfg.BreakoutThreshold {
				breakPct := breakFrac * 100
				matches = append(matches, domain.PatternMatch{
					Kind:       domain.PatternBOS,
					Direction:  domain.Sell,
					Confidence: clampConfidence(breakPct*10 + volRatio*0.1),
					PriceLow:   latest.Low,
					PriceHigh:  ref.Price,
					StartIndex: ref.Index,
					EndIndex:   n - 1,
				})
			}
		}
	}

	return matches, nil
}
