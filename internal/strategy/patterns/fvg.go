package patterns

import (
	"context"

	"smartMoneyBot/internal/domain"
)

const (
	fvgMinGapFrac = 0.0005 // minimum bar-to-bar gap, 0.05%
	fvgFullGapPct = 1.0    // gap size (in percent) that earns the full gap score
)

// FairValueGap detects an untraded price gap between consecutive bars,
// read as an imbalance price tends to revisit.
type FairValueGap struct {
	cfg Config
}

// NewFairValueGap creates a fair value gap detector.
func NewFairValueGap(cfg Config) *FairValueGap {
	return &FairValueGap{cfg: cfg.WithDefaults()}
}

// Kind returns the pattern kind this detector produces.
func (d *FairValueGap) Kind() domain.PatternKind { return domain.PatternFairValueGap }

// Detect reports a bullish gap when the latest low opens clear above the
// previous high by at least 0.05% on gated volume, and the bearish mirror.
// The gap component of the confidence is capped at one percentage point.
func (d *FairValueGap) Detect(ctx context.Context, candles []*domain.Candle, tc domain.TrendContext) ([]domain.PatternMatch, error) {
	n := len(candles)
	if n < volumeLookback+2 {
		return nil, nil
	}

	prev, curr := candles[n-2], candles[n-1]
	volRatio := volumeRatio(candles, n-1)
	if volRatio < d.cfg.VolumeMultiplier {
		return nil, nil
	}

	// Bullish gap: untraded space between the previous high and latest low.
	if prev.High > 0 && curr.Low > prev.High {
		gapFrac := (curr.Low - prev.High) / prev.High
		if gapFrac >= fvgMinGapFrac {
			gapPct := gapFrac * 100
			if gapPct > fvgFullGapPct {
				gapPct = fvgFullGapPct
			}
			return []domain.PatternMatch{{
				Kind:       domain.PatternFairValueGap,
				Direction:  domain.Buy,
				Confidence: clampConfidence(0.6*gapPct + 0.4*volRatio),
				PriceLow:   prev.High,
				PriceHigh:  curr.Low,
				StartIndex: n - 2,
				EndIndex:   n - 1,
			}}, nil
		}
	}

	// Bearish gap: untraded space between the previous low and latest high.
	if prev.Low > 0 && curr.High < prev.Low {
		gapFrac := (prev.Low - curr.High) / prev.Low
		if gapFrac >= fvgMinGapFrac {
			gapPct := gapFrac * 100
			if gapPct > fvgFullGapPct {
				gapPct = fvgFullGapPct
			}
			return []domain.PatternMatch{{
				Kind:       domain.PatternFairValueGap,
				Direction:  domain.Sell,
				Confidence: clampConfidence(0.6*gapPct + 0.4*volRatio),
				PriceLow:   curr.High,
				PriceHigh:  prev.Low,
				StartIndex: n - 2,
				EndIndex:   n - 1,
			}}, nil
		}
	}

	return nil, nil
}
