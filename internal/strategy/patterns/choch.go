package patterns

import (
	"context"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/strategy/indicators"
)

const (
	chochShortPeriod = 20
	chochLongPeriod  = 50
	chochReversalMin = 0.002 // minimum fractional reversal from the 10-bar extreme
	chochExtremeBars = 10
)

// CHoCH detects a Change of Character: a short/long moving-average crossover
// on the latest bar combined with a sharp reversal from the recent extreme,
// read as a potential trend change.
type CHoCH struct {
	cfg Config
}

// NewCHoCH creates a CHoCH detector.
func NewCHoCH(cfg Config) *CHoCH {
	return &CHoCH{cfg: cfg.WithDefaults()}
}

// Kind returns the pattern kind this detector produces.
func (d *CHoCH) Kind() domain.PatternKind { return domain.PatternCHoCH }

// Detect reports a bullish CHoCH when the short MA crosses above the long MA
// on the latest bar, the close has reversed at least 0.2% off the recent
// 10-bar low, and volume clears the gate; the bearish case mirrors it.
func (d *CHoCH) Detect(ctx context.Context, candles []*domain.Candle, tc domain.TrendContext) ([]domain.PatternMatch, error) {
	n := len(candles)
	if n < chochLongPeriod+1 {
		return nil, nil
	}

	shortNow, err := indicators.SMA(candles, chochShortPeriod)
	if err != nil {
		return nil, nil
	}
	longNow, err := indicators.SMA(candles, chochLongPeriod)
	if err != nil {
		return nil, nil
	}
	shortPrev, err := indicators.SMA(candles[:n-1], chochShortPeriod)
	if err != nil {
		return nil, nil
	}
	longPrev, err := indicators.SMA(candles[:n-1], chochLongPeriod)
	if err != nil {
		return nil, nil
	}

	crossedUp := shortPrev <= longPrev && shortNow > longNow
	crossedDown := shortPrev >= longPrev && shortNow < longNow
	if !crossedUp && !crossedDown {
		return nil, nil
	}

	volRatio := volumeRatio(candles, n-1)
	if volRatio < d.cfg.VolumeMultiplier {
		return nil, nil
	}

	latest := candles[n-1]
	low10, high10 := latest.Low, latest.High
	for i := n - chochExtremeBars; i < n; i++ {
		if candles[i].Low < low10 {
			low10 = candles[i].Low
		}
		if candles[i].High > high10 {
			high10 = candles[i].High
		}
	}

	var matches []domain.PatternMatch

	if crossedUp && low10 > 0 {
		revFrac := (latest.Close - low10) / low10
		if revFrac >= chochReversalMin {
			revPct := revFrac * 100
			matches = append(matches, domain.PatternMatch{
				Kind:       domain.PatternCHoCH,
				Direction:  domain.Buy,
				Confidence: clampConfidence(revPct*20 + volRatio*0.1),
				PriceLow:   low10,
				PriceHigh:  latest.Close,
				StartIndex: n - chochExtremeBars,
				EndIndex:   n - 1,
			})
		}
	}

	if crossedDown && high10 > 0 {
		revFrac := (high10 - latest.Close) / high10
		if revFrac >= chochReversalMin {
			revPct := revFrac * 100
			matches = append(matches, domain.PatternMatch{
				Kind:       domain.PatternCHoCH,
				Direction:  domain.Sell,
				Confidence: clampConfidence(revPct*20 + volRatio*0.1),
				PriceLow:   latest.Close,
				PriceHigh:  high10,
				StartIndex: n - chochExtremeBars,
				EndIndex:   n - 1,
			})
		}
	}

	return matches, nil
}
