// Package patterns implements the structural smart-money pattern detectors:
// break of structure, change of character, order blocks, fair value gaps and
// liquidity sweeps. Every detector is stateless and idempotent: identical
// input windows produce identical match lists.
package patterns

import (
	"context"

	"smartMoneyBot/internal/domain"
)

// MaxConfidence caps every detector's confidence score.
const MaxConfidence = 0.95

// volumeLookback is the rolling window used for average-volume gates.
const volumeLookback = 10

// Config holds the shared detector thresholds. The zero value is unusable;
// call WithDefaults or fill every field.
type Config struct {
	SwingRadius       int     // swing detection half-window, default 3
	BreakoutThreshold float64 // minimum fractional break of a level, default 0.001 (0.1%)
	VolumeMultiplier  float64 // baseline volume gate vs the 10-bar average, default 1.2
}

// WithDefaults fills unset fields with the default thresholds.
func (c Config) WithDefaults() Config {
	if c.SwingRadius <= 0 {
		c.SwingRadius = 3
	}
	if c.BreakoutThreshold <= 0 {
		c.BreakoutThreshold = 0.001
	}
	if c.VolumeMultiplier <= 0 {
		c.VolumeMultiplier = 1.2
	}
	return c
}

// Detector scans a candle window and emits confidence-scored pattern matches
// triggered by the latest bar of the window.
type Detector interface {
	// Kind returns the pattern kind this detector produces.
	Kind() domain.PatternKind

	// Detect scans the window against the given trend context. A window too
	// short for the pattern yields an empty list, not an error.
	Detect(ctx context.Context, candles []*domain.Candle, tc domain.TrendContext) ([]domain.PatternMatch, error)
}

// All returns the full detector chain in its canonical order. The order is
// stable so that downstream per-day signal caps are deterministic.
func All(cfg Config) []Detector {
	cfg = cfg.WithDefaults()
	return []Detector{
		NewBOS(cfg),
		NewCHoCH(cfg),
		NewOrderBlock(cfg),
		NewFairValueGap(cfg),
		NewLiquiditySweep(cfg),
	}
}

// clampConfidence bounds a raw score to [0, MaxConfidence].
func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxConfidence {
		return MaxConfidence
	}
	return v
}

// volumeRatio compares the volume of candles[idx] with the average volume of
// up to volumeLookback preceding bars. A degenerate (zero) average resolves
// to a neutral ratio of 1 instead of dividing by zero.
func volumeRatio(candles []*domain.Candle, idx int) float64 {
	lo := idx - volumeLookback
	if lo < 0 {
		lo = 0
	}
	if lo == idx {
		return 1.0
	}

	var sum float64
	for i := lo; i < idx; i++ {
		sum += candles[i].Volume
	}
	avg := sum / float64(idx-lo)
	if avg == 0 {
		return 1.0
	}
	return candles[idx].Volume / avg
}
