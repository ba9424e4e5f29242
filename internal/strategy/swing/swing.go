// Package swing detects local price extrema (swing highs and lows) in a
// candle window. Levels are recomputed on every call; nothing is cached.
package swing

import (
	"fmt"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
)

// DefaultRadius is the default half-width of the comparison window.
const DefaultRadius = 3

// Detect finds swing highs and lows over the given candles. A bar is a swing
// high when its high equals the maximum high over [i-radius, i+radius], with
// the window clamped at the ends of the series; swing lows are symmetric.
// Runs in O(n*radius) and is fully deterministic.
func Detect(candles []*domain.Candle, radius int) ([]domain.SwingLevel, error) {
	if radius <= 0 {
		radius = DefaultRadius
	}
	if len(candles) < 2*radius+1 {
		return nil, fmt.Errorf("need at least %d candles for swing radius %d, got %d: %w",
			2*radius+1, radius, len(candles), ports.ErrInsufficientData)
	}

	levels := make([]domain.SwingLevel, 0)
	for i := range candles {
		lo := i - radius
		if lo < 0 {
			lo = 0
		}
		hi := i + radius
		if hi > len(candles)-1 {
			hi = len(candles) - 1
		}

		isHigh, isLow := true, true
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			if candles[j].High > candles[i].High {
				isHigh = false
			}
			if candles[j].Low < candles[i].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}

		if isHigh {
			levels = append(levels, domain.SwingLevel{Kind: domain.SwingHigh, Price: candles[i].High, Index: i})
		}
		if isLow {
			levels = append(levels, domain.SwingLevel{Kind: domain.SwingLow, Price: candles[i].Low, Index: i})
		}
	}
	return levels, nil
}

// Highs filters swing highs from a detected level list, preserving order.
func Highs(levels []domain.SwingLevel) []domain.SwingLevel {
	out := make([]domain.SwingLevel, 0, len(levels))
	for _, l := range levels {
		if l.Kind == domain.SwingHigh {
			out = append(out, l)
		}
	}
	return out
}

// Lows filters swing lows from a detected level list, preserving order.
func Lows(levels []domain.SwingLevel) []domain.SwingLevel {
	out := make([]domain.SwingLevel, 0, len(levels))
	for _, l := range levels {
		if l.Kind == domain.SwingLow {
			out = append(out, l)
		}
	}
	return out
}

// LastN returns up to the n most recent levels from a list, oldest first.
func LastN(levels []domain.SwingLevel, n int) []domain.SwingLevel {
	if len(levels) <= n {
		return levels
	}
	return levels[len(levels)-n:]
}
