package indicators

import (
	"fmt"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
)

// SMA computes the Simple Moving Average of closing prices over the last
// 'period' candles.
func SMA(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("SMA period must be positive: %w", ports.ErrInvalidRequest)
	}
	if len(candles) < period {
		return 0, fmt.Errorf("not enough data (%d) to calculate SMA for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}

	total := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		total += candles[i].Close
	}
	return total / float64(period), nil
}

// EMA computes the Exponential Moving Average of closing prices, seeded with
// the SMA of the first 'period' candles.
func EMA(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("EMA period must be positive: %w", ports.ErrInvalidRequest)
	}
	if len(candles) < period {
		return 0, fmt.Errorf("not enough data (%d) to calculate EMA for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}

	multiplier := 2.0 / float64(period+1)

	seed, err := SMA(candles[:period], period)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate initial SMA for EMA seed: %w", err)
	}
	ema := seed

	for i := period; i < len(candles); i++ {
		ema = (candles[i].Close-ema)*multiplier + ema
	}
	return ema, nil
}

// RSI computes the Relative Strength Index using Wilder's smoothing method.
// When the smoothed average loss is zero the relative strength is pinned to
// 100 instead of dividing by zero.
func RSI(candles []*domain.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("RSI period must be positive: %w", ports.ErrInvalidRequest)
	}
	if len(candles) <= period {
		return 0, fmt.Errorf("not enough data (%d) to calculate RSI for period %d: %w", len(candles), period, ports.ErrInsufficientData)
	}

	// Bar-to-bar close changes
	changes := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		changes = append(changes, candles[i].Close-candles[i-1].Close)
	}

	// Initial average gain and loss
	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		if changes[i] > 0 {
			avgGain += changes[i]
		} else {
			avgLoss -= changes[i]
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder's smoothing over the remaining changes
	for i := period; i < len(changes); i++ {
		if changes[i] > 0 {
			avgGain = (avgGain*float64(period-1) + changes[i]) / float64(period)
			avgLoss = (avgLoss * float64(period-1)) / float64(period)
		} else {
			avgGain = (avgGain * float64(period-1)) / float64(period)
			avgLoss = (avgLoss*float64(period-1) - changes[i]) / float64(period)
		}
	}

	rs := 100.0 // zero average loss pins RS rather than dividing by zero
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}
	rsi := 100 - (100 / (1 + rs))

	if rsi > 100 {
		rsi = 100
	} else if rsi < 0 {
		rsi = 0
	}
	return rsi, nil
}

// MACDLine computes the simplified MACD line (EMA12 - EMA26). The signal is
// only meaningful with at least the slow period of data.
func MACDLine(candles []*domain.Candle, fastPeriod, slowPeriod int) (float64, error) {
	if fastPeriod <= 0 || slowPeriod <= 0 || fastPeriod >= slowPeriod {
		return 0, fmt.Errorf("invalid MACD periods %d/%d: %w", fastPeriod, slowPeriod, ports.ErrInvalidRequest)
	}
	if len(candles) < slowPeriod {
		return 0, fmt.Errorf("not enough data (%d) to calculate MACD for slow period %d: %w", len(candles), slowPeriod, ports.ErrInsufficientData)
	}

	fast, err := EMA(candles, fastPeriod)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate fast EMA: %w", err)
	}
	slow, err := EMA(candles, slowPeriod)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate slow EMA: %w", err)
	}
	return fast - slow, nil
}
