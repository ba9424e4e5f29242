// Package confirm produces entry-confirmation matches from RSI, MACD and
// candlestick structure. Confirmations are independent of the structural
// pattern detectors and consumed alongside them by the signal synthesizer.
package confirm

import (
	"context"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
	"smartMoneyBot/internal/strategy/indicators"
)

const (
	rsiPeriod      = 14
	macdFastPeriod = 12
	macdSlowPeriod = 26

	// RSI bands that qualify as a pullback entry in the prevailing trend.
	rsiPullbackLow    = 20.0
	rsiPullbackHigh   = 30.0
	rsiExhaustionLow  = 70.0
	rsiExhaustionHigh = 80.0

	candlestickConfidence = 0.60
	rsiConfidence         = 0.65
	macdConfidence        = 0.70
)

// Analyzer evaluates entry confirmations for the latest bar of a window.
type Analyzer struct {
	logger ports.Logger
}

// NewAnalyzer creates a confirmation analyzer.
func NewAnalyzer(logger ports.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze returns the confirmation matches present at the latest bar.
// Indicators that lack data (e.g. MACD under 26 bars) are silently skipped;
// the analyzer degrades to whatever evidence the window supports.
func (a *Analyzer) Analyze(ctx context.Context, candles []*domain.Candle, tc domain.TrendContext) []domain.ConfirmationMatch {
	var matches []domain.ConfirmationMatch

	if m, ok := a.engulfing(candles, tc); ok {
		matches = append(matches, m)
	}
	if m, ok := a.rsiPullback(candles, tc); ok {
		matches = append(matches, m)
	}
	if m, ok := a.macdCrossover(candles, tc); ok {
		matches = append(matches, m)
	}

	if len(matches) > 0 && a.logger != nil {
		a.logger.Debug(ctx, "Entry confirmations found", map[string]interface{}{
			"count": len(matches),
			"trend": tc.Direction,
		})
	}
	return matches
}

// engulfing checks the last two candles for an engulfing body aligned with
// the trend direction.
func (a *Analyzer) engulfing(candles []*domain.Candle, tc domain.TrendContext) (domain.ConfirmationMatch, bool) {
	if len(candles) < 2 {
		return domain.ConfirmationMatch{}, false
	}
	prev, curr := candles[len(candles)-2], candles[len(candles)-1]

	bullish := prev.IsBearish() && curr.IsBullish() &&
		curr.Open <= prev.Close && curr.Close >= prev.Open
	bearish := prev.IsBullish() && curr.IsBearish() &&
		curr.Open >= prev.Close && curr.Close <= prev.Open

	if bullish && tc.Direction == domain.TrendUp {
		return domain.ConfirmationMatch{
			Kind:           domain.ConfirmCandlestick,
			Direction:      domain.Buy,
			BaseConfidence: candlestickConfidence,
		}, true
	}
	if bearish && tc.Direction == domain.TrendDown {
		return domain.ConfirmationMatch{
			Kind:           domain.ConfirmCandlestick,
			Direction:      domain.Sell,
			BaseConfidence: candlestickConfidence,
		}, true
	}
	return domain.ConfirmationMatch{}, false
}

// rsiPullback matches an oversold pullback in an uptrend (RSI 20-30) or an
// overbought exhaustion in a downtrend (RSI 70-80).
func (a *Analyzer) rsiPullback(candles []*domain.Candle, tc domain.TrendContext) (domain.ConfirmationMatch, bool) {
	rsi, err := indicators.RSI(candles, rsiPeriod)
	if err != nil {
		return domain.ConfirmationMatch{}, false
	}

	if tc.Direction == domain.TrendUp && rsi >= rsiPullbackLow && rsi <= rsiPullbackHigh {
		return domain.ConfirmationMatch{
			Kind:           domain.ConfirmRSI,
			Direction:      domain.Buy,
			BaseConfidence: rsiConfidence,
		}, true
	}
	if tc.Direction == domain.TrendDown && rsi >= rsiExhaustionLow && rsi <= rsiExhaustionHigh {
		return domain.ConfirmationMatch{
			Kind:           domain.ConfirmRSI,
			Direction:      domain.Sell,
			BaseConfidence: rsiConfidence,
		}, true
	}
	return domain.ConfirmationMatch{}, false
}

// macdCrossover matches a same-direction zero-line crossover of the
// simplified MACD line on the latest bar.
func (a *Analyzer) macdCrossover(candles []*domain.Candle, tc domain.TrendContext) (domain.ConfirmationMatch, bool) {
	if len(candles) < macdSlowPeriod+1 {
		return domain.ConfirmationMatch{}, false
	}
	now, err := indicators.MACDLine(candles, macdFastPeriod, macdSlowPeriod)
	if err != nil {
		return domain.ConfirmationMatch{}, false
	}
	prev, err := indicators.MACDLine(candles[:len(candles)-1], macdFastPeriod, macdSlowPeriod)
	if err != nil {
		return domain.ConfirmationMatch{}, false
	}

	if tc.Direction == domain.TrendUp && prev <= 0 && now > 0 {
		return domain.ConfirmationMatch{
			Kind:           domain.ConfirmMACD,
			Direction:      domain.Buy,
			BaseConfidence: macdConfidence,
		}, true
	}
	if tc.Direction == domain.TrendDown && prev >= 0 && now < 0 {
		return domain.ConfirmationMatch{
			Kind:           domain.ConfirmMACD,
			Direction:      domain.Sell,
			BaseConfidence: macdConfidence,
		}, true
	}
	return domain.ConfirmationMatch{}, false
}
