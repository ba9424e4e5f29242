// Package backtesting replays a historical candle series day by day,
// synthesizing signals from the pattern detector chain without look-ahead
// and scoring the run with aggregate performance metrics.
package backtesting

import (
	"context"
	"fmt"
	"time"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
	"smartMoneyBot/internal/risk"
	"smartMoneyBot/internal/strategy/confirm"
	"smartMoneyBot/internal/strategy/patterns"
	"smartMoneyBot/internal/strategy/signals"
	"smartMoneyBot/internal/strategy/trend"
)

const (
	// WarmupBars is the minimum history before the first simulated day.
	WarmupBars = 50

	// MaxTotalSignals hard-stops a run once this many signals accumulate.
	MaxTotalSignals = 200
)

// BacktestResult holds the outcome of one walk-forward run. It is derived,
// read-only, and created once per run.
type BacktestResult struct {
	Symbol       string
	StartTime    time.Time
	EndTime      time.Time
	TotalSignals int
	WinRate      float64
	ProfitFactor float64 // +Inf when the run had no losing signals
	MaxDrawdown  float64
	SharpeRatio  float64
	TotalReturn  float64
	Params       Params
	Signals      []*domain.Signal
}

// Simulator orchestrates the per-day detection chain over a candle series.
type Simulator struct {
	params       Params
	detectors    []patterns.Detector
	trendBuilder *trend.Builder
	analyzer     *confirm.Analyzer
	synthesizer  *signals.Synthesizer
	logger       ports.Logger
}

// NewSimulator wires the detection chain for the given parameters.
func NewSimulator(params Params, logger ports.Logger) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulator parameters: %w", err)
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for the simulator: %w", ports.ErrConfigurationError)
	}

	riskManager, err := risk.NewManager(risk.Config{
		TakeProfitPct: params.TakeProfitPct,
		StopLossPct:   params.StopLossPct,
		MinRiskReward: params.MinRiskReward,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create risk manager: %w", err)
	}

	detectorCfg := patterns.Config{
		SwingRadius:       params.SwingRadius,
		BreakoutThreshold: params.BreakoutThreshold,
		VolumeMultiplier:  params.VolumeMultiplier,
	}

	return &Simulator{
		params:       params,
		detectors:    patterns.All(detectorCfg),
		trendBuilder: trend.NewBuilder(params.SwingRadius, logger),
		analyzer:     confirm.NewAnalyzer(logger),
		synthesizer:  signals.NewSynthesizer(riskManager, logger),
		logger:       logger,
	}, nil
}

// Run replays [start, end] one calendar day at a time, exposing only candles
// with timestamps at or before the simulated day. A series shorter than the
// warmup returns an empty result, not an error; a failure inside one day's
// detector chain is logged and that day skipped. The run stops early once
// MaxTotalSignals signals have accumulated.
func (s *Simulator) Run(ctx context.Context, symbol string, candles []*domain.Candle, start, end time.Time) (*BacktestResult, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end %s is before start %s: %w", end.Format(time.RFC3339), start.Format(time.RFC3339), ports.ErrInvalidRequest)
	}

	result := &BacktestResult{
		Symbol:    symbol,
		StartTime: start,
		EndTime:   end,
		Params:    s.params,
		Signals:   make([]*domain.Signal, 0),
	}

	if len(candles) < WarmupBars {
		s.logger.Info(ctx, "Not enough history for backtest, returning empty result", map[string]interface{}{
			"symbol":   symbol,
			"bars":     len(candles),
			"required": WarmupBars,
		})
		return result, nil
	}

	visible := 0 // count of candles with Timestamp <= current day
	prevVisible := -1

	for day := start; !day.After(end); day = day.Add(24 * time.Hour) {
		for visible < len(candles) && !candles[visible].Timestamp.After(day) {
			visible++
		}
		if visible < WarmupBars {
			continue
		}
		if visible == prevVisible {
			// No new bar closed on this day (weekend/holiday); re-running
			// the chain would just re-emit yesterday's detections.
			continue
		}
		prevVisible = visible

		daySignals, err := s.runDay(ctx, symbol, candles[:visible], day)
		if err != nil {
			s.logger.Warn(ctx, "Skipping day after detection failure", map[string]interface{}{
				"symbol": symbol,
				"day":    day.Format("2006-01-02"),
				"error":  err.Error(),
			})
			continue
		}

		for _, sig := range daySignals {
			result.Signals = append(result.Signals, sig)
			if len(result.Signals) >= MaxTotalSignals {
				break
			}
		}
		if len(result.Signals) >= MaxTotalSignals {
			s.logger.Info(ctx, "Signal cap reached, stopping run early", map[string]interface{}{
				"symbol": symbol,
				"day":    day.Format("2006-01-02"),
				"cap":    MaxTotalSignals,
			})
			break
		}
	}

	m := ComputeMetrics(result.Signals)
	result.TotalSignals = m.TotalSignals
	result.WinRate = m.WinRate
	result.ProfitFactor = m.ProfitFactor
	result.MaxDrawdown = m.MaxDrawdown
	result.SharpeRatio = m.SharpeRatio
	result.TotalReturn = m.TotalReturn
	return result, nil
}

// runDay executes the full detection chain on one day's visible candles.
// Panics inside detectors are recovered and surfaced as detection failures
// so a single bad day cannot abort the run.
func (s *Simulator) runDay(ctx context.Context, symbol string, candles []*domain.Candle, day time.Time) (daySignals []*domain.Signal, err error) {
	defer func() {
		if r := recover(); r != nil {
			daySignals = nil
			err = fmt.Errorf("%w: panic in detector chain: %v", ports.ErrDetectionFailed, r)
		}
	}()

	tc := s.trendBuilder.Build(ctx, candles)

	var matches []domain.PatternMatch
	for _, det := range s.detectors {
		found, derr := det.Detect(ctx, candles, tc)
		if derr != nil {
			return nil, fmt.Errorf("detector %s: %w", det.Kind(), derr)
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	confirmations := s.analyzer.Analyze(ctx, candles, tc)
	return s.synthesizer.Synthesize(ctx, symbol, matches, confirmations, tc, day), nil
}
