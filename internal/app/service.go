// Package app wires the detection chain to the market-data and persistence
// collaborators for live scans.
package app

import (
	"context"
	"fmt"
	"time"

	"smartMoneyBot/config"
	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
	"smartMoneyBot/internal/risk"
	"smartMoneyBot/internal/strategy/confirm"
	"smartMoneyBot/internal/strategy/patterns"
	"smartMoneyBot/internal/strategy/signals"
	"smartMoneyBot/internal/strategy/trend"
)

// minScanBars mirrors the simulator warmup: scans with less history than
// this produce no signals rather than an error.
const minScanBars = 50

// ScannerService runs the detection chain against fresh market data and
// persists whatever signals it synthesizes.
type ScannerService struct {
	cfg          *config.Config
	logger       ports.Logger
	marketData   ports.MarketDataProvider
	signalRepo   ports.SignalRepository
	detectors    []patterns.Detector
	trendBuilder *trend.Builder
	analyzer     *confirm.Analyzer
	synthesizer  *signals.Synthesizer
}

// NewScannerService creates the scanner and wires the detection chain from
// the loaded configuration.
func NewScannerService(
	cfg *config.Config,
	logger ports.Logger,
	marketData ports.MarketDataProvider,
	signalRepo ports.SignalRepository,
) (*ScannerService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required for scanner service: %w", ports.ErrConfigurationError)
	}
	if logger == nil || marketData == nil || signalRepo == nil {
		return nil, fmt.Errorf("logger, market data provider and signal repository are required: %w", ports.ErrConfigurationError)
	}

	riskManager, err := risk.NewManager(risk.Config{
		TakeProfitPct: cfg.TakeProfitPct,
		StopLossPct:   cfg.StopLossPct,
		MinRiskReward: cfg.MinRiskReward,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create risk manager: %w", err)
	}

	detectorCfg := patterns.Config{
		SwingRadius:       cfg.SwingRadius,
		BreakoutThreshold: cfg.BreakoutThreshold,
		VolumeMultiplier:  cfg.VolumeMultiplier,
	}

	return &ScannerService{
		cfg:          cfg,
		logger:       logger,
		marketData:   marketData,
		signalRepo:   signalRepo,
		detectors:    patterns.All(detectorCfg),
		trendBuilder: trend.NewBuilder(cfg.SwingRadius, logger),
		analyzer:     confirm.NewAnalyzer(logger),
		synthesizer:  signals.NewSynthesizer(riskManager, logger),
	}, nil
}

// ScanOnce fetches the recent candle history for the configured symbol, runs
// the detection chain at the latest bar, persists the resulting signals and
// returns them. An empty history or a quiet market yields an empty list.
func (s *ScannerService) ScanOnce(ctx context.Context) ([]*domain.Signal, error) {
	candles, err := s.marketData.GetCandles(ctx, s.cfg.Symbol, s.cfg.Interval, s.cfg.ScanLookbackBars)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candles for %s: %w", s.cfg.Symbol, err)
	}
	if len(candles) < minScanBars {
		s.logger.Info(ctx, "Not enough history for a scan", map[string]interface{}{
			"symbol":   s.cfg.Symbol,
			"bars":     len(candles),
			"required": minScanBars,
		})
		return nil, nil
	}

	tc := s.trendBuilder.Build(ctx, candles)

	var matches []domain.PatternMatch
	for _, det := range s.detectors {
		found, err := det.Detect(ctx, candles, tc)
		if err != nil {
			// A single failing detector should not silence the others.
			s.logger.Warn(ctx, "Detector failed during scan", map[string]interface{}{
				"detector": det.Kind(),
				"symbol":   s.cfg.Symbol,
				"error":    err.Error(),
			})
			continue
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		s.logger.Debug(ctx, "No structural patterns at latest bar", map[string]interface{}{"symbol": s.cfg.Symbol})
		return nil, nil
	}

	confirmations := s.analyzer.Analyze(ctx, candles, tc)
	now := candles[len(candles)-1].Timestamp
	sigs := s.synthesizer.Synthesize(ctx, s.cfg.Symbol, matches, confirmations, tc, now)

	for _, sig := range sigs {
		if _, err := s.signalRepo.CreateSignal(ctx, sig); err != nil {
			s.logger.Error(ctx, err, "Failed to persist signal", map[string]interface{}{
				"signalID": sig.ID,
				"symbol":   sig.Symbol,
			})
		}
	}

	s.logger.Info(ctx, "Scan complete", map[string]interface{}{
		"symbol":   s.cfg.Symbol,
		"patterns": len(matches),
		"signals":  len(sigs),
		"asOf":     now.Format(time.RFC3339),
	})
	return sigs, nil
}
