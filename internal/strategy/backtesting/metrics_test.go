package backtesting

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"smartMoneyBot/internal/domain"
)

func sigWithConfidence(conf float64) *domain.Signal {
	return &domain.Signal{ID: "test", Symbol: "ETHUSDT", ConfidenceScore: conf}
}

func TestSignalProfit(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		expected   float64
	}{
		{name: "confident signal earns proportional return", confidence: 0.9, expected: 0.09},
		{name: "weak signal loses proportional to shortfall", confidence: 0.5, expected: -0.025},
		{name: "boundary confidence counts as a loss", confidence: 0.6, expected: -0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignalProfit(sigWithConfidence(tt.confidence))
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("profit = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestComputeMetrics_MixedRun(t *testing.T) {
	sigs := []*domain.Signal{
		sigWithConfidence(0.9), // +0.09
		sigWithConfidence(0.5), // -0.025
		sigWithConfidence(0.8), // +0.08
	}

	m := ComputeMetrics(sigs)
	if m.TotalSignals != 3 {
		t.Errorf("total = %d, want 3", m.TotalSignals)
	}
	if math.Abs(m.WinRate-2.0/3.0) > 1e-9 {
		t.Errorf("win rate = %v, want 2/3", m.WinRate)
	}
	if math.Abs(m.ProfitFactor-(0.17/0.025)) > 1e-9 {
		t.Errorf("profit factor = %v, want 6.8", m.ProfitFactor)
	}
	if math.Abs(m.TotalReturn-0.145) > 1e-9 {
		t.Errorf("total return = %v, want 0.145", m.TotalReturn)
	}
	// Equity runs 0.09 -> 0.065 -> 0.145; the only dip is 0.025 off the peak.
	if math.Abs(m.MaxDrawdown-0.025) > 1e-9 {
		t.Errorf("max drawdown = %v, want 0.025", m.MaxDrawdown)
	}
	if m.SharpeRatio <= 0 {
		t.Errorf("sharpe = %v, want positive for a profitable run", m.SharpeRatio)
	}
}

func TestComputeMetrics_LosslessRun(t *testing.T) {
	sigs := []*domain.Signal{sigWithConfidence(0.9), sigWithConfidence(0.85)}

	m := ComputeMetrics(sigs)
	if m.WinRate != 1.0 {
		t.Errorf("win rate = %v, want 1.0", m.WinRate)
	}
	if !math.IsInf(m.ProfitFactor, 1) {
		t.Errorf("profit factor = %v, want +Inf", m.ProfitFactor)
	}
	if m.MaxDrawdown != 0 {
		t.Errorf("max drawdown = %v, want 0", m.MaxDrawdown)
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil)
	if m != (Metrics{}) {
		t.Errorf("empty run should produce zero metrics, got %+v", m)
	}
}

func TestSharpeRatio_Degenerate(t *testing.T) {
	if got := sharpeRatio([]float64{0.1}); got != 0 {
		t.Errorf("single return sharpe = %v, want 0", got)
	}
	if got := sharpeRatio([]float64{0.05, 0.05, 0.05}); got != 0 {
		t.Errorf("flat series sharpe = %v, want 0", got)
	}
}

func TestRecord_FlattensResult(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result := &BacktestResult{
		Symbol:       "ETHUSDT",
		StartTime:    start,
		EndTime:      start.AddDate(0, 6, 0),
		TotalSignals: 12,
		WinRate:      1.0,
		ProfitFactor: math.Inf(1),
		SharpeRatio:  1.5,
		TotalReturn:  1.14,
		Params:       DefaultParams(),
	}

	rec, err := result.Record()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ProfitFactor != 0 {
		t.Errorf("infinite profit factor should be stored as 0, got %v", rec.ProfitFactor)
	}
	if rec.Symbol != "ETHUSDT" || rec.TotalSignals != 12 {
		t.Errorf("record = %+v", rec)
	}

	var params Params
	if err := json.Unmarshal([]byte(rec.ParamsJSON), &params); err != nil {
		t.Fatalf("params JSON should round-trip: %v", err)
	}
	if params != DefaultParams() {
		t.Errorf("params = %+v, want defaults", params)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("record should carry a creation timestamp")
	}
}
