package risk

import (
	"context"
	"math"
	"testing"

	"smartMoneyBot/internal/domain"
)

func TestComputeLevels_DefaultGeometry(t *testing.T) {
	m, err := NewManager(Config{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	long := m.ComputeLevels(100, domain.Buy)
	if long.Target != 115 || long.Stop != 92 {
		t.Errorf("long levels = target %v stop %v, want 115 / 92", long.Target, long.Stop)
	}
	if math.Abs(long.RiskReward-1.875) > 1e-9 {
		t.Errorf("long reward:risk = %v, want 1.875", long.RiskReward)
	}

	short := m.ComputeLevels(100, domain.Sell)
	if short.Target != 85 || short.Stop != 108 {
		t.Errorf("short levels = target %v stop %v, want 85 / 108", short.Target, short.Stop)
	}
	if math.Abs(short.RiskReward-1.875) > 1e-9 {
		t.Errorf("short reward:risk = %v, want 1.875", short.RiskReward)
	}
}

func TestEvaluate_DefaultsNeverClearTheGate(t *testing.T) {
	// 15% reward over 8% risk is 1.875, below the 2.0 gate, so the default
	// parameters discard every candidate regardless of entry price.
	m, err := NewManager(Config{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range []float64{1, 100, 2500, 99999} {
		if _, ok := m.Evaluate(context.Background(), entry, domain.Buy); ok {
			t.Errorf("entry %v cleared the gate under default parameters", entry)
		}
		if _, ok := m.Evaluate(context.Background(), entry, domain.Sell); ok {
			t.Errorf("short entry %v cleared the gate under default parameters", entry)
		}
	}
}

func TestEvaluate_WiderTargetClearsTheGate(t *testing.T) {
	m, err := NewManager(Config{TakeProfitPct: 0.20, StopLossPct: 0.08, MinRiskReward: 2.0}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	levels, ok := m.Evaluate(context.Background(), 100, domain.Buy)
	if !ok {
		t.Fatal("20% target over 8% stop should clear the 2.0 gate")
	}
	if math.Abs(levels.RiskReward-2.5) > 1e-9 {
		t.Errorf("reward:risk = %v, want 2.5", levels.RiskReward)
	}
	if levels.Target != 120 || levels.Stop != 92 {
		t.Errorf("levels = target %v stop %v, want 120 / 92", levels.Target, levels.Stop)
	}
}

func TestEvaluate_RejectsDegenerateEntries(t *testing.T) {
	m, err := NewManager(Config{TakeProfitPct: 0.20}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := m.Evaluate(context.Background(), 0, domain.Buy); ok {
		t.Error("zero entry should be discarded")
	}
	if _, ok := m.Evaluate(context.Background(), -10, domain.Buy); ok {
		t.Error("negative entry should be discarded")
	}
}

func TestNewManager_RejectsFullStop(t *testing.T) {
	if _, err := NewManager(Config{StopLossPct: 1.0}, nil); err == nil {
		t.Error("stop loss of 100% should be rejected")
	}
}
