// Package risk converts pattern detections into entry/target/stop levels
// under a fixed-percentage model and gates them on reward:risk.
package risk

import (
	"context"
	"fmt"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
)

// Config holds the fixed-percentage risk model parameters.
type Config struct {
	TakeProfitPct float64 // target distance as a fraction of entry, default 0.15
	StopLossPct   float64 // stop distance as a fraction of entry, default 0.08
	MinRiskReward float64 // hard reward:risk gate, default 2.0
}

// WithDefaults fills unset fields with the default model parameters.
func (c Config) WithDefaults() Config {
	if c.TakeProfitPct <= 0 {
		c.TakeProfitPct = 0.15
	}
	if c.StopLossPct <= 0 {
		c.StopLossPct = 0.08
	}
	if c.MinRiskReward <= 0 {
		c.MinRiskReward = 2.0
	}
	return c
}

// Levels is the full price geometry of a candidate trade.
type Levels struct {
	Entry      float64
	Target     float64
	Stop       float64
	Risk       float64 // |entry - stop|
	Reward     float64 // |target - entry|
	RiskReward float64 // reward / risk
}

// Manager applies the fixed-percentage risk model.
type Manager struct {
	cfg    Config
	logger ports.Logger
}

// NewManager creates a risk manager instance.
func NewManager(cfg Config, logger ports.Logger) (*Manager, error) {
	cfg = cfg.WithDefaults()
	if cfg.StopLossPct >= 1.0 {
		return nil, fmt.Errorf("stop loss percentage must be below 1.0: %w", ports.ErrConfigurationError)
	}
	return &Manager{cfg: cfg, logger: logger}, nil
}

// ComputeLevels derives target and stop from the entry price. Longs place
// the target above and the stop below the entry; shorts mirror both.
func (m *Manager) ComputeLevels(entry float64, side domain.OrderSide) Levels {
	l := Levels{Entry: entry}
	switch side {
	case domain.Sell:
		l.Target = entry * (1 - m.cfg.TakeProfitPct)
		l.Stop = entry * (1 + m.cfg.StopLossPct)
	default:
		l.Target = entry * (1 + m.cfg.TakeProfitPct)
		l.Stop = entry * (1 - m.cfg.StopLossPct)
	}

	l.Risk = abs(l.Entry - l.Stop)
	l.Reward = abs(l.Target - l.Entry)
	if l.Risk > 0 {
		l.RiskReward = l.Reward / l.Risk
	}
	return l
}

// Evaluate computes the levels for a candidate and applies the reward:risk
// gate. Candidates below the gate are discarded, never adjusted; a zero risk
// distance is treated as degenerate and discarded as well.
func (m *Manager) Evaluate(ctx context.Context, entry float64, side domain.OrderSide) (Levels, bool) {
	if entry <= 0 {
		return Levels{}, false
	}

	l := m.ComputeLevels(entry, side)
	if l.Risk == 0 {
		if m.logger != nil {
			m.logger.Debug(ctx, "Discarding candidate with zero risk distance",
				map[string]interface{}{"entry": entry, "side": side})
		}
		return l, false
	}
	if l.RiskReward < m.cfg.MinRiskReward {
		if m.logger != nil {
			m.logger.Debug(ctx, "Discarding candidate below reward:risk gate", map[string]interface{}{
				"entry":      entry,
				"side":       side,
				"riskReward": l.RiskReward,
				"minimum":    m.cfg.MinRiskReward,
			})
		}
		return l, false
	}
	return l, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
