package backtesting

import (
	"fmt"

	"smartMoneyBot/internal/ports"
)

// Params is the immutable strategy configuration for one run. Runs with
// identical candles and Params are fully reproducible, and distinct runs
// share no state, so callers may parallelize them freely.
type Params struct {
	TakeProfitPct     float64 `json:"take_profit_pct"`
	StopLossPct       float64 `json:"stop_loss_pct"`
	MinRiskReward     float64 `json:"min_risk_reward"`
	SwingRadius       int     `json:"swing_radius"`
	BreakoutThreshold float64 `json:"breakout_threshold"`
	VolumeMultiplier  float64 `json:"volume_multiplier"`
}

// DefaultParams returns the baseline strategy parameters.
func DefaultParams() Params {
	return Params{
		TakeProfitPct:     0.15,
		StopLossPct:       0.08,
		MinRiskReward:     2.0,
		SwingRadius:       3,
		BreakoutThreshold: 0.001,
		VolumeMultiplier:  1.2,
	}
}

// Validate rejects parameter combinations the engine cannot run with.
func (p Params) Validate() error {
	if p.TakeProfitPct <= 0 || p.StopLossPct <= 0 {
		return fmt.Errorf("take profit and stop loss percentages must be positive: %w", ports.ErrConfigurationError)
	}
	if p.StopLossPct >= 1.0 {
		return fmt.Errorf("stop loss percentage must be below 1.0: %w", ports.ErrConfigurationError)
	}
	if p.MinRiskReward <= 0 {
		return fmt.Errorf("minimum risk reward must be positive: %w", ports.ErrConfigurationError)
	}
	if p.SwingRadius <= 0 {
		return fmt.Errorf("swing radius must be positive: %w", ports.ErrConfigurationError)
	}
	if p.BreakoutThreshold <= 0 || p.VolumeMultiplier <= 0 {
		return fmt.Errorf("breakout threshold and volume multiplier must be positive: %w", ports.ErrConfigurationError)
	}
	return nil
}
