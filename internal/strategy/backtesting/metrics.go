package backtesting

import (
	"encoding/json"
	"math"
	"time"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
)

const (
	winReturnWeight  = 0.10 // profit proxy weight for confident signals
	lossReturnWeight = 0.05 // loss proxy weight for weak signals
	winConfidenceMin = 0.6
)

// Metrics aggregates the performance of a signal list.
type Metrics struct {
	TotalSignals int
	WinRate      float64
	ProfitFactor float64
	MaxDrawdown  float64
	SharpeRatio  float64
	TotalReturn  float64
}

// SignalProfit is the synthetic per-signal profit proxy: confident signals
// (confidence above 0.6) earn a return proportional to their confidence,
// weak ones lose proportionally to their shortfall. This stands in for true
// forward fills against subsequent price action.
func SignalProfit(sig *domain.Signal) float64 {
	if sig.ConfidenceScore > winConfidenceMin {
		return winReturnWeight * sig.ConfidenceScore
	}
	return -lossReturnWeight * (1 - sig.ConfidenceScore)
}

// ComputeMetrics aggregates win rate, profit factor, drawdown, Sharpe ratio
// and total return over the proxy profit series of a run's signals. An empty
// signal list produces all-zero metrics.
func ComputeMetrics(sigs []*domain.Signal) Metrics {
	m := Metrics{TotalSignals: len(sigs)}
	if len(sigs) == 0 {
		return m
	}

	profits := make([]float64, len(sigs))
	var wins int
	var sumPos, sumNeg float64
	for i, sig := range sigs {
		p := SignalProfit(sig)
		profits[i] = p
		m.TotalReturn += p
		if p > 0 {
			wins++
			sumPos += p
		} else {
			sumNeg += -p
		}
	}

	m.WinRate = float64(wins) / float64(len(sigs))
	if sumNeg == 0 {
		m.ProfitFactor = math.Inf(1)
	} else {
		m.ProfitFactor = sumPos / sumNeg
	}

	// Max drawdown over the cumulative return curve.
	var equity, peak float64
	for _, p := range profits {
		equity += p
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > m.MaxDrawdown {
			m.MaxDrawdown = dd
		}
	}

	m.SharpeRatio = sharpeRatio(profits)
	return m
}

// sharpeRatio computes mean/stddev over a return series, assuming a zero
// risk-free rate. Fewer than two returns, or a flat series, yield zero.
func sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	stdDev := math.Sqrt(variance)

	if stdDev == 0 {
		return 0
	}
	return mean / stdDev
}

// Record flattens the result into its persistence shape. An infinite profit
// factor is stored as zero since neither JSON nor SQLite can carry +Inf.
func (r *BacktestResult) Record() (*ports.BacktestRecord, error) {
	paramsJSON, err := json.Marshal(r.Params)
	if err != nil {
		return nil, err
	}

	pf := r.ProfitFactor
	if math.IsInf(pf, 0) {
		pf = 0
	}

	return &ports.BacktestRecord{
		Symbol:       r.Symbol,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		TotalSignals: r.TotalSignals,
		WinRate:      r.WinRate,
		ProfitFactor: pf,
		MaxDrawdown:  r.MaxDrawdown,
		SharpeRatio:  r.SharpeRatio,
		TotalReturn:  r.TotalReturn,
		ParamsJSON:   string(paramsJSON),
		CreatedAt:    time.Now(),
	}, nil
}
