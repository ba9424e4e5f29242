// Package signals assembles trading signals from pattern matches, risk
// levels and trend context.
package signals

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
	"smartMoneyBot/internal/risk"
)

const (
	// MaxPerDay caps the signals synthesized for one simulated day.
	MaxPerDay = 5

	// trendBoostWeight scales the trend-alignment confidence bonus.
	trendBoostWeight = 0.1

	// strongConfidenceMin is the confidence floor for the STRONG_* directions.
	strongConfidenceMin = 0.8

	// Validity is the window during which a synthesized signal is actionable.
	Validity = 24 * time.Hour
)

// Synthesizer turns pattern matches into fully specified signals.
type Synthesizer struct {
	riskManager *risk.Manager
	logger      ports.Logger
}

// NewSynthesizer creates a signal synthesizer.
func NewSynthesizer(riskManager *risk.Manager, logger ports.Logger) *Synthesizer {
	return &Synthesizer{riskManager: riskManager, logger: logger}
}

// Synthesize builds signals for the given day. Matches that fail the risk
// gate are dropped, confidence gains a trend-alignment boost capped at 0.95,
// and at most MaxPerDay signals survive, oldest-detected-first.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	symbol string,
	matches []domain.PatternMatch,
	confirmations []domain.ConfirmationMatch,
	tc domain.TrendContext,
	now time.Time,
) []*domain.Signal {
	if len(matches) == 0 {
		return nil
	}

	// Oldest-detected-first: order by where the pattern began.
	ordered := make([]domain.PatternMatch, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartIndex < ordered[j].StartIndex
	})

	out := make([]*domain.Signal, 0, len(ordered))
	for _, m := range ordered {
		if len(out) >= MaxPerDay {
			break
		}

		levels, ok := s.riskManager.Evaluate(ctx, tc.CurrentPrice, m.Direction)
		if !ok {
			continue
		}

		confidence := m.Confidence + tc.Strength*trendBoostWeight
		if confidence > 0.95 {
			confidence = 0.95
		}

		confirming := 0
		for _, c := range confirmations {
			if c.Direction == m.Direction {
				confirming++
			}
		}

		direction := domain.SignalBuy
		if m.Direction == domain.Sell {
			direction = domain.SignalSell
		}
		strength := domain.StrengthModerate
		if confirming > 0 {
			strength = domain.StrengthStrong
			if confidence >= strongConfidenceMin {
				if direction == domain.SignalBuy {
					direction = domain.SignalStrongBuy
				} else {
					direction = domain.SignalStrongSell
				}
			}
		}

		sig := &domain.Signal{
			ID:              uuid.NewString(),
			Symbol:          symbol,
			Direction:       direction,
			EntryPrice:      levels.Entry,
			TargetPrice:     levels.Target,
			StopLoss:        levels.Stop,
			ConfidenceScore: confidence,
			RiskReward:      levels.RiskReward,
			QualityScore:    confidence,
			Strength:        strength,
			Pattern:         m.Kind,
			CreatedAt:       now,
			ValidUntil:      now.Add(Validity),
		}
		out = append(out, sig)

		if s.logger != nil {
			s.logger.Debug(ctx, "Signal synthesized", map[string]interface{}{
				"symbol":     symbol,
				"pattern":    m.Kind,
				"direction":  direction,
				"confidence": confidence,
				"riskReward": levels.RiskReward,
			})
		}
	}
	return out
}
