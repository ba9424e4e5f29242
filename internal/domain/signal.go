package domain

import "time"

// OrderSide represents the directional side of a detection (BUY or SELL).
type OrderSide string

const (
	Buy  OrderSide = "BUY"
	Sell OrderSide = "SELL"
)

// SignalDirection is the final direction of a synthesized signal.
// Strong variants are emitted when entry confirmations agree with the pattern.
type SignalDirection string

const (
	SignalBuy        SignalDirection = "BUY"
	SignalSell       SignalDirection = "SELL"
	SignalStrongBuy  SignalDirection = "STRONG_BUY"
	SignalStrongSell SignalDirection = "STRONG_SELL"
)

// SignalStrength is a coarse quality bucket derived from confirmations.
type SignalStrength string

const (
	StrengthModerate SignalStrength = "MODERATE"
	StrengthStrong   SignalStrength = "STRONG"
)

// Signal is a fully specified trading signal synthesized from a pattern
// match, a risk computation and the prevailing trend context. Signals are
// one of the two outputs this engine hands to persistence.
type Signal struct {
	ID              string // provenance UUID, assigned at synthesis
	Symbol          string
	Direction       SignalDirection
	EntryPrice      float64
	TargetPrice     float64
	StopLoss        float64
	ConfidenceScore float64 // [0, 1]
	RiskReward      float64 // reward distance / risk distance, >= the configured gate
	QualityScore    float64
	Strength        SignalStrength
	Pattern         PatternKind // provenance: the pattern that produced the signal
	CreatedAt       time.Time
	ValidUntil      time.Time
}

// IsLong reports whether the signal is a buy-side signal.
func (s *Signal) IsLong() bool {
	return s.Direction == SignalBuy || s.Direction == SignalStrongBuy
}
