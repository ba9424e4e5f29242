package domain

// PatternKind identifies a structural chart pattern.
// The set is closed: downstream consumers switch over it exhaustively.
type PatternKind string

const (
	PatternBOS            PatternKind = "BOS"
	PatternCHoCH          PatternKind = "CHOCH"
	PatternOrderBlock     PatternKind = "ORDER_BLOCK"
	PatternFairValueGap   PatternKind = "FVG"
	PatternLiquiditySweep PatternKind = "LIQUIDITY_SWEEP"
)

// PatternMatch is a confidence-scored structural pattern detection.
// Matches are immutable once produced by a detector.
type PatternMatch struct {
	Kind       PatternKind
	Direction  OrderSide // BUY for bullish structure, SELL for bearish
	Confidence float64   // clamped to [0, 0.95]
	PriceLow   float64   // lower bound of the pattern's price zone
	PriceHigh  float64   // upper bound of the pattern's price zone
	StartIndex int       // first bar of the pattern in the scanned window
	EndIndex   int       // triggering bar (always the latest bar scanned)
}

// ConfirmationKind identifies an entry-confirmation source.
type ConfirmationKind string

const (
	ConfirmCandlestick ConfirmationKind = "CANDLESTICK"
	ConfirmRSI         ConfirmationKind = "RSI"
	ConfirmMACD        ConfirmationKind = "MACD"
)

// ConfirmationMatch is an entry-confirmation signal, produced independently
// of the structural detectors and consumed alongside them.
type ConfirmationMatch struct {
	Kind           ConfirmationKind
	Direction      OrderSide
	BaseConfidence float64
}

// SwingKind distinguishes swing highs from swing lows.
type SwingKind string

const (
	SwingHigh SwingKind = "high"
	SwingLow  SwingKind = "low"
)

// SwingLevel is a local price extremum relative to a symmetric bar window.
// Levels are recomputed per call and never persisted.
type SwingLevel struct {
	Kind  SwingKind
	Price float64
	Index int
}

// TrendDirection is the coarse direction of the prevailing trend.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// TrendContext captures the coarse trend state at one analysis point.
type TrendContext struct {
	Direction    TrendDirection
	CurrentPrice float64
	ShortMA      float64
	LongMA       float64
	SwingHighs   []SwingLevel // up to the 3 most recent swing highs
	SwingLows    []SwingLevel // up to the 3 most recent swing lows
	Strength     float64      // normalized distance of price from the short MA
}
