package domain

import "time"

// Candle represents a single OHLCV bar.
// Candle sequences handed to the engine must be time-ordered with strictly
// increasing timestamps; that ordering is the caller's responsibility.
type Candle struct {
	Timestamp time.Time // Open time of the interval
	Symbol    string    // Trading symbol
	Interval  string    // Bar interval (e.g., "1h", "1d")
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Traded volume
}

// Body returns the absolute size of the candle body.
func (c *Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// IsBullish reports whether the candle closed above its open.
func (c *Candle) IsBullish() bool {
	return c.Close > c.Open
}

// IsBearish reports whether the candle closed below its open.
func (c *Candle) IsBearish() bool {
	return c.Close < c.Open
}
