package patterns

import (
	"context"
	"math"
	"testing"
	"time"

	"smartMoneyBot/internal/domain"
)

// rangeSeries builds 17 bars trading a tight 100-101 range, with the final
// bar left to the caller to turn into a sweep.
func rangeSeries() []*domain.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*domain.Candle, 17)
	for i := range out {
		out[i] = &domain.Candle{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      100.2, High: 101, Low: 100, Close: 100.5, Volume: 1000,
		}
	}
	return out
}

func TestLiquiditySweep_SupportSweep(t *testing.T) {
	candles := rangeSeries()
	latest := candles[16]
	latest.Low = 99.9 // pierces the 100 support by 0.1%
	latest.High = 100.6
	latest.Close = 100.5 // rejects back above the level
	latest.Volume = 2000

	det := NewLiquiditySweep(Config{})
	matches, err := det.Detect(context.Background(), candles, domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}

	m := matches[0]
	if m.Direction != domain.Buy {
		t.Errorf("direction = %v, want BUY after a support sweep", m.Direction)
	}
	if m.PriceLow != 99.9 || m.PriceHigh != 100 {
		t.Errorf("price zone = [%v, %v], want [99.9, 100]", m.PriceLow, m.PriceHigh)
	}

	// 0.4 * 0.1pp pierce + 0.4 * close position in the bar + 0.2 * volume 2x.
	rejection := (100.5 - 99.9) / (100.6 - 99.9)
	wantConf := 0.4*0.1 + 0.4*rejection + 0.2*2.0
	if math.Abs(m.Confidence-wantConf) > 1e-9 {
		t.Errorf("confidence = %v, want %v", m.Confidence, wantConf)
	}
}

func TestLiquiditySweep_ResistanceSweep(t *testing.T) {
	candles := rangeSeries()
	latest := candles[16]
	latest.Open = 100.9
	latest.High = 101.15 // pierces the 101 resistance
	latest.Low = 100.2
	latest.Close = 100.6 // rejects back below the level
	latest.Volume = 2000

	det := NewLiquiditySweep(Config{})
	matches, err := det.Detect(context.Background(), candles, domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}
	m := matches[0]
	if m.Direction != domain.Sell {
		t.Errorf("direction = %v, want SELL after a resistance sweep", m.Direction)
	}
	if m.PriceLow != 101 || m.PriceHigh != 101.15 {
		t.Errorf("price zone = [%v, %v], want [101, 101.15]", m.PriceLow, m.PriceHigh)
	}
}

func TestLiquiditySweep_NoRejection(t *testing.T) {
	// The pierce holds below support into the close: a breakdown, not a sweep.
	candles := rangeSeries()
	latest := candles[16]
	latest.Low = 99.9
	latest.Close = 99.95
	latest.Volume = 2000

	det := NewLiquiditySweep(Config{})
	matches, err := det.Detect(context.Background(), candles, domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("close below the level should not match, got %+v", matches)
	}
}

func TestLiquiditySweep_VolumeGate(t *testing.T) {
	// Sweeps demand a harder spike than breaks; 1.5x is not enough.
	candles := rangeSeries()
	latest := candles[16]
	latest.Low = 99.9
	latest.Volume = 1500

	det := NewLiquiditySweep(Config{})
	matches, err := det.Detect(context.Background(), candles, domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("sweep without the volume spike should not match, got %+v", matches)
	}
}
