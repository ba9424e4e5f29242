package patterns

import (
	"context"
	"math"
	"testing"
	"time"

	"smartMoneyBot/internal/domain"
)

// gapSeries builds 12 bars with a final bar whose low opens clear above the
// previous high by gap (absolute price units) on 1.5x volume.
func gapSeries(gap float64) []*domain.Candle {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*domain.Candle, 0, 12)
	for i := 0; i < 11; i++ {
		out = append(out, &domain.Candle{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      99.5, High: 100, Low: 99, Close: 99.8, Volume: 1000,
		})
	}
	out = append(out, &domain.Candle{
		Timestamp: base.Add(11 * time.Hour),
		Open:      100 + gap + 0.1,
		High:      100 + gap + 1,
		Low:       100 + gap,
		Close:     100 + gap + 0.8,
		Volume:    1500,
	})
	return out
}

func TestFVG_BullishGap(t *testing.T) {
	det := NewFairValueGap(Config{})

	matches, err := det.Detect(context.Background(), gapSeries(0.2), domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}

	m := matches[0]
	if m.Direction != domain.Buy {
		t.Errorf("direction = %v, want BUY", m.Direction)
	}
	if m.PriceLow != 100 || m.PriceHigh != 100.2 {
		t.Errorf("price zone = [%v, %v], want the gap [100, 100.2]", m.PriceLow, m.PriceHigh)
	}
	if m.StartIndex != 10 || m.EndIndex != 11 {
		t.Errorf("indexes = [%d, %d], want [10, 11]", m.StartIndex, m.EndIndex)
	}

	// 0.6 * gap of 0.2 percentage points + 0.4 * volume ratio 1.5.
	wantConf := 0.6*0.2 + 0.4*1.5
	if math.Abs(m.Confidence-wantConf) > 1e-9 {
		t.Errorf("confidence = %v, want %v", m.Confidence, wantConf)
	}
}

func TestFVG_GapScoreIsCapped(t *testing.T) {
	det := NewFairValueGap(Config{})

	// A 2% gap caps the gap component at one percentage point, and the raw
	// score then clamps at the confidence ceiling.
	matches, err := det.Detect(context.Background(), gapSeries(2.0), domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}
	if matches[0].Confidence != MaxConfidence {
		t.Errorf("confidence = %v, want the %v ceiling", matches[0].Confidence, MaxConfidence)
	}
}

func TestFVG_BearishGap(t *testing.T) {
	candles := gapSeries(0)
	latest := candles[11]
	latest.Open = 98.5
	latest.High = 98.7
	latest.Low = 98
	latest.Close = 98.1

	det := NewFairValueGap(Config{})
	matches, err := det.Detect(context.Background(), candles, domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}

	m := matches[0]
	if m.Direction != domain.Sell {
		t.Errorf("direction = %v, want SELL", m.Direction)
	}
	if m.PriceLow != 98.7 || m.PriceHigh != 99 {
		t.Errorf("price zone = [%v, %v], want [98.7, 99]", m.PriceLow, m.PriceHigh)
	}
}

func TestFVG_NoGap(t *testing.T) {
	candles := gapSeries(0.2)
	candles[11].Low = 99.9 // overlaps the previous bar

	det := NewFairValueGap(Config{})
	matches, err := det.Detect(context.Background(), candles, domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("overlapping bars should not match, got %+v", matches)
	}
}

func TestFVG_VolumeGate(t *testing.T) {
	candles := gapSeries(0.2)
	candles[11].Volume = 1000

	det := NewFairValueGap(Config{})
	matches, err := det.Detect(context.Background(), candles, domain.TrendContext{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("gap without a volume spike should not match, got %+v", matches)
	}
}
