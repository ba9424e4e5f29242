package indicators

import (
	"errors"
	"math"
	"testing"
	"time"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
)

func candlesFromCloses(closes []float64) []*domain.Candle {
	now := time.Now()
	out := make([]*domain.Candle, len(closes))
	for i, c := range closes {
		out[i] = &domain.Candle{
			Timestamp: now.Add(time.Duration(i-len(closes)) * time.Hour),
			Close:     c,
		}
	}
	return out
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name        string
		closes      []float64
		period      int
		expected    float64
		expectError bool
	}{
		{
			name:     "simple average over full window",
			closes:   []float64{100, 102, 104},
			period:   3,
			expected: 102,
		},
		{
			name:     "uses only the trailing window",
			closes:   []float64{1, 1, 100, 102, 104},
			period:   3,
			expected: 102,
		},
		{
			name:        "insufficient data",
			closes:      []float64{100, 102},
			period:      3,
			expectError: true,
		},
		{
			name:        "non-positive period",
			closes:      []float64{100, 102, 104},
			period:      0,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SMA(candlesFromCloses(tt.closes), tt.period)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got value %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("SMA = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEMA(t *testing.T) {
	// Seeded with SMA(100,102,104)=102, then one step toward 110:
	// 102 + (110-102)*0.5 = 106 for period 3 (multiplier 2/(3+1)).
	candles := candlesFromCloses([]float64{100, 102, 104, 110})
	got, err := EMA(candles, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-106) > 1e-9 {
		t.Errorf("EMA = %v, want 106", got)
	}

	if _, err := EMA(candlesFromCloses([]float64{100, 102}), 3); !errors.Is(err, ports.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name        string
		closes      []float64
		period      int
		expected    float64
		expectError bool
	}{
		{
			name:     "alternating gains and losses with smoothing",
			closes:   []float64{100, 102, 101, 103, 102, 104},
			period:   3,
			expected: 77.272727,
		},
		{
			name:   "all gains pins relative strength instead of dividing by zero",
			closes: []float64{100, 102, 104, 106},
			period: 3,
			// RS pinned to 100 -> 100 - 100/101
			expected: 99.009901,
		},
		{
			name:     "all losses",
			closes:   []float64{106, 104, 102, 100},
			period:   3,
			expected: 0,
		},
		{
			name:        "insufficient data",
			closes:      []float64{100, 102, 104},
			period:      3,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RSI(candlesFromCloses(tt.closes), tt.period)
			if tt.expectError {
				if !errors.Is(err, ports.ErrInsufficientData) {
					t.Fatalf("expected ErrInsufficientData, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("RSI = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMACDLine(t *testing.T) {
	// A flat series keeps both EMAs at the price, so the line is zero.
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 100
	}
	got, err := MACDLine(candlesFromCloses(flat), 12, 26)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got) > 1e-9 {
		t.Errorf("MACD line on flat series = %v, want 0", got)
	}

	// A single jump at the end moves the fast EMA further than the slow one.
	jump := append(append([]float64{}, flat...), 105)
	got, err = MACDLine(candlesFromCloses(jump), 12, 26)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got <= 0 {
		t.Errorf("MACD line after upside jump = %v, want > 0", got)
	}

	if _, err := MACDLine(candlesFromCloses(flat), 26, 12); !errors.Is(err, ports.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for inverted periods, got %v", err)
	}
	if _, err := MACDLine(candlesFromCloses(flat[:10]), 12, 26); !errors.Is(err, ports.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
