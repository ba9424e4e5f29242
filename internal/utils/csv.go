package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"smartMoneyBot/internal/domain"
)

// WriteCandlesToCSV saves a candle series for later offline runs.
func WriteCandlesToCSV(candles []*domain.Candle, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"timestamp", "symbol", "interval", "open", "high", "low", "close", "volume"})

	for _, c := range candles {
		writer.Write([]string{
			c.Timestamp.Format(time.RFC3339),
			c.Symbol,
			c.Interval,
			strconv.FormatFloat(c.Open, 'f', -1, 64),
			strconv.FormatFloat(c.High, 'f', -1, 64),
			strconv.FormatFloat(c.Low, 'f', -1, 64),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
			strconv.FormatFloat(c.Volume, 'f', -1, 64),
		})
	}
	return writer.Error()
}

// ReadCandlesFromCSV loads a candle series written by WriteCandlesToCSV.
func ReadCandlesFromCSV(filename string) ([]*domain.Candle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV '%s': %w", filename, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	candles := make([]*domain.Candle, 0, len(records)-1)
	for i, rec := range records[1:] { // skip header
		if len(rec) < 8 {
			return nil, fmt.Errorf("row %d of '%s' has %d fields, want 8", i+2, filename, len(rec))
		}
		ts, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d of '%s': bad timestamp '%s': %w", i+2, filename, rec[0], err)
		}
		vals := make([]float64, 5)
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(rec[3+j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d of '%s': bad value '%s': %w", i+2, filename, rec[3+j], err)
			}
			vals[j] = v
		}
		candles = append(candles, &domain.Candle{
			Timestamp: ts,
			Symbol:    rec[1],
			Interval:  rec[2],
			Open:      vals[0],
			High:      vals[1],
			Low:       vals[2],
			Close:     vals[3],
			Volume:    vals[4],
		})
	}
	return candles, nil
}

// WriteSignalsToCSV saves the signals of a backtest run.
func WriteSignalsToCSV(sigs []*domain.Signal, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"id", "symbol", "direction", "entry", "target", "stop", "confidence", "risk_reward", "quality", "strength", "pattern", "created_at", "valid_until"})

	for _, s := range sigs {
		writer.Write([]string{
			s.ID,
			s.Symbol,
			string(s.Direction),
			strconv.FormatFloat(s.EntryPrice, 'f', -1, 64),
			strconv.FormatFloat(s.TargetPrice, 'f', -1, 64),
			strconv.FormatFloat(s.StopLoss, 'f', -1, 64),
			strconv.FormatFloat(s.ConfidenceScore, 'f', -1, 64),
			strconv.FormatFloat(s.RiskReward, 'f', -1, 64),
			strconv.FormatFloat(s.QualityScore, 'f', -1, 64),
			string(s.Strength),
			string(s.Pattern),
			s.CreatedAt.Format(time.RFC3339),
			s.ValidUntil.Format(time.RFC3339),
		})
	}
	return writer.Error()
}
