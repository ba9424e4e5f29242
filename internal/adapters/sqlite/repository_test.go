package sqlite

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "smart-money-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := NewRepository(Config{
		DBPath: dbPath,
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func testSignal(id string, createdAt time.Time) *domain.Signal {
	return &domain.Signal{
		ID:              id,
		Symbol:          "ETHUSDT",
		Direction:       domain.SignalStrongBuy,
		EntryPrice:      2000.0,
		TargetPrice:     2400.0,
		StopLoss:        1840.0,
		ConfidenceScore: 0.87,
		RiskReward:      2.5,
		QualityScore:    0.87,
		Strength:        domain.StrengthStrong,
		Pattern:         domain.PatternBOS,
		CreatedAt:       createdAt,
		ValidUntil:      createdAt.Add(24 * time.Hour),
	}
}

func TestRepository_CreateAndFindSignals(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rowID, err := repo.CreateSignal(ctx, testSignal("sig-1", now))
	require.NoError(t, err)
	assert.Greater(t, rowID, int64(0))

	_, err = repo.CreateSignal(ctx, testSignal("sig-2", now.Add(time.Minute)))
	require.NoError(t, err)

	// Duplicate provenance IDs are rejected by the schema.
	_, err = repo.CreateSignal(ctx, testSignal("sig-1", now))
	assert.Error(t, err)

	sigs, err := repo.FindSignalsBySymbol(ctx, "ETHUSDT", 10)
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	// Most recent first.
	assert.Equal(t, "sig-2", sigs[0].ID)
	assert.Equal(t, "sig-1", sigs[1].ID)

	got := sigs[1]
	assert.Equal(t, domain.SignalStrongBuy, got.Direction)
	assert.Equal(t, domain.PatternBOS, got.Pattern)
	assert.Equal(t, domain.StrengthStrong, got.Strength)
	assert.InDelta(t, 2000.0, got.EntryPrice, 1e-9)
	assert.InDelta(t, 2.5, got.RiskReward, 1e-9)
	assert.True(t, got.CreatedAt.Equal(now), "created_at should round-trip")

	sigs, err = repo.FindSignalsBySymbol(ctx, "BTCUSDT", 10)
	require.NoError(t, err)
	assert.Empty(t, sigs)

	sigs, err = repo.FindSignalsBySymbol(ctx, "ETHUSDT", 1)
	require.NoError(t, err)
	assert.Len(t, sigs, 1)
}

func TestRepository_FindActiveSignals(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	_, err := repo.CreateSignal(ctx, testSignal("live", now.Add(-time.Hour)))
	require.NoError(t, err)
	_, err = repo.CreateSignal(ctx, testSignal("expired", now.Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = repo.CreateSignal(ctx, testSignal("future", now.Add(time.Hour)))
	require.NoError(t, err)

	active, err := repo.FindActiveSignals(ctx, "ETHUSDT", now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "live", active[0].ID)
}

func TestRepository_CreateAndFindBacktests(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rec := &ports.BacktestRecord{
		Symbol:       "ETHUSDT",
		StartTime:    now.AddDate(-1, 0, 0),
		EndTime:      now,
		TotalSignals: 200,
		WinRate:      0.61,
		ProfitFactor: 3.2,
		MaxDrawdown:  0.18,
		SharpeRatio:  1.4,
		TotalReturn:  11.5,
		ParamsJSON:   `{"take_profit_pct":0.2}`,
		CreatedAt:    now,
	}

	rowID, err := repo.CreateBacktest(ctx, rec)
	require.NoError(t, err)
	assert.Greater(t, rowID, int64(0))
	assert.Equal(t, rowID, rec.ID)

	recs, err := repo.FindBacktestsBySymbol(ctx, "ETHUSDT", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	assert.Equal(t, rec.TotalSignals, got.TotalSignals)
	assert.True(t, math.Abs(got.WinRate-0.61) < 1e-9)
	assert.Equal(t, rec.ParamsJSON, got.ParamsJSON)
	assert.True(t, got.StartTime.Equal(rec.StartTime))

	recs, err = repo.FindBacktestsBySymbol(ctx, "BTCUSDT", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
