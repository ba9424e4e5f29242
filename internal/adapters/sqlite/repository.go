package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.SignalRepository and
// ports.BacktestRepository interfaces using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository: %w", ports.ErrConfigurationError)
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/smart_money.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally, but the Go driver benefits
	// from a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
// NOTE: This is a basic approach. A proper migration tool is recommended for production.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS signals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		signal_id TEXT NOT NULL UNIQUE,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		target_price REAL NOT NULL,
		stop_loss REAL NOT NULL,
		confidence REAL NOT NULL,
		risk_reward REAL NOT NULL,
		quality REAL NOT NULL,
		strength TEXT NOT NULL,
		pattern TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		valid_until TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS backtest_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		total_signals INTEGER NOT NULL,
		win_rate REAL NOT NULL,
		profit_factor REAL NOT NULL,
		max_drawdown REAL NOT NULL,
		sharpe_ratio REAL NOT NULL,
		total_return REAL NOT NULL,
		params_json TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	-- Add indexes for common lookups
	CREATE INDEX IF NOT EXISTS idx_signals_symbol_created_at ON signals (symbol, created_at);
	CREATE INDEX IF NOT EXISTS idx_backtests_symbol_created_at ON backtest_results (symbol, created_at);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- SignalRepository Implementation ---

// CreateSignal saves a new signal and returns its row ID.
func (r *Repository) CreateSignal(ctx context.Context, sig *domain.Signal) (int64, error) {
	const query = `
	INSERT INTO signals (signal_id, symbol, direction, entry_price, target_price, stop_loss,
	                     confidence, risk_reward, quality, strength, pattern, created_at, valid_until)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		sig.ID, sig.Symbol, sig.Direction, sig.EntryPrice, sig.TargetPrice, sig.StopLoss,
		sig.ConfidenceScore, sig.RiskReward, sig.QualityScore, sig.Strength, sig.Pattern,
		sig.CreatedAt, sig.ValidUntil)
	if err != nil {
		return 0, fmt.Errorf("failed to insert signal for symbol %s: %w", sig.Symbol, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for signal %s: %w", sig.Symbol, err)
	}
	r.logger.Debug(ctx, "Signal persisted", map[string]interface{}{"rowID": id, "signalID": sig.ID, "symbol": sig.Symbol})
	return id, nil
}

// FindSignalsBySymbol retrieves the most recent signals for a symbol, up to a limit.
func (r *Repository) FindSignalsBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Signal, error) {
	const query = `
	SELECT signal_id, symbol, direction, entry_price, target_price, stop_loss,
	       confidence, risk_reward, quality, strength, pattern, created_at, valid_until
	FROM signals
	WHERE symbol = ? ORDER BY created_at DESC LIMIT ?`

	return r.querySignals(ctx, query, symbol, limit)
}

// FindActiveSignals retrieves signals whose validity window covers now.
func (r *Repository) FindActiveSignals(ctx context.Context, symbol string, now time.Time) ([]*domain.Signal, error) {
	const query = `
	SELECT signal_id, symbol, direction, entry_price, target_price, stop_loss,
	       confidence, risk_reward, quality, strength, pattern, created_at, valid_until
	FROM signals
	WHERE symbol = ? AND created_at <= ? AND valid_until >= ?
	ORDER BY created_at DESC`

	return r.querySignals(ctx, query, symbol, now, now)
}

func (r *Repository) querySignals(ctx context.Context, query string, args ...interface{}) ([]*domain.Signal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	sigs := make([]*domain.Signal, 0)
	for rows.Next() {
		sig, err := scanSignal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signal row: %w", err)
		}
		sigs = append(sigs, sig)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signal rows: %w", err)
	}
	return sigs, nil
}

// --- BacktestRepository Implementation ---

// CreateBacktest saves a completed run and returns its row ID.
func (r *Repository) CreateBacktest(ctx context.Context, rec *ports.BacktestRecord) (int64, error) {
	const query = `
	INSERT INTO backtest_results (symbol, start_time, end_time, total_signals, win_rate,
	                              profit_factor, max_drawdown, sharpe_ratio, total_return,
	                              params_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		rec.Symbol, rec.StartTime, rec.EndTime, rec.TotalSignals, rec.WinRate,
		rec.ProfitFactor, rec.MaxDrawdown, rec.SharpeRatio, rec.TotalReturn,
		rec.ParamsJSON, rec.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert backtest result for symbol %s: %w", rec.Symbol, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for backtest result %s: %w", rec.Symbol, err)
	}
	rec.ID = id // Update the domain object with the ID
	r.logger.Debug(ctx, "Backtest result persisted", map[string]interface{}{"rowID": id, "symbol": rec.Symbol})
	return id, nil
}

// FindBacktestsBySymbol retrieves the most recent runs for a symbol, up to a limit.
func (r *Repository) FindBacktestsBySymbol(ctx context.Context, symbol string, limit int) ([]*ports.BacktestRecord, error) {
	const query = `
	SELECT id, symbol, start_time, end_time, total_signals, win_rate, profit_factor,
	       max_drawdown, sharpe_ratio, total_return, params_json, created_at
	FROM backtest_results
	WHERE symbol = ? ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results for symbol %s: %w", symbol, err)
	}
	defer rows.Close()

	recs := make([]*ports.BacktestRecord, 0)
	for rows.Next() {
		rec := &ports.BacktestRecord{}
		err := rows.Scan(
			&rec.ID, &rec.Symbol, &rec.StartTime, &rec.EndTime, &rec.TotalSignals,
			&rec.WinRate, &rec.ProfitFactor, &rec.MaxDrawdown, &rec.SharpeRatio,
			&rec.TotalReturn, &rec.ParamsJSON, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backtest result row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backtest result rows: %w", err)
	}
	return recs, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSignal scans a row into a domain.Signal struct.
func scanSignal(s scanner) (*domain.Signal, error) {
	sig := &domain.Signal{}
	var direction, strength, pattern string
	err := s.Scan(
		&sig.ID, &sig.Symbol, &direction, &sig.EntryPrice, &sig.TargetPrice, &sig.StopLoss,
		&sig.ConfidenceScore, &sig.RiskReward, &sig.QualityScore, &strength, &pattern,
		&sig.CreatedAt, &sig.ValidUntil)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	sig.Direction = domain.SignalDirection(direction)
	sig.Strength = domain.SignalStrength(strength)
	sig.Pattern = domain.PatternKind(pattern)
	return sig, nil
}
