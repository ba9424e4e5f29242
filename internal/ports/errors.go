package ports

import "errors"

// Standard application-level errors.
// Adapters and strategy components wrap underlying errors with these
// sentinels so callers can dispatch on errors.Is.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrTimeout            = errors.New("operation timed out")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Detection Errors
	// The walk-forward simulator inspects these to pick "skip day" vs
	// "abort run": insufficient data and degenerate numerics are recovered
	// locally, a detection failure skips the day and the run continues.
	ErrInsufficientData  = errors.New("not enough bars for the requested lookback")
	ErrNumericDegenerate = errors.New("degenerate numeric input (zero divisor)")
	ErrDetectionFailed   = errors.New("pattern detection failed")

	// Market Data Errors
	ErrExchangeUnavailable = errors.New("exchange API is unavailable")
	ErrConnectionFailed    = errors.New("failed to connect to the exchange")
	ErrRateLimited         = errors.New("API rate limit exceeded")

	// Database Errors
	ErrDuplicateEntry = errors.New("database record already exists")
	ErrDBConnection   = errors.New("database connection error")
	ErrQueryFailed    = errors.New("database query failed")
)
