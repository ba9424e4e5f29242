// Package binanceclient adapts the Binance futures REST API to the
// ports.MarketDataProvider interface. The engine only reads historical
// candles; no order or account endpoints are exposed.
package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"

	"smartMoneyBot/internal/domain"
	"smartMoneyBot/internal/ports"
)

const (
	baseURLProduction = "https://fapi.binance.com"
	baseURLTestnet    = "https://testnet.binancefuture.com"

	// maxKlinesPerRequest is the Binance futures API page size limit.
	maxKlinesPerRequest = 1500
)

// Client implements ports.MarketDataProvider against Binance futures.
type Client struct {
	futuresClient *futures.Client
	logger        ports.Logger
}

// Config holds configuration for the Binance market-data client.
type Config struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
	Logger     ports.Logger
}

// New creates a new Binance market-data adapter. Empty API keys are allowed
// since kline endpoints are public.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client: %w", ports.ErrConfigurationError)
	}

	client := futures.NewClient(cfg.APIKey, cfg.SecretKey)

	// Set BaseURL directly instead of using the global futures.UseTestnet
	if cfg.UseTestnet {
		client.BaseURL = baseURLTestnet
	} else {
		client.BaseURL = baseURLProduction
	}
	cfg.Logger.Info(context.Background(), "Binance client configured", map[string]interface{}{
		"baseURL": client.BaseURL,
		"testnet": cfg.UseTestnet,
	})

	return &Client{futuresClient: client, logger: cfg.Logger}, nil
}

// Ping checks connectivity to the exchange API.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.futuresClient.NewPingService().Do(ctx); err != nil {
		return c.handleError(ctx, err, "Ping")
	}
	return nil
}

// GetCandles retrieves the most recent candles for a symbol, up to limit.
func (c *Client) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]*domain.Candle, error) {
	op := "GetCandles"
	klines, err := c.futuresClient.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit).Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, op)
	}

	candles := make([]*domain.Candle, 0, len(klines))
	for _, k := range klines {
		candle, err := translateKline(k, symbol, interval)
		if err != nil {
			return nil, c.handleError(ctx, fmt.Errorf("failed to translate kline: %w", err), op)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// GetCandlesRange fetches all candles for a symbol/interval between start
// and end, paging through the API limit.
func (c *Client) GetCandlesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Candle, error) {
	op := "GetCandlesRange"
	var all []*domain.Candle
	from := start

	for {
		klines, err := c.futuresClient.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(from.UnixMilli()).
			EndTime(end.UnixMilli()).
			Limit(maxKlinesPerRequest).
			Do(ctx)
		if err != nil {
			return nil, c.handleError(ctx, err, op)
		}
		if len(klines) == 0 {
			break
		}
		for _, k := range klines {
			candle, err := translateKline(k, symbol, interval)
			if err != nil {
				return nil, c.handleError(ctx, fmt.Errorf("failed to translate kline range: %w", err), op)
			}
			all = append(all, candle)
		}
		last := klines[len(klines)-1]
		from = time.UnixMilli(last.CloseTime)
		if from.After(end) || len(klines) < maxKlinesPerRequest {
			break
		}
	}

	return all, nil
}

// handleError translates common Binance API errors into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "originalError": err.Error()}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		fields["apiErrorCode"] = apiErr.Code
		fields["apiErrorMessage"] = apiErr.Message

		var mappedErr error
		switch apiErr.Code {
		case -1003: // Too many requests
			mappedErr = ports.ErrRateLimited
		case -1021: // Timestamp outside of the recvWindow
			mappedErr = ports.ErrTimeout
		case -1100, -1101, -1102, -1103, -1104, -1105, -1106, -1120, -1121: // Parameter/request format errors
			mappedErr = ports.ErrInvalidRequest
		default:
			mappedErr = ports.ErrExchangeUnavailable
		}
		finalErr := fmt.Errorf("%s failed: %w: %w", operation, mappedErr, err)
		c.logger.Error(ctx, err, fmt.Sprintf("%s failed with API error", operation), fields)
		return finalErr
	}

	var finalErr error
	if errors.Is(err, context.DeadlineExceeded) {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
	} else if errors.Is(err, context.Canceled) {
		finalErr = fmt.Errorf("%s operation canceled: %w: %w", operation, ports.ErrContextCanceled, err)
	} else if strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "connection reset by peer") ||
		strings.Contains(err.Error(), "use of closed network connection") {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrConnectionFailed, err)
	} else {
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrUnknown, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

// translateKline converts a Binance kline into a domain candle.
func translateKline(k *futures.Kline, symbol, interval string) (*domain.Candle, error) {
	if k == nil {
		return nil, errors.New("received nil kline")
	}
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing open price '%s': %w", k.Open, err)
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing high price '%s': %w", k.High, err)
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing low price '%s': %w", k.Low, err)
	}
	cls, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing close price '%s': %w", k.Close, err)
	}
	vol, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing volume '%s': %w", k.Volume, err)
	}

	return &domain.Candle{
		Timestamp: time.UnixMilli(k.OpenTime),
		Symbol:    symbol, // Use passed symbol as it's not in futures.Kline
		Interval:  interval,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     cls,
		Volume:    vol,
	}, nil
}
