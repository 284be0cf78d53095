// Package markprice resolves closing prices for open positions from
// exchange kline data.
package markprice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradeTools/internal/ports"
)

// Source implements ports.QuoteSource over an exchange client. The venue
// pair is derived from the instrument symbol and its quote currency
// (e.g. "BTC" in "USDT" becomes "BTCUSDT").
type Source struct {
	exchange ports.ExchangeClient
	logger   ports.Logger
}

// Config holds configuration for the mark price source.
type Config struct {
	Exchange ports.ExchangeClient
	Logger   ports.Logger
}

// New creates a mark price source.
func New(cfg Config) (*Source, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for mark price source")
	}
	if cfg.Exchange == nil {
		return nil, fmt.Errorf("exchange client is required for mark price source")
	}
	return &Source{exchange: cfg.Exchange, logger: cfg.Logger}, nil
}

// ClosingPrice returns the daily close of the symbol's venue pair for the
// day containing asOf.
func (s *Source) ClosingPrice(ctx context.Context, symbol, currency string, asOf time.Time) (float64, error) {
	pair := Pair(symbol, currency)
	start := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	klines, err := s.exchange.GetKlinesRange(ctx, pair, "1d", start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch daily kline for %s: %w", pair, err)
	}
	if len(klines) == 0 {
		return 0, fmt.Errorf("no daily kline for %s as of %s: %w", pair, start.Format("2006-01-02"), ports.ErrNotFound)
	}

	closing := klines[len(klines)-1].Close
	s.logger.Debug(ctx, "Resolved closing price", map[string]interface{}{
		"pair":  pair,
		"asOf":  start.Format("2006-01-02"),
		"close": closing,
	})
	return closing, nil
}

// Pair maps an instrument symbol and quote currency to the exchange pair.
func Pair(symbol, currency string) string {
	return strings.ToUpper(symbol) + strings.ToUpper(currency)
}
