package ports

import (
	"context"
	"time"

	"tradeTools/internal/domain"
)

// ExchangeClient defines the market-data surface the tools need from an
// exchange. Only public endpoints are used; no order placement.
type ExchangeClient interface {
	// GetServerTime returns the exchange server time.
	GetServerTime(ctx context.Context) (time.Time, error)
	// GetKlines fetches up to limit historical klines ending now.
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]*domain.Kline, error)
	// GetKlinesRange fetches all klines for a symbol/interval between start and end time.
	GetKlinesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Kline, error)
}
