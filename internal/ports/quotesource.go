package ports

import (
	"context"
	"time"
)

// QuoteSource supplies a single closing price for an instrument.
// The currency selects the lookup venue; no conversion is performed.
// The trade loader uses it to mark open positions to market.
type QuoteSource interface {
	// ClosingPrice returns the closing price of symbol as of the given date.
	ClosingPrice(ctx context.Context, symbol, currency string, asOf time.Time) (float64, error)
}
