package ports

import (
	"context"

	"tradeTools/internal/domain"
)

// TradeRepository defines the interface for archiving loaded trade ledgers.
// The archive is a snapshot of the most recent report run, not an event log.
type TradeRepository interface {
	// ReplaceAll clears the archive and stores the given trades.
	ReplaceAll(ctx context.Context, trades []domain.Trade) error
	// FindAll retrieves all archived trades in stored order.
	FindAll(ctx context.Context) ([]domain.Trade, error)
	// FindByStrategy retrieves archived trades carrying the given strategy label.
	FindByStrategy(ctx context.Context, strategy string) ([]domain.Trade, error)
}
