package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradeTools/internal/domain"
	"tradeTools/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.TradeRepository using SQLite. The archive is
// a snapshot of the last loaded ledger so other tools can query it without
// re-reading the CSV export.
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
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/trade_tools.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
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

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		side INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		shares REAL NOT NULL,
		date_in TIMESTAMP NOT NULL,
		qty_in REAL NOT NULL,
		price_in REAL NOT NULL,
		fees_in REAL NOT NULL,
		currency TEXT NOT NULL,
		date_out TIMESTAMP DEFAULT NULL,
		qty_out REAL NOT NULL,
		price_out REAL NOT NULL,
		fees_out REAL NOT NULL,
		m2m_price REAL NOT NULL,
		strategy TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades (strategy);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
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

// ReplaceAll clears the archive and stores the given trades in one transaction.
func (r *Repository) ReplaceAll(ctx context.Context, trades []domain.Trade) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", ports.ErrDBConnection)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return fmt.Errorf("failed to clear trade archive: %w", err)
	}

	const query = `
	INSERT INTO trades (side, symbol, shares, date_in, qty_in, price_in, fees_in,
		currency, date_out, qty_out, price_out, fees_out, m2m_price, strategy)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, t := range trades {
		var dateOut interface{}
		if t.DateOut != nil {
			dateOut = *t.DateOut
		}
		_, err := tx.ExecContext(ctx, query,
			t.Side, t.Symbol, t.Shares, t.DateIn, t.QtyIn, t.PriceIn, t.FeesIn,
			t.Currency, dateOut, t.QtyOut, t.PriceOut, t.FeesOut, t.M2MPrice, t.Strategy)
		if err != nil {
			return fmt.Errorf("failed to insert trade for symbol %s: %w", t.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade archive: %w", ports.ErrUpdateFailed)
	}
	r.logger.Debug(ctx, "Trade archive replaced", map[string]interface{}{"trades": len(trades)})
	return nil
}

// FindAll retrieves all archived trades in stored order.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Trade, error) {
	const query = `
	SELECT side, symbol, shares, date_in, qty_in, price_in, fees_in,
		currency, date_out, qty_out, price_out, fees_out, m2m_price, strategy
	FROM trades ORDER BY id`
	return r.queryTrades(ctx, query)
}

// FindByStrategy retrieves archived trades carrying the given strategy label.
func (r *Repository) FindByStrategy(ctx context.Context, strategy string) ([]domain.Trade, error) {
	const query = `
	SELECT side, symbol, shares, date_in, qty_in, price_in, fees_in,
		currency, date_out, qty_out, price_out, fees_out, m2m_price, strategy
	FROM trades WHERE strategy = ? ORDER BY id`
	return r.queryTrades(ctx, query, strategy)
}

func (r *Repository) queryTrades(ctx context.Context, query string, args ...interface{}) ([]domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade archive: %w", ports.ErrQueryFailed)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		var dateOut sql.NullTime
		err := rows.Scan(&t.Side, &t.Symbol, &t.Shares, &t.DateIn, &t.QtyIn, &t.PriceIn, &t.FeesIn,
			&t.Currency, &dateOut, &t.QtyOut, &t.PriceOut, &t.FeesOut, &t.M2MPrice, &t.Strategy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archived trade: %w", err)
		}
		if dateOut.Valid {
			exit := dateOut.Time
			t.DateOut = &exit
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating trade archive: %w", err)
	}
	return trades, nil
}
