// Package csvloader reads the OrderClerk trade export into a domain.Ledger.
// All row validation and recovery lives here: malformed rows are skipped
// with a diagnostic and never reach the ledger.
package csvloader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"tradeTools/internal/domain"
	"tradeTools/internal/ports"
)

// SentinelDateOut is the "position still open" marker used by the OrderClerk
// export. It must be checked before any date parsing is attempted.
const SentinelDateOut = "0001-01-01 00:00:00"

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var requiredColumns = []string{
	"Symbol", "Strategy", "Side", "Shares", "DateIn", "QtyIn", "PriceIn",
	"FeesIn", "Currency", "DateOut", "QtyOut", "PriceOut", "FeesOut",
}

// Config holds configuration for the trade CSV loader.
type Config struct {
	Logger ports.Logger
	// Quotes marks open positions to market. Optional; when nil open
	// positions keep whatever prices the export carried.
	Quotes ports.QuoteSource
}

// Loader parses trade CSV files into ledgers.
type Loader struct {
	logger ports.Logger
	quotes ports.QuoteSource
	now    func() time.Time
}

// New creates a trade CSV loader.
func New(cfg Config) (*Loader, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for trade CSV loader")
	}
	return &Loader{logger: cfg.Logger, quotes: cfg.Quotes, now: time.Now}, nil
}

// Load reads the trade CSV at path and returns the populated ledger.
// Rows with a blank strategy are dropped; rows that fail to parse are
// skipped with a diagnostic. A missing file or empty header is an error.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Ledger, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade CSV '%s': %w", path, err)
	}
	defer file.Close()

	l.logger.Info(ctx, "Reading trade CSV", map[string]interface{}{"path": path})
	return l.read(ctx, file)
}

func (l *Loader) read(ctx context.Context, r io.Reader) (*domain.Ledger, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("trade CSV is empty or has no header: %w", ports.ErrInvalidRequest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trade CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("trade CSV header lacks column %q: %w", name, ports.ErrMissingField)
		}
	}

	ledger := domain.NewLedger()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.Warn(ctx, "Skipping unreadable trade row", map[string]interface{}{"error": err.Error()})
			continue
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		strategy := strings.TrimSpace(field("Strategy"))
		if strategy == "" {
			l.logger.Info(ctx, "Skipping trade with missing strategy", map[string]interface{}{
				"tradeID": field("TradeID"),
				"symbol":  field("Symbol"),
				"dateIn":  field("DateIn"),
			})
			continue
		}

		trade, err := parseRow(field, strategy)
		if err != nil {
			l.logger.Warn(ctx, "Skipping malformed trade row", map[string]interface{}{
				"tradeID": field("TradeID"),
				"symbol":  field("Symbol"),
				"error":   err.Error(),
			})
			continue
		}

		l.markToMarket(ctx, &trade)
		ledger.AddTrade(trade)
	}

	l.logger.Info(ctx, "Trade CSV loaded", map[string]interface{}{"trades": ledger.Len()})
	return ledger, nil
}

// parseRow validates every field before the Trade value is constructed; a
// partially parsed trade never escapes.
func parseRow(field func(string) string, strategy string) (domain.Trade, error) {
	side, err := parseInt("Side", field("Side"))
	if err != nil {
		return domain.Trade{}, err
	}
	shares, err := parseFloat("Shares", field("Shares"))
	if err != nil {
		return domain.Trade{}, err
	}
	dateIn, err := parseDate("DateIn", field("DateIn"))
	if err != nil {
		return domain.Trade{}, err
	}
	qtyIn, err := parseFloat("QtyIn", field("QtyIn"))
	if err != nil {
		return domain.Trade{}, err
	}
	priceIn, err := parseFloat("PriceIn", field("PriceIn"))
	if err != nil {
		return domain.Trade{}, err
	}
	feesIn, err := parseFloat("FeesIn", field("FeesIn"))
	if err != nil {
		return domain.Trade{}, err
	}
	qtyOut, err := parseFloat("QtyOut", field("QtyOut"))
	if err != nil {
		return domain.Trade{}, err
	}
	priceOut, err := parseFloat("PriceOut", field("PriceOut"))
	if err != nil {
		return domain.Trade{}, err
	}
	feesOut, err := parseFloat("FeesOut", field("FeesOut"))
	if err != nil {
		return domain.Trade{}, err
	}

	// The sentinel check runs before any attempt to parse the exit date.
	var dateOut *time.Time
	if raw := field("DateOut"); raw != SentinelDateOut {
		parsed, err := parseDate("DateOut", raw)
		if err != nil {
			return domain.Trade{}, err
		}
		dateOut = &parsed
	}

	return domain.Trade{
		Side:     side,
		Symbol:   field("Symbol"),
		Shares:   shares,
		DateIn:   dateIn,
		QtyIn:    qtyIn,
		PriceIn:  priceIn,
		FeesIn:   feesIn,
		Currency: field("Currency"),
		DateOut:  dateOut,
		QtyOut:   qtyOut,
		PriceOut: priceOut,
		FeesOut:  feesOut,
		Strategy: strategy,
	}, nil
}

// markToMarket fills the mark price for open positions from the quote
// source. Lookup failures degrade to a zero price with a warning; a bad
// quote never fails the load.
func (l *Loader) markToMarket(ctx context.Context, trade *domain.Trade) {
	if l.quotes == nil || trade.DateOut != nil || trade.QtyOut != 0 {
		return
	}
	asOf := priorBusinessDay(l.now())
	price, err := l.quotes.ClosingPrice(ctx, trade.Symbol, trade.Currency, asOf)
	if err != nil {
		l.logger.Warn(ctx, "Failed to fetch mark price, using zero", map[string]interface{}{
			"symbol": trade.Symbol,
			"error":  err.Error(),
		})
		price = 0
	}
	trade.M2MPrice = price
	if trade.PriceOut == 0 {
		trade.PriceOut = price
	}
}

func priorBusinessDay(now time.Time) time.Time {
	day := now.AddDate(0, 0, -1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

func parseInt(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("field %s=%q: %w", name, value, ports.ErrMalformedRow)
	}
	return v, nil
}

func parseFloat(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("field %s=%q: %w", name, value, ports.ErrMalformedRow)
	}
	return v, nil
}

func parseDate(name, value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("field %s=%q: %w", name, value, ports.ErrMalformedRow)
}
