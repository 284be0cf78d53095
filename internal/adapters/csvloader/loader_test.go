package csvloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

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

// stubQuotes returns a fixed price and records lookups.
type stubQuotes struct {
	price   float64
	lookups []string
}

func (s *stubQuotes) ClosingPrice(ctx context.Context, symbol, currency string, asOf time.Time) (float64, error) {
	s.lookups = append(s.lookups, symbol)
	return s.price, nil
}

const tradeCSVHeader = "TradeID,Symbol,Strategy,Side,Shares,DateIn,QtyIn,PriceIn,FeesIn,Currency,DateOut,QtyOut,PriceOut,FeesOut"

func writeTradeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "OrderClerkTrades.csv")
	content := tradeCSVHeader + "\n"
	for _, r := range rows {
		content += r + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestLoader(t *testing.T, quotes *stubQuotes) *Loader {
	t.Helper()
	cfg := Config{Logger: &mockLogger{}}
	if quotes != nil {
		cfg.Quotes = quotes
	}
	loader, err := New(cfg)
	require.NoError(t, err)
	return loader
}

func TestLoad_RealizedTrade(t *testing.T) {
	path := writeTradeCSV(t,
		`1,AAPL,Apple,1,100,2023-01-01 00:00:00,100,150.0,10.0,USD,2023-01-10 00:00:00,100,155.0,10.0`,
	)
	loader := newTestLoader(t, nil)

	ledger, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, ledger.Len())

	trades := ledger.Trades()
	trade := trades[0]
	assert.Equal(t, "AAPL", trade.Symbol)
	assert.Equal(t, "Apple", trade.Strategy)
	assert.Equal(t, 1, trade.Side)
	assert.Equal(t, 100.0, trade.QtyIn)
	assert.Equal(t, 150.0, trade.PriceIn)
	require.NotNil(t, trade.DateOut)
	assert.Equal(t, "2023-01-10", trade.DateOut.Format("2006-01-02"))
	assert.True(t, trade.IsRealized())
	assert.Equal(t, 480.0, trade.NetProfitLoss())
}

func TestLoad_SkipsBlankStrategy(t *testing.T) {
	path := writeTradeCSV(t,
		`1,AAPL,  ,1,100,2023-01-01 00:00:00,100,150.0,10.0,USD,2023-01-10 00:00:00,100,155.0,10.0`,
		`2,GOOGL,Google,1,100,2023-01-01 00:00:00,100,2000.0,5.0,USD,2023-01-15 00:00:00,100,2100.0,5.0`,
	)
	loader := newTestLoader(t, nil)

	ledger, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, "GOOGL", ledger.Trades()[0].Symbol)
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{
			name: "non-numeric side",
			row:  `1,AAPL,Apple,long,100,2023-01-01 00:00:00,100,150.0,10.0,USD,2023-01-10 00:00:00,100,155.0,10.0`,
		},
		{
			name: "non-numeric price",
			row:  `1,AAPL,Apple,1,100,2023-01-01 00:00:00,100,abc,10.0,USD,2023-01-10 00:00:00,100,155.0,10.0`,
		},
		{
			name: "unparsable exit date",
			row:  `1,AAPL,Apple,1,100,2023-01-01 00:00:00,100,150.0,10.0,USD,not-a-date,100,155.0,10.0`,
		},
		{
			name: "short record",
			row:  `1,AAPL,Apple,1,100`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTradeCSV(t, tt.row)
			loader := newTestLoader(t, nil)

			ledger, err := loader.Load(context.Background(), path)
			require.NoError(t, err, "malformed rows are skipped, not fatal")
			assert.Equal(t, 0, ledger.Len())
		})
	}
}

func TestLoad_SentinelDateMeansOpenPosition(t *testing.T) {
	quotes := &stubQuotes{price: 123.45}
	path := writeTradeCSV(t,
		`1,MSFT,Long,1,75,2023-01-01 00:00:00,75,999.0,7.5,USD,0001-01-01 00:00:00,0,0,0`,
	)
	loader := newTestLoader(t, quotes)

	ledger, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, ledger.Len())

	trade := ledger.Trades()[0]
	assert.Nil(t, trade.DateOut, "sentinel exit date maps to no exit date")
	assert.False(t, trade.IsRealized())
	assert.Equal(t, 123.45, trade.M2MPrice)
	assert.Equal(t, 123.45, trade.PriceOut, "zero exit price is substituted with the mark price")
	assert.Equal(t, []string{"MSFT"}, quotes.lookups)
}

func TestLoad_NoQuoteLookupForClosedTrades(t *testing.T) {
	quotes := &stubQuotes{price: 123.45}
	path := writeTradeCSV(t,
		`1,AAPL,Apple,1,100,2023-01-01 00:00:00,100,150.0,10.0,USD,2023-01-10 00:00:00,100,155.0,10.0`,
	)
	loader := newTestLoader(t, quotes)

	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, quotes.lookups)
}

func TestLoad_PartialExitKeepsRecordedPrices(t *testing.T) {
	// Sentinel exit date but a recorded exit quantity: the quantity-based
	// rule still treats it as unrealized, and no mark price is fetched.
	quotes := &stubQuotes{price: 123.45}
	path := writeTradeCSV(t,
		`1,AAPL,Apple,1,100,2023-01-01 00:00:00,100,150.0,10.0,USD,0001-01-01 00:00:00,50,155.0,5.0`,
	)
	loader := newTestLoader(t, quotes)

	ledger, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, ledger.Len())
	assert.Empty(t, quotes.lookups)
	assert.Equal(t, 155.0, ledger.Trades()[0].PriceOut)
}

func TestLoad_MissingFile(t *testing.T) {
	loader := newTestLoader(t, nil)
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	loader := newTestLoader(t, nil)
	_, err := loader.Load(context.Background(), path)
	assert.Error(t, err, "empty file has no header")
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Symbol,Strategy\nAAPL,Apple\n"), 0644))

	loader := newTestLoader(t, nil)
	_, err := loader.Load(context.Background(), path)
	assert.Error(t, err)
}

func TestPriorBusinessDay(t *testing.T) {
	tests := []struct {
		now  string
		want string
	}{
		{"2023-01-10", "2023-01-09"}, // Tuesday -> Monday
		{"2023-01-09", "2023-01-06"}, // Monday -> Friday
		{"2023-01-08", "2023-01-06"}, // Sunday -> Friday
	}
	for _, tt := range tests {
		now, err := time.Parse("2006-01-02", tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, priorBusinessDay(now).Format("2006-01-02"))
	}
}
