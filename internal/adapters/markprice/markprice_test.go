package markprice

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradeTools/internal/domain"
	"tradeTools/internal/ports"

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

type stubExchange struct {
	klines    []*domain.Kline
	err       error
	gotSymbol string
	gotStart  time.Time
}

func (s *stubExchange) GetServerTime(ctx context.Context) (time.Time, error) {
	return time.Time{}, nil
}

func (s *stubExchange) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]*domain.Kline, error) {
	return s.klines, s.err
}

func (s *stubExchange) GetKlinesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Kline, error) {
	s.gotSymbol = symbol
	s.gotStart = start
	return s.klines, s.err
}

func TestPair(t *testing.T) {
	assert.Equal(t, "BTCUSDT", Pair("BTC", "USDT"))
	assert.Equal(t, "ETHAUD", Pair("eth", "aud"))
}

func TestClosingPrice(t *testing.T) {
	exchange := &stubExchange{
		klines: []*domain.Kline{{Close: 42000.5}},
	}
	src, err := New(Config{Exchange: exchange, Logger: &mockLogger{}})
	require.NoError(t, err)

	asOf := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)
	price, err := src.ClosingPrice(context.Background(), "BTC", "USDT", asOf)
	require.NoError(t, err)

	assert.Equal(t, 42000.5, price)
	assert.Equal(t, "BTCUSDT", exchange.gotSymbol)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), exchange.gotStart,
		"lookup window starts at midnight of the as-of day")
}

func TestClosingPriceUsesLastKline(t *testing.T) {
	exchange := &stubExchange{
		klines: []*domain.Kline{{Close: 100.0}, {Close: 101.5}},
	}
	src, err := New(Config{Exchange: exchange, Logger: &mockLogger{}})
	require.NoError(t, err)

	price, err := src.ClosingPrice(context.Background(), "ETH", "USDT", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 101.5, price)
}

func TestClosingPriceNoData(t *testing.T) {
	src, err := New(Config{Exchange: &stubExchange{}, Logger: &mockLogger{}})
	require.NoError(t, err)

	_, err = src.ClosingPrice(context.Background(), "BTC", "USDT", time.Now())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestClosingPriceExchangeError(t *testing.T) {
	src, err := New(Config{
		Exchange: &stubExchange{err: errors.New("exchange down")},
		Logger:   &mockLogger{},
	})
	require.NoError(t, err)

	_, err = src.ClosingPrice(context.Background(), "BTC", "USDT", time.Now())
	assert.Error(t, err)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Config{Logger: &mockLogger{}})
	assert.Error(t, err)
	_, err = New(Config{Exchange: &stubExchange{}})
	assert.Error(t, err)
}
