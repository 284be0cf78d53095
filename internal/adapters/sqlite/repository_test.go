package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradeTools/internal/domain"

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

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "trade-tools-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := NewRepository(Config{
		DBPath: dbPath,
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func sampleTrades() []domain.Trade {
	entry := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	exit := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	return []domain.Trade{
		{
			Side: domain.SideLong, Symbol: "AAPL", Shares: 100, DateIn: entry,
			QtyIn: 100, PriceIn: 150.0, FeesIn: 10.0, Currency: "USD",
			DateOut: &exit, QtyOut: 100, PriceOut: 155.0, FeesOut: 10.0,
			Strategy: "Apple",
		},
		{
			Side: domain.SideLong, Symbol: "MSFT", Shares: 75, DateIn: entry,
			QtyIn: 75, PriceIn: 999.0, FeesIn: 7.5, Currency: "USD",
			M2MPrice: 312.5, Strategy: "Long",
		},
	}
}

func TestRepository_ReplaceAllAndFindAll(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleTrades()))

	found, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "AAPL", found[0].Symbol)
	assert.Equal(t, 150.0, found[0].PriceIn)
	require.NotNil(t, found[0].DateOut)
	assert.Equal(t, "2023-01-10", found[0].DateOut.UTC().Format("2006-01-02"))
	assert.True(t, found[0].IsRealized())

	assert.Equal(t, "MSFT", found[1].Symbol)
	assert.Nil(t, found[1].DateOut, "open position keeps NULL exit date")
	assert.Equal(t, 312.5, found[1].M2MPrice)
	assert.False(t, found[1].IsRealized())
}

func TestRepository_ReplaceAllIsSnapshot(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleTrades()))
	// A second load replaces the archive instead of appending to it.
	require.NoError(t, repo.ReplaceAll(ctx, sampleTrades()[:1]))

	found, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "AAPL", found[0].Symbol)
}

func TestRepository_FindByStrategy(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleTrades()))

	found, err := repo.FindByStrategy(ctx, "Apple")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "AAPL", found[0].Symbol)

	none, err := repo.FindByStrategy(ctx, "Unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_EmptyArchive(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	found, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestNewRepository_RequiresLogger(t *testing.T) {
	_, err := NewRepository(Config{DBPath: filepath.Join(t.TempDir(), "test.db")})
	assert.Error(t, err)
}
