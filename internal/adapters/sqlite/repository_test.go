package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tradecoach/internal/domain"

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

	tmpDir, err := os.MkdirTemp("", "tradecoach-test-*")
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

func sampleTrades() []domain.TradeRecord {
	return []domain.TradeRecord{
		{
			Date:       "2024-01-02",
			Ticker:     "AAPL",
			Action:     domain.Buy,
			Quantity:   10,
			Price:      150,
			Total:      1500,
			Sector:     "Technology",
			Account:    "taxable",
			Instrument: domain.InstrumentEquity,
		},
		{
			Date:       "2024-02-15",
			Ticker:     "AAPL",
			Action:     domain.Sell,
			Quantity:   5,
			Price:      170,
			Total:      850,
			Sector:     "Technology",
			Account:    "taxable",
			Instrument: domain.InstrumentEquity,
		},
	}
}

func TestRepository_ReplaceAndFindTrades(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	trades := sampleTrades()
	require.NoError(t, repo.ReplaceTrades(ctx, "user1", trades))

	found, err := repo.FindTrades(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, trades[0], found[0])
	assert.Equal(t, trades[1], found[1])

	count, err := repo.CountTrades(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRepository_ReplaceTradesOverwritesPriorBatch(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceTrades(ctx, "user1", sampleTrades()))
	require.NoError(t, repo.ReplaceTrades(ctx, "user1", sampleTrades()[:1]))

	found, err := repo.FindTrades(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, found, 1, "second batch should fully replace the first")
}

func TestRepository_TradesScopedByUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.ReplaceTrades(ctx, "user1", sampleTrades()))

	found, err := repo.FindTrades(ctx, "user2")
	require.NoError(t, err)
	assert.Empty(t, found)

	count, err := repo.CountTrades(ctx, "user2")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_ReplaceAndFindPositions(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	positions := []domain.Position{
		{
			Ticker:             "AAPL",
			Sector:             "Technology",
			Instrument:         domain.InstrumentEquity,
			Shares:             5,
			AvgCost:            150,
			RealizedPNL:        100,
			RealizedPNLPercent: 13.3,
			TradeCount:         2,
			Wins:               1,
			AvgHoldDays:        44,
		},
		{
			Ticker:     "BTC",
			Instrument: domain.InstrumentCrypto,
			Shares:     0.5,
			AvgCost:    40000,
			TradeCount: 1,
		},
	}
	require.NoError(t, repo.ReplacePositions(ctx, "user1", positions))

	found, err := repo.FindPositions(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, positions[0], found[0])
	assert.Equal(t, positions[1], found[1])

	// A replacement batch clears the previous one.
	require.NoError(t, repo.ReplacePositions(ctx, "user1", positions[:1]))
	found, err = repo.FindPositions(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestRepository_SaveAndFindProfile(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	positions := []domain.Position{{Ticker: "AAPL", Shares: 5, AvgCost: 150, TradeCount: 2, Wins: 1}}
	require.NoError(t, repo.ReplacePositions(ctx, "user1", positions))

	summary := &domain.PortfolioSummary{
		TotalValue:  750,
		TotalPNL:    100,
		WinRate:     0.5,
		Sharpe:      1.2,
		AvgHoldDays: 44,
		Traits: domain.BehavioralTraits{
			EntryTiming:    domain.TraitScore{Score: 72, Percentile: 75, Trend: domain.TrendUp},
			HoldDiscipline: domain.TraitScore{Score: 38, Percentile: 35, Trend: domain.TrendDown},
		},
	}
	require.NoError(t, repo.SaveProfile(ctx, "user1", summary))

	found, err := repo.FindProfile(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, summary.TotalValue, found.TotalValue)
	assert.Equal(t, summary.WinRate, found.WinRate)
	assert.Equal(t, summary.Sharpe, found.Sharpe)
	assert.Equal(t, summary.Traits, found.Traits, "trait scores should survive the JSON round trip")
	require.Len(t, found.Positions, 1, "profile should carry positions from the positions table")
	assert.Equal(t, positions[0], found.Positions[0])
}

func TestRepository_SaveProfileUpserts(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first := &domain.PortfolioSummary{TotalValue: 100}
	require.NoError(t, repo.SaveProfile(ctx, "user1", first))

	second := &domain.PortfolioSummary{TotalValue: 999, Sharpe: 2.5}
	require.NoError(t, repo.SaveProfile(ctx, "user1", second))

	found, err := repo.FindProfile(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 999.0, found.TotalValue)
	assert.Equal(t, 2.5, found.Sharpe)
}

func TestRepository_FindProfileMissingReturnsNil(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	found, err := repo.FindProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestNewRepository_RequiresLogger(t *testing.T) {
	_, err := NewRepository(Config{DBPath: "ignored.db"})
	assert.Error(t, err)
}
