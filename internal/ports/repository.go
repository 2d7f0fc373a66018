package ports

import (
	"context"

	"tradecoach/internal/domain"
)

// TradeRepository stores and retrieves canonical trade records. An
// ingestion batch fully replaces the previous batch for a user.
type TradeRepository interface {
	// ReplaceTrades deletes a user's stored records and saves the new batch.
	ReplaceTrades(ctx context.Context, userID string, records []domain.TradeRecord) error
	// FindTrades retrieves all stored records for a user, in insertion order.
	FindTrades(ctx context.Context, userID string) ([]domain.TradeRecord, error)
	// CountTrades returns the number of stored records for a user.
	CountTrades(ctx context.Context, userID string) (int, error)
}

// PositionRepository stores reconstructed positions. Positions are derived
// data and are fully rewritten on each ingestion run.
type PositionRepository interface {
	// ReplacePositions deletes a user's stored positions and saves the new set.
	ReplacePositions(ctx context.Context, userID string, positions []domain.Position) error
	// FindPositions retrieves all stored positions for a user.
	FindPositions(ctx context.Context, userID string) ([]domain.Position, error)
}

// ProfileRepository stores the latest behavioral profile per user.
type ProfileRepository interface {
	// SaveProfile upserts the user's portfolio summary and trait scores.
	SaveProfile(ctx context.Context, userID string, summary *domain.PortfolioSummary) error
	// FindProfile retrieves the stored profile for a user.
	// Returns nil, nil if no profile has been saved.
	FindProfile(ctx context.Context, userID string) (*domain.PortfolioSummary, error)
}
