package app

import (
	"context"
	"fmt"

	"tradecoach/internal/domain"
	"tradecoach/internal/ingest"
	"tradecoach/internal/insights"
	"tradecoach/internal/portfolio"
	"tradecoach/internal/ports"
	"tradecoach/internal/risk"
	"tradecoach/internal/traits"
)

// AnalysisService orchestrates the engine: ingest a raw export, reconstruct
// positions, score traits, persist the profile and answer rule-validation
// and blind-spot requests. The computation itself is pure; all I/O happens
// through the injected repositories and the optional quote provider.
type AnalysisService struct {
	logger    ports.Logger
	trades    ports.TradeRepository
	positions ports.PositionRepository
	profiles  ports.ProfileRepository
	scorer    *traits.Engine
	validator *risk.Validator
	quotes    ports.QuoteProvider // Optional; nil disables mark-to-market
}

// NewAnalysisService creates a new application service instance.
func NewAnalysisService(
	logger ports.Logger,
	tradeRepo ports.TradeRepository,
	posRepo ports.PositionRepository,
	profileRepo ports.ProfileRepository,
	scorer *traits.Engine,
	validator *risk.Validator,
	quotes ports.QuoteProvider,
) (*AnalysisService, error) {
	// Validate dependencies (quotes is optional)
	if logger == nil || tradeRepo == nil || posRepo == nil || profileRepo == nil || scorer == nil || validator == nil {
		return nil, fmt.Errorf("missing required dependencies for AnalysisService")
	}

	return &AnalysisService{
		logger:    logger,
		trades:    tradeRepo,
		positions: posRepo,
		profiles:  profileRepo,
		scorer:    scorer,
		validator: validator,
		quotes:    quotes,
	}, nil
}

// ImportAndAnalyze runs the full pipeline over one raw export blob:
// parse, infer columns (caller overrides win), normalize, reconstruct,
// score, summarize, persist. Dirty rows degrade or drop silently; even a
// degenerate input produces a well-typed (possibly empty) summary.
func (s *AnalysisService) ImportAndAnalyze(ctx context.Context, userID, raw string, overrides ingest.ColumnMapping) (*domain.PortfolioSummary, error) {
	table := ingest.Parse(raw)
	mapping := ingest.InferColumns(table.Headers).Merge(overrides)
	s.logger.Debug(ctx, "Columns inferred", map[string]interface{}{"headers": len(table.Headers), "mapped": len(mapping)})

	for _, field := range ingest.RequiredFields {
		if _, ok := mapping[field]; !ok {
			// Low-confidence signal only; rows missing the field drop in
			// normalization rather than failing the import.
			s.logger.Warn(ctx, "Required column not resolved", map[string]interface{}{"field": string(field)})
		}
	}

	records := ingest.Normalize(table, mapping)
	positions := portfolio.Reconstruct(records)
	behavior := s.scorer.Compute(records, positions)
	summary := portfolio.Summarize(positions, behavior)

	s.logger.Info(ctx, "Import analyzed", map[string]interface{}{
		"userID":    userID,
		"rows":      len(table.Rows),
		"records":   len(records),
		"positions": len(positions),
	})

	if err := s.trades.ReplaceTrades(ctx, userID, records); err != nil {
		return nil, fmt.Errorf("failed to persist trade records: %w", err)
	}
	if err := s.positions.ReplacePositions(ctx, userID, positions); err != nil {
		return nil, fmt.Errorf("failed to persist positions: %w", err)
	}
	if err := s.profiles.SaveProfile(ctx, userID, &summary); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	return &summary, nil
}

// ValidateOrder assembles a portfolio snapshot from stored positions and
// runs the proposed order through the rule book. CashBalance and peakValue
// come from the caller; the engine does not track them. Rule failures are
// returned verbatim, never suppressed.
func (s *AnalysisService) ValidateOrder(ctx context.Context, userID string, order domain.TradeOrder, cashBalance, peakValue float64) ([]domain.RuleCheck, error) {
	positions, err := s.positions.FindPositions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions for validation: %w", err)
	}

	snapshot := s.buildSnapshot(ctx, positions, cashBalance, peakValue)
	return s.validator.Validate(order, snapshot), nil
}

// buildSnapshot values open positions at cost basis, marked to market where
// the quote provider covers the ticker. PeakValue never falls below the
// current total.
func (s *AnalysisService) buildSnapshot(ctx context.Context, positions []domain.Position, cashBalance, peakValue float64) domain.PortfolioSnapshot {
	total := cashBalance
	for _, p := range positions {
		value := p.CostBasis()
		if s.quotes != nil && p.Open() && p.Instrument == domain.InstrumentCrypto {
			if price, err := s.quotes.GetPrice(ctx, p.Ticker); err == nil {
				value = p.Shares * price
			}
		}
		total += value
	}
	if peakValue < total {
		peakValue = total
	}
	return domain.PortfolioSnapshot{
		CashBalance: cashBalance,
		TotalValue:  total,
		PeakValue:   peakValue,
		Positions:   positions,
	}
}

// DeriveBlindSpots loads the stored history and profile and evaluates the
// blind-spot heuristics over engine-computed features. Feature families the
// engine does not compute (fees, earnings proximity) stay absent unless an
// upstream collaborator supplies them through extra.
func (s *AnalysisService) DeriveBlindSpots(ctx context.Context, userID string, extra insights.FeatureSet) ([]domain.BlindSpot, error) {
	records, err := s.trades.FindTrades(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade records: %w", err)
	}
	summary, err := s.profiles.FindProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	features := extra
	if summary != nil {
		if features.TopPositionPct == nil {
			if pct, ok := topPositionShare(summary); ok {
				features.TopPositionPct = insights.Float(pct)
			}
		}
		if features.DisciplineScore == nil {
			features.DisciplineScore = insights.Float(float64(summary.Traits.HoldDiscipline.Score))
		}
	}
	return insights.Derive(features, records), nil
}

func topPositionShare(summary *domain.PortfolioSummary) (float64, bool) {
	if summary.TotalValue <= 0 {
		return 0, false
	}
	var top float64
	for _, p := range summary.Positions {
		if v := p.CostBasis(); v > top {
			top = v
		}
	}
	return top / summary.TotalValue * 100, true
}
