package domain

// TraitScore is one normalized behavioral score. Score is always an integer
// in [20,95]. Percentile and Trend are cosmetic derivatives of Score (the
// percentile carries a bounded random jitter) and are not independently
// meaningful statistics.
type TraitScore struct {
	Score      int
	Percentile int
	Trend      Trend
}

// BehavioralTraits holds the eight independently computed trait scores.
// No invariant ties them together; sparse histories default most of them
// toward 50.
type BehavioralTraits struct {
	EntryTiming        TraitScore
	HoldDiscipline     TraitScore
	PositionSizing     TraitScore
	ConvictionAccuracy TraitScore
	RiskManagement     TraitScore
	SectorFocus        TraitScore
	DrawdownResilience TraitScore
	ThesisQuality      TraitScore
}

// All returns the scores in a fixed order, keyed by trait name.
func (b BehavioralTraits) All() []NamedTrait {
	return []NamedTrait{
		{"Entry Timing", b.EntryTiming},
		{"Hold Discipline", b.HoldDiscipline},
		{"Position Sizing", b.PositionSizing},
		{"Conviction Accuracy", b.ConvictionAccuracy},
		{"Risk Management", b.RiskManagement},
		{"Sector Focus", b.SectorFocus},
		{"Drawdown Resilience", b.DrawdownResilience},
		{"Thesis Quality", b.ThesisQuality},
	}
}

// NamedTrait pairs a trait score with its display name.
type NamedTrait struct {
	Name  string
	Score TraitScore
}

// PortfolioSummary is the aggregate record rolled up from one ingestion
// batch. It is rebuilt on every run, never mutated incrementally.
type PortfolioSummary struct {
	TotalValue  float64 // Cost basis of open positions; the engine holds no live prices
	TotalPNL    float64
	WinRate     float64 // Fraction in [0,1]
	Sharpe      float64 // Approximation from per-position realized returns
	AvgHoldDays float64
	Positions   []Position
	Traits      BehavioralTraits
}
