package traits

import (
	"math/rand"

	"tradecoach/internal/domain"
)

// Engine computes behavioral trait scores. The random source feeds only the
// cosmetic percentile jitter; the scores themselves are deterministic for a
// given input.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates a scoring engine seeded from the given source. A nil
// source gets a fixed seed, which makes full runs reproducible.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{rng: rng}
}

// Compute scores all eight behavioral traits from one batch of trades and
// the positions reconstructed from them. Every score is an integer in
// [20,95]; sparse histories default toward 50.
func (e *Engine) Compute(trades []domain.TradeRecord, positions []domain.Position) domain.BehavioralTraits {
	return domain.BehavioralTraits{
		EntryTiming:        e.decorate(scoreEntryTiming(trades)),
		HoldDiscipline:     e.decorate(scoreHoldDiscipline(positions)),
		PositionSizing:     e.decorate(scorePositionSizing(trades)),
		ConvictionAccuracy: e.decorate(scoreConvictionAccuracy(positions)),
		RiskManagement:     e.decorate(scoreRiskManagement(positions)),
		SectorFocus:        e.decorate(scoreSectorFocus(trades)),
		DrawdownResilience: e.decorate(scoreDrawdownResilience(trades)),
		ThesisQuality:      e.decorate(scoreThesisQuality(positions)),
	}
}

// decorate attaches the cosmetic percentile and trend tags to a score.
// The percentile is the score plus a bounded jitter in [-5,+9], capped at
// 99; the trend comes from plain score thresholds. Neither is a meaningful
// statistic on its own.
func (e *Engine) decorate(score int) domain.TraitScore {
	percentile := score + e.rng.Intn(15) - 5
	if percentile > 99 {
		percentile = 99
	}

	trend := domain.TrendFlat
	switch {
	case score >= 70:
		trend = domain.TrendUp
	case score <= 40:
		trend = domain.TrendDown
	}

	return domain.TraitScore{Score: score, Percentile: percentile, Trend: trend}
}
