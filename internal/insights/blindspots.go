package insights

import (
	"fmt"

	"tradecoach/internal/domain"
)

// Thresholds the deriver fires on. Percentages are whole numbers.
const (
	concentrationWarnPct   = 25
	concentrationDangerPct = 40
	optionsNotionalFloor   = 1_000_000
	disciplineFloor        = 50
	feeDragPctFloor        = 1
	earningsEdgePctFloor   = 40
)

// Derive evaluates every blind-spot heuristic against the supplied feature
// set and trade history. Findings are independent: any subset may fire, in
// a fixed order, and all bodies are generated deterministically from the
// numeric evidence so the list is reproducible for a given input.
func Derive(features FeatureSet, trades []domain.TradeRecord) []domain.BlindSpot {
	var spots []domain.BlindSpot

	if s := deriveConcentration(features); s != nil {
		spots = append(spots, *s)
	}
	if s := deriveZeroHedging(features); s != nil {
		spots = append(spots, *s)
	}
	if s := deriveMistakeRepetition(features); s != nil {
		spots = append(spots, *s)
	}
	if s := deriveWashSales(trades); s != nil {
		spots = append(spots, *s)
	}
	if s := deriveFeeDrag(features); s != nil {
		spots = append(spots, *s)
	}
	if s := deriveEarningsEdge(features); s != nil {
		spots = append(spots, *s)
	}
	return spots
}

func deriveConcentration(features FeatureSet) *domain.BlindSpot {
	if features.TopPositionPct == nil || *features.TopPositionPct <= concentrationWarnPct {
		return nil
	}
	pct := *features.TopPositionPct

	spot := &domain.BlindSpot{
		Severity: domain.BlindSpotWarning,
		Title:    "Concentrated Position",
		Body:     fmt.Sprintf("Your largest position is %.1f%% of your portfolio. A single adverse move dominates your returns.", pct),
		Evidence: []domain.Evidence{{Label: "Top position share", Value: fmt.Sprintf("%.1f%%", pct)}},
	}
	if pct > concentrationDangerPct {
		spot.Severity = domain.BlindSpotDanger
		spot.Title = "Dangerous Concentration"
	}
	return spot
}

func deriveZeroHedging(features FeatureSet) *domain.BlindSpot {
	if features.HedgingScore == nil || *features.HedgingScore != 0 {
		return nil
	}
	if features.OptionsNotional == nil || *features.OptionsNotional <= optionsNotionalFloor {
		return nil
	}
	notional := *features.OptionsNotional
	return &domain.BlindSpot{
		Severity: domain.BlindSpotWarning,
		Title:    "No Hedging in Place",
		Body:     fmt.Sprintf("You carry $%.0f of options notional with zero hedging activity on record.", notional),
		Evidence: []domain.Evidence{
			{Label: "Hedging score", Value: "0"},
			{Label: "Options notional", Value: fmt.Sprintf("$%.0f", notional)},
		},
	}
}

func deriveMistakeRepetition(features FeatureSet) *domain.BlindSpot {
	if features.DisciplineScore == nil || *features.DisciplineScore >= disciplineFloor {
		return nil
	}
	score := *features.DisciplineScore

	spot := &domain.BlindSpot{
		Severity: domain.BlindSpotWarning,
		Title:    "Repeating Mistakes",
		Body:     fmt.Sprintf("Your discipline score is %.0f, below the %d threshold where mistake patterns tend to repeat.", score, disciplineFloor),
		Evidence: []domain.Evidence{{Label: "Discipline score", Value: fmt.Sprintf("%.0f", score)}},
	}
	if pct, ok := ExtractPercentFrom(features.DisciplineEvidence); ok {
		spot.Body = fmt.Sprintf("%s About %.0f%% of recent trades match a repeated mistake pattern.", spot.Body, pct)
		spot.Evidence = append(spot.Evidence, domain.Evidence{Label: "Repeat rate", Value: fmt.Sprintf("%.0f%%", pct)})
	}
	return spot
}

func deriveWashSales(trades []domain.TradeRecord) *domain.BlindSpot {
	result := DetectWashSales(trades)
	if result == nil || result.TotalEvents == 0 {
		return nil
	}
	spot := &domain.BlindSpot{
		Severity: domain.BlindSpotWarning,
		Title:    "Potential Wash Sales",
		Body: fmt.Sprintf("%d wash-sale events detected across %d tickers; %s accounts for %d of them.",
			result.TotalEvents, result.TickerCount, result.TopTicker, result.TopTickerEvents),
		Evidence: []domain.Evidence{
			{Label: "Events", Value: fmt.Sprintf("%d", result.TotalEvents)},
			{Label: "Tickers", Value: fmt.Sprintf("%d", result.TickerCount)},
			{Label: "Top ticker", Value: result.TopTicker},
		},
	}
	if result.CrossAccountCount > 0 {
		spot.Evidence = append(spot.Evidence, domain.Evidence{Label: "Cross-account", Value: fmt.Sprintf("%d", result.CrossAccountCount)})
	}
	return spot
}

func deriveFeeDrag(features FeatureSet) *domain.BlindSpot {
	if features.FeeDragPct == nil || *features.FeeDragPct <= feeDragPctFloor {
		return nil
	}
	pct := *features.FeeDragPct
	return &domain.BlindSpot{
		Severity: domain.BlindSpotInfo,
		Title:    "Fee Drag",
		Body:     fmt.Sprintf("Fees consume %.2f%% of your portfolio, above the %d%% level where they meaningfully erode returns.", pct, feeDragPctFloor),
		Evidence: []domain.Evidence{{Label: "Fee drag", Value: fmt.Sprintf("%.2f%%", pct)}},
	}
}

func deriveEarningsEdge(features FeatureSet) *domain.BlindSpot {
	if features.EarningsProximityPct == nil || *features.EarningsProximityPct <= earningsEdgePctFloor {
		return nil
	}
	pct := *features.EarningsProximityPct
	return &domain.BlindSpot{
		Severity: domain.BlindSpotOpportunity,
		Title:    "Earnings-Adjacent Edge",
		Body:     fmt.Sprintf("%.0f%% of your trades land near earnings dates. That timing pattern may be a repeatable edge worth studying.", pct),
		Evidence: []domain.Evidence{{Label: "Earnings-adjacent trades", Value: fmt.Sprintf("%.0f%%", pct)}},
	}
}
