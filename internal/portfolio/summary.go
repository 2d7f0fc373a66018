package portfolio

import (
	"math"

	"tradecoach/internal/domain"
)

// Summarize rolls positions and trait scores into one portfolio summary.
// The summary is rebuilt on every ingestion batch, never mutated.
func Summarize(positions []domain.Position, traits domain.BehavioralTraits) domain.PortfolioSummary {
	summary := domain.PortfolioSummary{
		Positions: positions,
		Traits:    traits,
	}

	var wins, roundTrips int
	var holdSum, holdCount float64
	for _, p := range positions {
		summary.TotalValue += p.CostBasis()
		summary.TotalPNL += p.RealizedPNL
		if p.TradeCount >= 2 {
			wins += p.Wins
			roundTrips += p.TradeCount / 2
		}
		if p.AvgHoldDays > 0 {
			holdSum += float64(p.AvgHoldDays)
			holdCount++
		}
	}

	if roundTrips > 0 {
		summary.WinRate = float64(wins) / float64(roundTrips)
	}
	if holdCount > 0 {
		summary.AvgHoldDays = holdSum / holdCount
	}
	summary.Sharpe = SharpeApprox(positions)
	return summary
}

// SharpeApprox treats each position's realized return (tradeCount >= 2) as
// one observation and annualizes the mean/stdev ratio by sqrt(12), rounded
// to one decimal. Fewer than 2 observations yield 0; a flat positive series
// yields 3.
func SharpeApprox(positions []domain.Position) float64 {
	var returns []float64
	for _, p := range positions {
		if p.TradeCount >= 2 {
			returns = append(returns, p.RealizedPNLPercent/100)
		}
	}
	if len(returns) < 2 {
		return 0
	}

	mean := meanOf(returns)
	sd := stdevOf(returns, mean)
	if sd == 0 {
		if mean > 0 {
			return 3
		}
		return 0
	}
	return math.Round(mean/sd*math.Sqrt(12)*10) / 10
}

func meanOf(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stdevOf is the population standard deviation about the given mean.
func stdevOf(vals []float64, mean float64) float64 {
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}
