package traits

import (
	"math"
	"sort"

	"tradecoach/internal/domain"
)

const (
	minScore     = 20
	maxScore     = 95
	defaultScore = 50
)

// clampScore rounds and bounds a raw score into [minScore, maxScore].
func clampScore(v float64) int {
	s := int(math.Round(v))
	if s < minScore {
		return minScore
	}
	if s > maxScore {
		return maxScore
	}
	return s
}

// scoreEntryTiming rewards buying near each ticker's observed price floor.
// For every ticker whose price range is non-zero, each buy scores
// 100*(1-(price-min)/(max-min)); the trait is the mean over all such buys.
func scoreEntryTiming(trades []domain.TradeRecord) int {
	lows := make(map[string]float64)
	highs := make(map[string]float64)
	for _, t := range trades {
		lo, seenLo := lows[t.Ticker]
		if !seenLo || t.Price < lo {
			lows[t.Ticker] = t.Price
		}
		hi, seenHi := highs[t.Ticker]
		if !seenHi || t.Price > hi {
			highs[t.Ticker] = t.Price
		}
	}

	var sum float64
	var n int
	for _, t := range trades {
		if t.Action != domain.Buy {
			continue
		}
		span := highs[t.Ticker] - lows[t.Ticker]
		if span <= 0 {
			continue
		}
		sum += 100 * (1 - (t.Price-lows[t.Ticker])/span)
		n++
	}
	if n == 0 {
		return defaultScore
	}
	return clampScore(sum / float64(n))
}

// scoreHoldDiscipline turns the consistency of per-ticker hold durations
// into a score via the coefficient of variation: 95 - 37*CV.
func scoreHoldDiscipline(positions []domain.Position) int {
	var holds []float64
	for _, p := range positions {
		if p.AvgHoldDays > 0 {
			holds = append(holds, float64(p.AvgHoldDays))
		}
	}
	if len(holds) < 2 {
		return defaultScore
	}
	return clampScore(95 - 37*coefficientOfVariation(holds))
}

// scorePositionSizing measures consistency of per-buy dollar amounts:
// 90 - 35*CV over all buy totals.
func scorePositionSizing(trades []domain.TradeRecord) int {
	var totals []float64
	for _, t := range trades {
		if t.Action == domain.Buy {
			totals = append(totals, t.Total)
		}
	}
	if len(totals) < 2 {
		return defaultScore
	}
	return clampScore(90 - 35*coefficientOfVariation(totals))
}

// scoreConvictionAccuracy is the round-trip win rate scaled to 100.
func scoreConvictionAccuracy(positions []domain.Position) int {
	winRate, ok := roundTripWinRate(positions)
	if !ok {
		return defaultScore
	}
	return clampScore(winRate * 100)
}

// scoreRiskManagement penalizes the average depth of realized losses:
// 95 - 3.5*mean(|loss%|) over losing positions. No realized losses score a
// flat 80.
func scoreRiskManagement(positions []domain.Position) int {
	var lossSum float64
	var losses int
	for _, p := range positions {
		if p.RealizedPNLPercent < 0 {
			lossSum += -p.RealizedPNLPercent
			losses++
		}
	}
	if losses == 0 {
		return 80
	}
	return clampScore(95 - 3.5*lossSum/float64(losses))
}

// scoreSectorFocus is the largest single-sector share of trade count,
// scaled: share*100 + 10.
func scoreSectorFocus(trades []domain.TradeRecord) int {
	if len(trades) == 0 {
		return defaultScore
	}
	counts := make(map[string]int)
	top := 0
	for _, t := range trades {
		counts[t.Sector]++
		if counts[t.Sector] > top {
			top = counts[t.Sector]
		}
	}
	share := float64(top) / float64(len(trades))
	return clampScore(share*100 + 10)
}

// scoreDrawdownResilience counts drawdown periods (a sell priced below the
// immediately preceding trade opens one) and how many were traded through
// (a buy while still inside the period closes it): 50 + 40*(tradedThrough /
// periods). Histories under 5 trades default; zero periods score 70.
func scoreDrawdownResilience(trades []domain.TradeRecord) int {
	if len(trades) < 5 {
		return defaultScore
	}

	ordered := make([]domain.TradeRecord, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	var periods, tradedThrough int
	inDrawdown := false
	for i := 1; i < len(ordered); i++ {
		t := ordered[i]
		if !inDrawdown && t.Action == domain.Sell && t.Price < ordered[i-1].Price {
			inDrawdown = true
			periods++
			continue
		}
		if inDrawdown && t.Action == domain.Buy {
			tradedThrough++
			inDrawdown = false
		}
	}

	if periods == 0 {
		return 70
	}
	return clampScore(50 + 40*float64(tradedThrough)/float64(periods))
}

// scoreThesisQuality blends the round-trip win rate with mean realized
// return: winRate*85 + clamp(meanPnl%, -20, 20)/2 + 10.
func scoreThesisQuality(positions []domain.Position) int {
	winRate, ok := roundTripWinRate(positions)
	if !ok {
		return defaultScore
	}

	var pnlSum float64
	var n int
	for _, p := range positions {
		if p.TradeCount >= 2 {
			pnlSum += p.RealizedPNLPercent
			n++
		}
	}
	meanPnl := pnlSum / float64(n)
	if meanPnl > 20 {
		meanPnl = 20
	} else if meanPnl < -20 {
		meanPnl = -20
	}
	return clampScore(winRate*85 + meanPnl/2 + 10)
}

// roundTripWinRate approximates round trips as floor(tradeCount/2) per
// position (tradeCount >= 2 only) and returns wins over round trips.
func roundTripWinRate(positions []domain.Position) (float64, bool) {
	var wins, roundTrips int
	for _, p := range positions {
		if p.TradeCount >= 2 {
			wins += p.Wins
			roundTrips += p.TradeCount / 2
		}
	}
	if roundTrips == 0 {
		return 0, false
	}
	return float64(wins) / float64(roundTrips), true
}

// coefficientOfVariation is stdev/mean, the scale-free dispersion measure
// behind the consistency scores. Zero mean yields 0.
func coefficientOfVariation(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	if mean == 0 {
		return 0
	}

	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss/float64(len(vals))) / mean
}
