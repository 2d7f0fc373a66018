package portfolio

import (
	"math"
	"time"

	"tradecoach/internal/domain"
)

// Reconstruct folds canonical trade records into per-ticker positions.
// Positions are derived from scratch on every call: the same input always
// produces the same output, in first-seen ticker order.
//
// Cost basis is a single weighted average over all buys in the batch, not
// lot-specific, and every sale is valued against that same batch-wide
// average even when it predates later buys.
func Reconstruct(records []domain.TradeRecord) []domain.Position {
	byTicker := make(map[string][]domain.TradeRecord)
	var order []string
	for _, rec := range records {
		if _, seen := byTicker[rec.Ticker]; !seen {
			order = append(order, rec.Ticker)
		}
		byTicker[rec.Ticker] = append(byTicker[rec.Ticker], rec)
	}

	positions := make([]domain.Position, 0, len(order))
	for _, ticker := range order {
		positions = append(positions, buildPosition(ticker, byTicker[ticker]))
	}
	return positions
}

func buildPosition(ticker string, trades []domain.TradeRecord) domain.Position {
	pos := domain.Position{Ticker: ticker, TradeCount: len(trades)}

	var buyQty, buyCost, sellQty float64
	for _, t := range trades {
		if pos.Sector == "" && t.Sector != "" {
			pos.Sector = t.Sector
		}
		if pos.Instrument == "" && t.Instrument != "" {
			pos.Instrument = t.Instrument
		}
		switch t.Action {
		case domain.Buy:
			buyQty += t.Quantity
			buyCost += t.Quantity * t.Price
		case domain.Sell:
			sellQty += t.Quantity
		}
	}

	if buyQty > 0 {
		pos.AvgCost = buyCost / buyQty
	}
	pos.Shares = buyQty - sellQty

	// Realized P&L values each sale against the batch-wide average cost.
	var soldBasis float64
	var holdSamples []float64
	for _, t := range trades {
		if t.Action != domain.Sell {
			continue
		}
		pos.RealizedPNL += t.Total - t.Quantity*pos.AvgCost
		soldBasis += t.Quantity * pos.AvgCost
		if t.Price > pos.AvgCost {
			pos.Wins++
		}
		if days, ok := holdDays(trades, t); ok {
			holdSamples = append(holdSamples, days)
		}
	}

	if soldBasis > 0 {
		pos.RealizedPNLPercent = pos.RealizedPNL / soldBasis * 100
	}
	if len(holdSamples) > 0 {
		var sum float64
		for _, d := range holdSamples {
			sum += d
		}
		pos.AvgHoldDays = int(math.Round(sum / float64(len(holdSamples))))
	}
	return pos
}

// holdDays returns the duration in days between a sale and the most recent
// buy dated on-or-before it. Sales with no qualifying buy contribute no
// sample.
func holdDays(trades []domain.TradeRecord, sale domain.TradeRecord) (float64, bool) {
	sellDate, err := parseDay(sale.Date)
	if err != nil {
		return 0, false
	}

	var best time.Time
	found := false
	for _, t := range trades {
		if t.Action != domain.Buy {
			continue
		}
		buyDate, err := parseDay(t.Date)
		if err != nil || buyDate.After(sellDate) {
			continue
		}
		if !found || buyDate.After(best) {
			best = buyDate
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return sellDate.Sub(best).Hours() / 24, true
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
