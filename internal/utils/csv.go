package utils

import (
	"encoding/csv"
	"os"
	"strconv"

	"tradecoach/internal/domain"
)

// WritePositionsToCSV exports reconstructed positions for use outside the
// engine (spreadsheets, the presentation collaborator).
func WritePositionsToCSV(positions []domain.Position, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"ticker", "sector", "shares", "avg_cost", "realized_pnl", "realized_pnl_percent", "trade_count", "wins", "avg_hold_days"})

	for _, p := range positions {
		writer.Write([]string{
			p.Ticker,
			p.Sector,
			strconv.FormatFloat(p.Shares, 'f', -1, 64),
			strconv.FormatFloat(p.AvgCost, 'f', -1, 64),
			strconv.FormatFloat(p.RealizedPNL, 'f', -1, 64),
			strconv.FormatFloat(p.RealizedPNLPercent, 'f', -1, 64),
			strconv.Itoa(p.TradeCount),
			strconv.Itoa(p.Wins),
			strconv.Itoa(p.AvgHoldDays),
		})
	}
	return writer.Error()
}
