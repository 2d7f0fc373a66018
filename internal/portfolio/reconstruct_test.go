package portfolio

import (
	"reflect"
	"testing"

	"tradecoach/internal/domain"
)

func buy(ticker, date string, qty, price float64) domain.TradeRecord {
	return domain.TradeRecord{Date: date, Ticker: ticker, Action: domain.Buy, Quantity: qty, Price: price, Total: qty * price, Instrument: domain.InstrumentEquity}
}

func sell(ticker, date string, qty, price float64) domain.TradeRecord {
	return domain.TradeRecord{Date: date, Ticker: ticker, Action: domain.Sell, Quantity: qty, Price: price, Total: qty * price, Instrument: domain.InstrumentEquity}
}

func TestReconstructWinDefinition(t *testing.T) {
	records := []domain.TradeRecord{
		buy("AAPL", "2024-01-02", 10, 10),
		buy("AAPL", "2024-02-01", 10, 20),
		sell("AAPL", "2024-03-01", 5, 16),
	}
	positions := Reconstruct(records)
	if len(positions) != 1 {
		t.Fatalf("Expected 1 position, got %d", len(positions))
	}
	pos := positions[0]

	if pos.AvgCost != 15 {
		t.Errorf("Expected avgCost 15, got %f", pos.AvgCost)
	}
	// 5*16 - 5*15 = 5
	if pos.RealizedPNL != 5 {
		t.Errorf("Expected realized P&L 5, got %f", pos.RealizedPNL)
	}
	if pos.Wins != 1 {
		t.Errorf("Expected sell at 16 over avgCost 15 to count as a win, got %d wins", pos.Wins)
	}
	if pos.Shares != 15 {
		t.Errorf("Expected 15 shares remaining, got %f", pos.Shares)
	}
	if pos.TradeCount != 3 {
		t.Errorf("Expected tradeCount 3, got %d", pos.TradeCount)
	}
}

func TestReconstructIdempotent(t *testing.T) {
	records := []domain.TradeRecord{
		buy("AAPL", "2024-01-02", 10, 150),
		sell("AAPL", "2024-02-02", 5, 170),
		buy("MSFT", "2024-01-15", 3, 400),
	}
	first := Reconstruct(records)
	second := Reconstruct(records)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output across runs:\n%+v\n%+v", first, second)
	}
}

func TestReconstructHoldDays(t *testing.T) {
	// The sale matches the most recent buy on-or-before it.
	records := []domain.TradeRecord{
		buy("NVDA", "2024-01-01", 5, 500),
		buy("NVDA", "2024-01-10", 5, 520),
		sell("NVDA", "2024-01-15", 5, 540),
	}
	pos := Reconstruct(records)[0]
	if pos.AvgHoldDays != 5 {
		t.Errorf("Expected avgHoldDays 5 (from the Jan 10 buy), got %d", pos.AvgHoldDays)
	}
}

func TestReconstructSaleBeforeAnyBuy(t *testing.T) {
	// A sale with no qualifying buy contributes no hold-day sample but
	// still realizes P&L against the batch-wide average cost.
	records := []domain.TradeRecord{
		sell("TSLA", "2024-01-05", 5, 200),
		buy("TSLA", "2024-02-01", 10, 180),
	}
	pos := Reconstruct(records)[0]
	if pos.AvgHoldDays != 0 {
		t.Errorf("Expected no hold-day samples, got %d", pos.AvgHoldDays)
	}
	// 5*200 - 5*180 = 100
	if pos.RealizedPNL != 100 {
		t.Errorf("Expected realized P&L 100 against batch avgCost, got %f", pos.RealizedPNL)
	}
}

func TestReconstructFirstSeenOrder(t *testing.T) {
	records := []domain.TradeRecord{
		buy("MSFT", "2024-01-02", 1, 400),
		buy("AAPL", "2024-01-03", 1, 150),
		buy("MSFT", "2024-01-04", 1, 410),
	}
	positions := Reconstruct(records)
	if positions[0].Ticker != "MSFT" || positions[1].Ticker != "AAPL" {
		t.Errorf("Expected first-seen ticker order, got %s, %s", positions[0].Ticker, positions[1].Ticker)
	}
}

func TestReconstructSectorAndInstrumentCarried(t *testing.T) {
	rec := buy("AAPL", "2024-01-02", 1, 150)
	rec.Sector = "Technology"
	pos := Reconstruct([]domain.TradeRecord{rec})[0]
	if pos.Sector != "Technology" {
		t.Errorf("Expected sector carried onto position, got %q", pos.Sector)
	}
	if pos.Instrument != domain.InstrumentEquity {
		t.Errorf("Expected instrument carried onto position, got %q", pos.Instrument)
	}
}

func TestReconstructEmptyInput(t *testing.T) {
	if positions := Reconstruct(nil); len(positions) != 0 {
		t.Errorf("Expected no positions for empty input, got %d", len(positions))
	}
}
