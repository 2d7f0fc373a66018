package risk

import (
	"math"
	"testing"

	"tradecoach/internal/domain"
)

func findCheck(checks []domain.RuleCheck, rule string) (domain.RuleCheck, bool) {
	for _, c := range checks {
		if c.Rule == rule {
			return c, true
		}
	}
	return domain.RuleCheck{}, false
}

func TestValidateDrawdownHalt(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		CashBalance: 50000,
		TotalValue:  69000,
		PeakValue:   100000,
	}
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 1, Price: 100}

	checks := v.Validate(order, snapshot)
	check, ok := findCheck(checks, "Max Drawdown (30%)")
	if !ok {
		t.Fatalf("Expected a Max Drawdown (30%%) check, got %+v", checks)
	}
	if check.Passed {
		t.Error("Expected drawdown check to fail at 31% below peak")
	}
	if check.Severity != domain.SeverityError {
		t.Errorf("Expected error severity, got %s", check.Severity)
	}
	if math.Abs(check.Current-31) > 0.001 {
		t.Errorf("Expected current drawdown 31%%, got %.2f", check.Current)
	}
}

func TestValidateDrawdownJustUnderLimit(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		CashBalance: 50000,
		TotalValue:  70001,
		PeakValue:   100000,
	}
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 1, Price: 100}

	checks := v.Validate(order, snapshot)
	if _, ok := findCheck(checks, "Max Drawdown (30%)"); ok {
		t.Errorf("Expected no drawdown check below the limit, got %+v", checks)
	}
}

func TestValidatePositionConcentrationBoundary(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		CashBalance: 10000,
		TotalValue:  1000,
		PeakValue:   1000,
	}

	// Exactly 15.0% of the portfolio is allowed; the limit is strict.
	exact := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 1, Price: 150}
	checks := v.Validate(exact, snapshot)
	check, ok := findCheck(checks, "Position Size (15%)")
	if !ok {
		t.Fatalf("Expected a warning check at 15.0%%, got %+v", checks)
	}
	if check.Severity != domain.SeverityWarning {
		t.Errorf("Expected warning at exactly 15.0%%, got %s severity", check.Severity)
	}

	over := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 1, Price: 151}
	checks = v.Validate(over, snapshot)
	check, ok = findCheck(checks, "Position Size (15%)")
	if !ok {
		t.Fatalf("Expected a position size check at 15.1%%, got %+v", checks)
	}
	if check.Severity != domain.SeverityError {
		t.Errorf("Expected error at 15.1%%, got %s severity", check.Severity)
	}
}

func TestValidatePositionConcentrationIncludesHeldBasis(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		CashBalance: 10000,
		TotalValue:  1000,
		PeakValue:   1000,
		Positions: []domain.Position{
			{Ticker: "AAPL", Shares: 10, AvgCost: 10},
		},
	}
	// Held basis $100 plus a $60 order lands at 16% of the portfolio.
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 1, Price: 60}

	checks := v.Validate(order, snapshot)
	check, ok := findCheck(checks, "Position Size (15%)")
	if !ok {
		t.Fatalf("Expected a position size check, got %+v", checks)
	}
	if check.Severity != domain.SeverityError {
		t.Errorf("Expected error severity at 16%%, got %s", check.Severity)
	}
}

func TestValidateSectorConcentration(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		CashBalance: 10000,
		TotalValue:  1000,
		PeakValue:   1000,
		Positions: []domain.Position{
			{Ticker: "MSFT", Sector: "Technology", Shares: 35, AvgCost: 10},
		},
	}

	// Sector lands at 41%: error.
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 1, Price: 60, Sector: "Technology"}
	checks := v.Validate(order, snapshot)
	check, ok := findCheck(checks, "Sector Exposure (40%)")
	if !ok {
		t.Fatalf("Expected a sector check, got %+v", checks)
	}
	if check.Severity != domain.SeverityError {
		t.Errorf("Expected error at 41%% sector exposure, got %s", check.Severity)
	}

	// 36% warns but does not block.
	order.Price = 10
	checks = v.Validate(order, snapshot)
	check, ok = findCheck(checks, "Sector Exposure (40%)")
	if !ok {
		t.Fatalf("Expected a sector warning, got %+v", checks)
	}
	if check.Severity != domain.SeverityWarning {
		t.Errorf("Expected warning at 36%% sector exposure, got %s", check.Severity)
	}
}

func TestValidateInsufficientFunds(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{CashBalance: 500, TotalValue: 10000, PeakValue: 10000}
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 10, Price: 100}

	checks := v.Validate(order, snapshot)
	check, ok := findCheck(checks, "Available Funds")
	if !ok {
		t.Fatalf("Expected a funds check, got %+v", checks)
	}
	if check.Severity != domain.SeverityError {
		t.Errorf("Expected error severity, got %s", check.Severity)
	}
	if check.Current != 1000 || check.Limit != 500 {
		t.Errorf("Expected current=1000 limit=500, got current=%.2f limit=%.2f", check.Current, check.Limit)
	}
}

func TestValidateSellInsufficientShares(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		TotalValue: 1000,
		Positions:  []domain.Position{{Ticker: "AAPL", Shares: 5, AvgCost: 100}},
	}
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Sell, Quantity: 10, Price: 100}

	checks := v.Validate(order, snapshot)
	check, ok := findCheck(checks, "Sufficient Shares")
	if !ok {
		t.Fatalf("Expected a sufficient shares check, got %+v", checks)
	}
	if check.Severity != domain.SeverityError {
		t.Errorf("Expected error severity, got %s", check.Severity)
	}
}

func TestValidateSellMinimumPositionsWarning(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		TotalValue: 3000,
		Positions: []domain.Position{
			{Ticker: "AAPL", Shares: 10, AvgCost: 100},
			{Ticker: "MSFT", Shares: 10, AvgCost: 100},
			{Ticker: "XOM", Shares: 10, AvgCost: 100},
		},
	}
	// Fully closing AAPL drops the portfolio to 2 open positions.
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Sell, Quantity: 10, Price: 100}

	checks := v.Validate(order, snapshot)
	check, ok := findCheck(checks, "Minimum Positions (5)")
	if !ok {
		t.Fatalf("Expected a minimum positions check, got %+v", checks)
	}
	if check.Severity != domain.SeverityWarning {
		t.Errorf("Expected warning severity, got %s", check.Severity)
	}
	if check.Current != 2 {
		t.Errorf("Expected 2 remaining positions, got %.0f", check.Current)
	}
}

func TestValidatePartialSellSkipsMinimumPositions(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		TotalValue: 1000,
		Positions:  []domain.Position{{Ticker: "AAPL", Shares: 10, AvgCost: 100}},
	}
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Sell, Quantity: 4, Price: 100}

	checks := v.Validate(order, snapshot)
	if _, ok := findCheck(checks, "Minimum Positions (5)"); ok {
		t.Errorf("Expected no minimum positions check for a partial sell, got %+v", checks)
	}
}

func TestValidateCleanOrderSentinel(t *testing.T) {
	v := NewValidator(Thresholds{})
	snapshot := domain.PortfolioSnapshot{
		CashBalance: 100000,
		TotalValue:  100000,
		PeakValue:   100000,
	}
	order := domain.TradeOrder{Ticker: "AAPL", Side: domain.Buy, Quantity: 1, Price: 100, Sector: "Technology"}

	checks := v.Validate(order, snapshot)
	if len(checks) != 1 {
		t.Fatalf("Expected exactly one sentinel check, got %d", len(checks))
	}
	if checks[0].Rule != "All Rules" || !checks[0].Passed {
		t.Errorf("Expected passing All Rules sentinel, got %+v", checks[0])
	}
}

func TestNewValidatorZeroFallsBackToDefaults(t *testing.T) {
	v := NewValidator(Thresholds{MaxPositionPct: 25})
	if v.thresholds.MaxPositionPct != 25 {
		t.Errorf("Expected explicit MaxPositionPct 25, got %.0f", v.thresholds.MaxPositionPct)
	}
	if v.thresholds.MaxDrawdownPct != 30 {
		t.Errorf("Expected default MaxDrawdownPct 30, got %.0f", v.thresholds.MaxDrawdownPct)
	}
	if v.thresholds.MinOpenPositions != 5 {
		t.Errorf("Expected default MinOpenPositions 5, got %d", v.thresholds.MinOpenPositions)
	}
}

func TestFillPriceSlippageAgainstTrader(t *testing.T) {
	if got := FillPrice(domain.Buy, 100); math.Abs(got-100.02) > 1e-9 {
		t.Errorf("Expected buy fill 100.02, got %.4f", got)
	}
	if got := FillPrice(domain.Sell, 100); math.Abs(got-99.98) > 1e-9 {
		t.Errorf("Expected sell fill 99.98, got %.4f", got)
	}
}

func TestCommissionFloor(t *testing.T) {
	if got := Commission(10); got != 0.50 {
		t.Errorf("Expected floor commission 0.50, got %.2f", got)
	}
	if got := Commission(200); got != 2.00 {
		t.Errorf("Expected per-share commission 2.00, got %.2f", got)
	}
}
