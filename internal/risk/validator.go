package risk

import (
	"fmt"

	"tradecoach/internal/domain"
)

// Thresholds holds the rule-book limits. Percentages are whole numbers
// (15 means 15%).
type Thresholds struct {
	MaxPositionPct   float64 `yaml:"max_position_pct"`
	WarnPositionPct  float64 `yaml:"warn_position_pct"`
	MaxSectorPct     float64 `yaml:"max_sector_pct"`
	WarnSectorPct    float64 `yaml:"warn_sector_pct"`
	MaxDrawdownPct   float64 `yaml:"max_drawdown_pct"`
	MinOpenPositions int     `yaml:"min_open_positions"`
}

// DefaultThresholds returns the standard rule book.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxPositionPct:   15,
		WarnPositionPct:  12,
		MaxSectorPct:     40,
		WarnSectorPct:    35,
		MaxDrawdownPct:   30,
		MinOpenPositions: 5,
	}
}

// Validator evaluates proposed orders against the rule book. It is a pure
// constraint checker: it holds no state beyond its thresholds and performs
// no I/O.
type Validator struct {
	thresholds Thresholds
}

// NewValidator creates a validator. Zero-valued threshold fields fall back
// to the defaults.
func NewValidator(t Thresholds) *Validator {
	def := DefaultThresholds()
	if t.MaxPositionPct <= 0 {
		t.MaxPositionPct = def.MaxPositionPct
	}
	if t.WarnPositionPct <= 0 {
		t.WarnPositionPct = def.WarnPositionPct
	}
	if t.MaxSectorPct <= 0 {
		t.MaxSectorPct = def.MaxSectorPct
	}
	if t.WarnSectorPct <= 0 {
		t.WarnSectorPct = def.WarnSectorPct
	}
	if t.MaxDrawdownPct <= 0 {
		t.MaxDrawdownPct = def.MaxDrawdownPct
	}
	if t.MinOpenPositions <= 0 {
		t.MinOpenPositions = def.MinOpenPositions
	}
	return &Validator{thresholds: t}
}

// Validate evaluates every applicable rule against the order; rules never
// short-circuit each other. Only failing checks are returned, except that a
// fully clean order yields a single synthetic "All Rules" passed check so
// callers never see an ambiguous empty result. Error severity must block
// execution; warnings must not.
func (v *Validator) Validate(order domain.TradeOrder, snapshot domain.PortfolioSnapshot) []domain.RuleCheck {
	var checks []domain.RuleCheck

	switch order.Side {
	case domain.Buy:
		checks = append(checks, v.checkFunds(order, snapshot)...)
		checks = append(checks, v.checkPositionConcentration(order, snapshot)...)
		checks = append(checks, v.checkSectorConcentration(order, snapshot)...)
		checks = append(checks, v.checkDrawdownHalt(snapshot)...)
	case domain.Sell:
		checks = append(checks, v.checkSufficientShares(order, snapshot)...)
		checks = append(checks, v.checkMinimumPositions(order, snapshot)...)
	}

	if len(checks) == 0 {
		return []domain.RuleCheck{{
			Rule:    "All Rules",
			Passed:  true,
			Message: "Order passes all risk rules",
		}}
	}
	return checks
}

func (v *Validator) checkFunds(order domain.TradeOrder, snapshot domain.PortfolioSnapshot) []domain.RuleCheck {
	cost := order.Value()
	if cost <= snapshot.CashBalance {
		return nil
	}
	return []domain.RuleCheck{{
		Rule:     "Available Funds",
		Passed:   false,
		Message:  fmt.Sprintf("Order cost $%.2f exceeds cash balance $%.2f", cost, snapshot.CashBalance),
		Current:  cost,
		Limit:    snapshot.CashBalance,
		Severity: domain.SeverityError,
	}}
}

// checkPositionConcentration measures the ticker's post-trade share of
// total portfolio value. Both limits are strict: landing exactly on the
// limit passes.
func (v *Validator) checkPositionConcentration(order domain.TradeOrder, snapshot domain.PortfolioSnapshot) []domain.RuleCheck {
	if snapshot.TotalValue <= 0 {
		return nil
	}

	value := order.Value()
	if held, ok := snapshot.FindPosition(order.Ticker); ok {
		value += held.CostBasis()
	}
	pctAfter := value / snapshot.TotalValue * 100

	rule := fmt.Sprintf("Position Size (%.0f%%)", v.thresholds.MaxPositionPct)
	switch {
	case pctAfter > v.thresholds.MaxPositionPct:
		return []domain.RuleCheck{{
			Rule:     rule,
			Passed:   false,
			Message:  fmt.Sprintf("%s would be %.1f%% of portfolio, above the %.0f%% limit", order.Ticker, pctAfter, v.thresholds.MaxPositionPct),
			Current:  pctAfter,
			Limit:    v.thresholds.MaxPositionPct,
			Severity: domain.SeverityError,
		}}
	case pctAfter > v.thresholds.WarnPositionPct:
		return []domain.RuleCheck{{
			Rule:     rule,
			Passed:   false,
			Message:  fmt.Sprintf("%s would be %.1f%% of portfolio, approaching the %.0f%% limit", order.Ticker, pctAfter, v.thresholds.MaxPositionPct),
			Current:  pctAfter,
			Limit:    v.thresholds.MaxPositionPct,
			Severity: domain.SeverityWarning,
		}}
	}
	return nil
}

func (v *Validator) checkSectorConcentration(order domain.TradeOrder, snapshot domain.PortfolioSnapshot) []domain.RuleCheck {
	if snapshot.TotalValue <= 0 || order.Sector == "" {
		return nil
	}

	value := order.Value()
	for _, p := range snapshot.Positions {
		if p.Sector == order.Sector {
			value += p.CostBasis()
		}
	}
	pctAfter := value / snapshot.TotalValue * 100

	rule := fmt.Sprintf("Sector Exposure (%.0f%%)", v.thresholds.MaxSectorPct)
	switch {
	case pctAfter > v.thresholds.MaxSectorPct:
		return []domain.RuleCheck{{
			Rule:     rule,
			Passed:   false,
			Message:  fmt.Sprintf("%s would be %.1f%% of portfolio, above the %.0f%% limit", order.Sector, pctAfter, v.thresholds.MaxSectorPct),
			Current:  pctAfter,
			Limit:    v.thresholds.MaxSectorPct,
			Severity: domain.SeverityError,
		}}
	case pctAfter > v.thresholds.WarnSectorPct:
		return []domain.RuleCheck{{
			Rule:     rule,
			Passed:   false,
			Message:  fmt.Sprintf("%s would be %.1f%% of portfolio, approaching the %.0f%% limit", order.Sector, pctAfter, v.thresholds.MaxSectorPct),
			Current:  pctAfter,
			Limit:    v.thresholds.MaxSectorPct,
			Severity: domain.SeverityWarning,
		}}
	}
	return nil
}

// checkDrawdownHalt blocks all buying once the portfolio sits in a drawdown
// at or beyond the limit, regardless of order size.
func (v *Validator) checkDrawdownHalt(snapshot domain.PortfolioSnapshot) []domain.RuleCheck {
	if snapshot.PeakValue <= 0 {
		return nil
	}
	drawdownPct := (snapshot.PeakValue - snapshot.TotalValue) / snapshot.PeakValue * 100
	if drawdownPct < v.thresholds.MaxDrawdownPct {
		return nil
	}
	return []domain.RuleCheck{{
		Rule:     fmt.Sprintf("Max Drawdown (%.0f%%)", v.thresholds.MaxDrawdownPct),
		Passed:   false,
		Message:  fmt.Sprintf("Portfolio is %.1f%% below its peak; trading is halted", drawdownPct),
		Current:  drawdownPct,
		Limit:    v.thresholds.MaxDrawdownPct,
		Severity: domain.SeverityError,
	}}
}

func (v *Validator) checkSufficientShares(order domain.TradeOrder, snapshot domain.PortfolioSnapshot) []domain.RuleCheck {
	held, _ := snapshot.FindPosition(order.Ticker)
	if held.Shares >= order.Quantity {
		return nil
	}
	return []domain.RuleCheck{{
		Rule:     "Sufficient Shares",
		Passed:   false,
		Message:  fmt.Sprintf("Selling %.2f %s but only %.2f held", order.Quantity, order.Ticker, held.Shares),
		Current:  held.Shares,
		Limit:    order.Quantity,
		Severity: domain.SeverityError,
	}}
}

// checkMinimumPositions warns, without blocking, when fully closing this
// position would leave the portfolio under the diversification floor.
func (v *Validator) checkMinimumPositions(order domain.TradeOrder, snapshot domain.PortfolioSnapshot) []domain.RuleCheck {
	held, ok := snapshot.FindPosition(order.Ticker)
	if !ok || !held.Open() || order.Quantity < held.Shares {
		return nil
	}
	remaining := snapshot.OpenPositionCount() - 1
	if remaining >= v.thresholds.MinOpenPositions {
		return nil
	}
	return []domain.RuleCheck{{
		Rule:     fmt.Sprintf("Minimum Positions (%d)", v.thresholds.MinOpenPositions),
		Passed:   false,
		Message:  fmt.Sprintf("Closing %s would leave %d open positions", order.Ticker, remaining),
		Current:  float64(remaining),
		Limit:    float64(v.thresholds.MinOpenPositions),
		Severity: domain.SeverityWarning,
	}}
}
