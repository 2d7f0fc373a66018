package risk

import "tradecoach/internal/domain"

// Execution price model for the simulated fill path. Slippage is always
// applied against the trader.
const (
	slippageRate   = 0.0002
	minCommission  = 0.50
	perShareCommis = 0.01
)

// FillPrice returns the simulated execution price for an order: buys fill
// slightly above the quoted price, sells slightly below.
func FillPrice(side domain.Action, price float64) float64 {
	slip := price * slippageRate
	if side == domain.Sell {
		return price - slip
	}
	return price + slip
}

// Commission returns the simulated commission for a fill: one cent per
// share with a fifty-cent floor.
func Commission(quantity float64) float64 {
	c := quantity * perShareCommis
	if c < minCommission {
		return minCommission
	}
	return c
}
