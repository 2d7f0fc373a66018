package domain

// Position is the reconstructed state of one ticker after folding every
// trade record for it. Positions are rebuilt from scratch on each ingestion
// batch; they carry no identity across runs.
type Position struct {
	Ticker             string
	Sector             string
	Instrument         string  // Dominant instrument type of the ticker's records
	Shares             float64 // May be <= 0 when fully exited
	AvgCost            float64 // Weighted-average buy price across all buys in the batch
	RealizedPNL        float64
	RealizedPNLPercent float64
	TradeCount         int
	Wins               int // Sells priced above AvgCost
	AvgHoldDays        int // Rounded mean of per-sale hold durations; 0 if no samples
}

// Open reports whether any shares remain held.
func (p Position) Open() bool {
	return p.Shares > 0
}

// CostBasis returns the cost value of the remaining shares, floored at zero.
func (p Position) CostBasis() float64 {
	if p.Shares <= 0 {
		return 0
	}
	return p.Shares * p.AvgCost
}

// PortfolioSnapshot is the live portfolio state an order is validated
// against. PeakValue is the all-time high of TotalValue and is supplied by
// the caller; the engine does not track it.
type PortfolioSnapshot struct {
	CashBalance float64
	TotalValue  float64
	PeakValue   float64
	Positions   []Position
}

// FindPosition returns the snapshot position for a ticker, if held.
func (s PortfolioSnapshot) FindPosition(ticker string) (Position, bool) {
	for _, p := range s.Positions {
		if p.Ticker == ticker {
			return p, true
		}
	}
	return Position{}, false
}

// OpenPositionCount counts positions with shares remaining.
func (s PortfolioSnapshot) OpenPositionCount() int {
	n := 0
	for _, p := range s.Positions {
		if p.Open() {
			n++
		}
	}
	return n
}
