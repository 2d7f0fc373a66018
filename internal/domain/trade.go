package domain

// TradeRecord is the canonical, immutable form of one imported brokerage row.
// Records are produced by the normalizer and never mutated afterwards.
type TradeRecord struct {
	Date       string  // ISO-8601 calendar date ("2024-01-02"); raw string if unparsable
	Ticker     string  // Uppercase symbol, never empty
	Action     Action  // BUY or SELL
	Quantity   float64 // Always > 0
	Price      float64 // Per-unit price, >= 0
	Total      float64 // Gross amount; defaults to Quantity*Price when absent
	Sector     string  // Sector label if the export carried one
	Account    string  // Account identifier if the export carried one
	Instrument string  // equity, etf, option, crypto; defaults to equity
}

// Valid reports whether the record satisfies the canonical invariants
// (non-empty ticker and positive quantity). Invalid records are dropped
// during normalization rather than surfaced as errors.
func (t TradeRecord) Valid() bool {
	return t.Ticker != "" && t.Quantity > 0
}

// TradeOrder is a proposed order evaluated against the rule book before it
// is allowed to execute in the simulated portfolio.
type TradeOrder struct {
	Ticker   string
	Side     Action
	Quantity float64
	Price    float64
	Sector   string
}

// Value returns the gross notional of the order.
func (o TradeOrder) Value() float64 {
	return o.Quantity * o.Price
}
