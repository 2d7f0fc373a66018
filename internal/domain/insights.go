package domain

// RuleCheck is the outcome of one rule evaluation against a proposed order.
// It is a pure output value, never stored. Error severity blocks execution;
// warnings are informational only.
type RuleCheck struct {
	Rule     string
	Passed   bool
	Message  string
	Current  float64
	Limit    float64
	Severity Severity
}

// Evidence is one labeled data point backing a blind-spot finding.
type Evidence struct {
	Label string
	Value string
}

// BlindSpot is a derived, human-readable risk or opportunity finding.
// Findings are stateless and recomputed per request; bodies are generated
// deterministically from the numeric evidence.
type BlindSpot struct {
	Severity BlindSpotSeverity
	Title    string
	Body     string
	Evidence []Evidence
}

// WashSaleResult aggregates detected wash-sale events. A nil result means
// detection was not applicable (no equity/ETF trades, no sells, or no buys),
// which callers must distinguish from zero events found.
type WashSaleResult struct {
	TickerCount       int
	TotalEvents       int
	TopTicker         string
	TopTickerEvents   int
	CrossAccountCount int
}
