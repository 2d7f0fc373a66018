package domain

// Action represents the side of a trade record (BUY or SELL).
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// Severity classifies the outcome of a rule check.
// Error severity must block execution by the caller; warnings must not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// BlindSpotSeverity classifies a derived risk finding.
type BlindSpotSeverity string

const (
	BlindSpotDanger      BlindSpotSeverity = "danger"
	BlindSpotWarning     BlindSpotSeverity = "warning"
	BlindSpotInfo        BlindSpotSeverity = "info"
	BlindSpotOpportunity BlindSpotSeverity = "opportunity"
)

// Trend tags the cosmetic direction attached to a trait score.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Instrument types recognized by the wash-sale detector.
const (
	InstrumentEquity = "equity"
	InstrumentETF    = "etf"
	InstrumentOption = "option"
	InstrumentCrypto = "crypto"
)
