package insights

// FeatureSet carries the precomputed numeric features the blind-spot
// deriver consumes. Features may originate from this engine or from an
// upstream holdings-analysis collaborator; a nil field means the feature
// was not supplied, which is distinct from a zero value.
type FeatureSet struct {
	TopPositionPct       *float64 // Largest single-position share of portfolio value, in percent
	HedgingScore         *float64 // 0 means no hedging activity at all
	OptionsNotional      *float64 // Total options notional in dollars
	DisciplineScore      *float64 // Discipline-style trait score, 0-100
	DisciplineEvidence   []string // Freeform evidence strings attached to the discipline score
	FeeDragPct           *float64 // Fees as a percent of portfolio value
	EarningsProximityPct *float64 // Share of trades placed near earnings dates, in percent
}

// Float is a convenience for building optional feature values.
func Float(v float64) *float64 {
	return &v
}
