package ingest

import "regexp"

// Field names a canonical trade column.
type Field string

const (
	FieldDate       Field = "date"
	FieldTicker     Field = "ticker"
	FieldAction     Field = "action"
	FieldQuantity   Field = "quantity"
	FieldPrice      Field = "price"
	FieldTotal      Field = "total"
	FieldSector     Field = "sector"
	FieldAccount    Field = "account"
	FieldInstrument Field = "instrument"
)

// RequiredFields are the fields a row must resolve for normalization to
// produce a usable record. Total and the descriptive fields are optional.
var RequiredFields = []Field{FieldDate, FieldTicker, FieldAction, FieldQuantity, FieldPrice}

// ColumnMapping maps canonical fields to literal header strings. Fields the
// inference could not resolve are simply absent; the mapping is advisory and
// callers may override it.
type ColumnMapping map[Field]string

// Merge returns a copy of m with the override mapping applied on top.
// Overrides always win, including overrides for fields m already resolved.
func (m ColumnMapping) Merge(override ColumnMapping) ColumnMapping {
	out := make(ColumnMapping, len(m)+len(override))
	for f, h := range m {
		out[f] = h
	}
	for f, h := range override {
		out[f] = h
	}
	return out
}

// inferenceOrder fixes the iteration order so that earlier fields claim
// headers first and repeated runs produce identical mappings.
var inferenceOrder = []Field{
	FieldDate, FieldTicker, FieldAction, FieldQuantity, FieldPrice,
	FieldTotal, FieldSector, FieldAccount, FieldInstrument,
}

// fieldPatterns holds the ordered, case-insensitive patterns tried for each
// field. The first header matching any pattern wins.
var fieldPatterns = map[Field][]*regexp.Regexp{
	FieldDate: {
		regexp.MustCompile(`(?i)date`),
		regexp.MustCompile(`(?i)trade.?date`),
		regexp.MustCompile(`(?i)settlement`),
		regexp.MustCompile(`(?i)time`),
		regexp.MustCompile(`(?i)executed`),
	},
	FieldTicker: {
		regexp.MustCompile(`(?i)ticker`),
		regexp.MustCompile(`(?i)symbol`),
		regexp.MustCompile(`(?i)instrument`),
		regexp.MustCompile(`(?i)security`),
	},
	FieldAction: {
		regexp.MustCompile(`(?i)action`),
		regexp.MustCompile(`(?i)\bside\b`),
		regexp.MustCompile(`(?i)transaction`),
		regexp.MustCompile(`(?i)activity`),
		regexp.MustCompile(`(?i)type`),
	},
	FieldQuantity: {
		regexp.MustCompile(`(?i)quantity`),
		regexp.MustCompile(`(?i)qty`),
		regexp.MustCompile(`(?i)shares`),
		regexp.MustCompile(`(?i)units`),
	},
	FieldPrice: {
		regexp.MustCompile(`(?i)price`),
		regexp.MustCompile(`(?i)rate`),
		regexp.MustCompile(`(?i)unit.?cost`),
	},
	FieldTotal: {
		regexp.MustCompile(`(?i)total`),
		regexp.MustCompile(`(?i)amount`),
		regexp.MustCompile(`(?i)value`),
		regexp.MustCompile(`(?i)proceeds`),
		regexp.MustCompile(`(?i)\bnet\b`),
	},
	FieldSector: {
		regexp.MustCompile(`(?i)sector`),
		regexp.MustCompile(`(?i)industry`),
		regexp.MustCompile(`(?i)category`),
	},
	FieldAccount: {
		regexp.MustCompile(`(?i)account`),
	},
	FieldInstrument: {
		regexp.MustCompile(`(?i)asset.?(class|type)`),
		regexp.MustCompile(`(?i)instrument.?type`),
	},
}

// InferColumns maps canonical fields to headers by trying each field's
// ordered pattern list against the header set. A header claimed by an
// earlier field is skipped, so no header is mapped twice. Unmatched fields
// are left out of the mapping.
func InferColumns(headers []string) ColumnMapping {
	mapping := make(ColumnMapping)
	claimed := make(map[string]bool)

	for _, field := range inferenceOrder {
	patterns:
		for _, pat := range fieldPatterns[field] {
			for _, h := range headers {
				if claimed[h] {
					continue
				}
				if pat.MatchString(h) {
					mapping[field] = h
					claimed[h] = true
					break patterns
				}
			}
		}
	}
	return mapping
}
