package ingest

import (
	"strconv"
	"strings"
	"time"

	"tradecoach/internal/domain"
)

// sellWords are matched as substrings of the cleaned action cell. Everything
// that does not match classifies as BUY; ambiguous rows are deliberately
// treated as acquisitions.
var sellWords = []string{"sell", "sold", "redemption", "withdraw"}

// Normalize converts mapped table rows into canonical trade records. Dirty
// cells degrade to defaults rather than failing: unparsable numbers become
// 0, unknown date formats pass through unchanged, and rows with an empty
// ticker or non-positive quantity are dropped as a data-quality filter.
func Normalize(table Table, mapping ColumnMapping) []domain.TradeRecord {
	idx := make(map[Field]int, len(mapping))
	for field, header := range mapping {
		if i := columnIndex(table.Headers, header); i >= 0 {
			idx[field] = i
		}
	}

	records := make([]domain.TradeRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		cell := func(f Field) string {
			i, ok := idx[f]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		rec := domain.TradeRecord{
			Date:       CleanDate(cell(FieldDate)),
			Ticker:     strings.ToUpper(strings.TrimSpace(cell(FieldTicker))),
			Action:     ClassifyAction(cell(FieldAction)),
			Quantity:   CleanNumber(cell(FieldQuantity)),
			Price:      CleanNumber(cell(FieldPrice)),
			Total:      CleanNumber(cell(FieldTotal)),
			Sector:     strings.TrimSpace(cell(FieldSector)),
			Account:    strings.TrimSpace(cell(FieldAccount)),
			Instrument: cleanInstrument(cell(FieldInstrument)),
		}
		if !rec.Valid() {
			continue
		}
		if rec.Total == 0 {
			rec.Total = rec.Quantity * rec.Price
		}
		records = append(records, rec)
	}
	return records
}

// columnIndex locates a header, falling back to a case-insensitive match
// when the literal header is not present.
func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// CleanNumber parses a numeric cell, stripping currency symbols, thousands
// separators and whitespace. A value wrapped in parentheses is negative.
// Unparsable values become 0.
func CleanNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			sb.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}

// dateLayouts are tried in order after the explicit formats below.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006/01/02",
}

// CleanDate converts a date cell to an ISO-8601 calendar date. Accepted
// forms: YYYY-MM-DD, MM/DD/YYYY, M/D/YY (two-digit year pivot: >50 means
// 1900s), MM-DD-YYYY, then a list of generic layouts. An unparsable value
// passes through unchanged; this function never fails.
func CleanDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02")
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) == 3 {
			month, merr := strconv.Atoi(parts[0])
			day, derr := strconv.Atoi(parts[1])
			year, yerr := strconv.Atoi(parts[2])
			if merr == nil && derr == nil && yerr == nil {
				if len(parts[2]) <= 2 {
					if year > 50 {
						year += 1900
					} else {
						year += 2000
					}
				}
				if validDate(year, month, day) {
					return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
				}
			}
		}
	}

	if t, err := time.Parse("01-02-2006", s); err == nil {
		return t.Format("2006-01-02")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

func validDate(year, month, day int) bool {
	return year >= 1000 && year <= 9999 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// ClassifyAction maps a raw action cell to BUY or SELL. A bare "s" or any
// cell containing sell/sold/redemption/withdraw classifies as SELL; every
// other value, including unknown transaction types, defaults to BUY.
func ClassifyAction(s string) domain.Action {
	a := strings.ToLower(strings.TrimSpace(s))
	if a == "s" {
		return domain.Sell
	}
	for _, w := range sellWords {
		if strings.Contains(a, w) {
			return domain.Sell
		}
	}
	return domain.Buy
}

func cleanInstrument(s string) string {
	inst := strings.ToLower(strings.TrimSpace(s))
	switch inst {
	case "", "stock", "share", "shares", domain.InstrumentEquity:
		return domain.InstrumentEquity
	case domain.InstrumentETF, "fund":
		return domain.InstrumentETF
	case domain.InstrumentOption, "call", "put":
		return domain.InstrumentOption
	case domain.InstrumentCrypto, "cryptocurrency", "coin":
		return domain.InstrumentCrypto
	default:
		return inst
	}
}
