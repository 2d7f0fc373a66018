package insights

import (
	"regexp"
	"strconv"
)

var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// ExtractPercent pulls the first percentage figure out of a freeform
// evidence string. This is best-effort text mining over strings produced
// elsewhere; a failed extraction means "evidence without a parsed
// statistic", not an error.
func ExtractPercent(s string) (float64, bool) {
	m := percentPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractPercentFrom scans a list of evidence strings and returns the first
// percentage found.
func ExtractPercentFrom(evidence []string) (float64, bool) {
	for _, s := range evidence {
		if v, ok := ExtractPercent(s); ok {
			return v, true
		}
	}
	return 0, false
}
