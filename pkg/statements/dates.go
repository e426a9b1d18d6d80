package statements

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the formats entity documents use for time values
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02",
	"2006",
}

// ParseDate parses an ISO-8601 date value from an entity document
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimPrefix(value, "+")
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// YearOf extracts the year from a date value. Falls back to reading the
// leading digits so partially precise values like "1987-00-00" still
// yield a year.
func YearOf(value string) (int, bool) {
	if parsed, ok := ParseDate(value); ok {
		return parsed.Year(), true
	}

	value = strings.TrimPrefix(value, "+")
	if idx := strings.IndexByte(value, '-'); idx > 0 {
		value = value[:idx]
	}
	year, err := strconv.Atoi(value)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// Before reports whether a comes strictly before b. Either value being
// unparseable yields false so callers treat unknown ordering explicitly.
func Before(a, b string) bool {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	if !okA || !okB {
		return false
	}
	return ta.Before(tb)
}
