package values

import (
	"time"
)

const (
	// ISODateLayout is the layout of the date prefix of commissioning dates.
	ISODateLayout = "2006-01-02"

	// NoDateKey is the date key of records without a usable date. It never
	// matches a calendar row.
	NoDateKey = 0
)

// Range sentinels. Parsed dates always have four-digit years, so neither
// sentinel can be observed in data.
var (
	MinDate = time.Date(-99999, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(99999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// ParseDate extracts the ISO date held in the first 10 characters of s.
// Anything after them (usually a time component) is ignored. Strings that
// are shorter, or whose prefix is not a valid calendar date, report false.
func ParseDate(s string) (time.Time, bool) {
	if len(s) < len(ISODateLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(ISODateLayout, s[:len(ISODateLayout)], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateKey encodes t as the integer YYYYMMDD.
func DateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// DateKeyOf parses s and returns its date key, or NoDateKey when s holds
// no usable date.
func DateKeyOf(s string) int {
	t, ok := ParseDate(s)
	if !ok {
		return NoDateKey
	}
	return DateKey(t)
}
