package store

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout documents the external date-time format of the
// FindByDateRange bounds, the historical `YYYY-MM-DD HH24:MI:SS:MS` format.
// The milliseconds are separated by a colon, which Go's reference layout
// cannot express, so parsing normalizes the separator first.
const TimestampLayout = "2006-01-02 15:04:05:000"

// goTimestampLayout is TimestampLayout with the millisecond separator Go
// understands. Only used internally after normalization.
const goTimestampLayout = "2006-01-02 15:04:05.000"

// millisSeparatorIndex is the position of the colon between seconds and
// milliseconds in a well-formed bound.
const millisSeparatorIndex = len("2006-01-02 15:04:05")

// ParseTimestamp parses a date-range bound supplied by a caller. Both
// backends go through this function so they accept exactly the same
// external format. A malformed value is reported as ErrSerialization.
func ParseTimestamp(value string) (time.Time, error) {
	if len(value) != len(TimestampLayout) || value[millisSeparatorIndex] != ':' {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q, want format %s",
			ErrSerialization, value, TimestampLayout)
	}

	normalized := value[:millisSeparatorIndex] + "." + value[millisSeparatorIndex+1:]
	ts, err := time.Parse(goTimestampLayout, normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q, want format %s: %v",
			ErrSerialization, value, TimestampLayout, err)
	}
	return ts, nil
}

// FormatTimestamp renders a time in the external bound format. Mostly
// useful to callers building date-range queries from time.Time values.
func FormatTimestamp(ts time.Time) string {
	formatted := ts.Format(goTimestampLayout)
	return strings.Replace(formatted, ".", ":", 1)
}
