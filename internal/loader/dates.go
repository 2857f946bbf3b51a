package loader

import (
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the layout used whenever a date is rendered
const DateLayout = "2006-01-02"

// ParseDate parses a date cell with a permissive parser. The result is the
// cell's wall-clock time expressed in UTC.
// A blank cell yields (nil, true); an unparsable one yields (nil, false).
// Dates never make a row fail.
func ParseDate(s string) (*time.Time, bool) {
	if isBlank(s) {
		return nil, true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil, false
	}
	// keep the wall clock of the cell; an offset must not move the date
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return &t, true
}

// FormatDate renders d with DateLayout, or "" when it is missing
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}
