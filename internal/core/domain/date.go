package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format of every calendar date (no time, no zone).
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid calendar date (expected YYYY-MM-DD)")
)

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// NormalizeDate keeps the wall-clock calendar day of t, as seen in t's own
// location, and returns it as midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the calendar day of now in loc. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return NormalizeDate(now.In(loc))
}
