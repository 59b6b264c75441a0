package catalog

import (
	"errors"
	"time"
)

// DateLayout is the persisted format for all dates.
const DateLayout = "2006-01-02"

// ToDate truncates a timestamp to its calendar date in UTC.
// All persisted dates carry no time-of-day component.
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in the persisted format, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(DateLayout)
}

// ParseDate parses a persisted date. An empty string parses to the zero time,
// representing an absent date.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.Join(ErrMalformedRow, err)
	}

	return ToDate(parsed), nil
}

// DaysBetween returns the whole-day difference between two timestamps,
// ignoring any time-of-day component.
func DaysBetween(from time.Time, to time.Time) int {
	return int(ToDate(to).Sub(ToDate(from)).Hours() / 24)
}
