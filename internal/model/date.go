package model

import "time"

// DateFormat is the ISO calendar date layout used for storage and export.
const DateFormat = "2006-01-02"

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
