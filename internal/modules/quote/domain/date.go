package domain

import "time"

// DateLayout is the only date form stored or compared.
const DateLayout = time.DateOnly

// Clock returns the current instant. Services take one so tests can pin "today".
type Clock func() time.Time

// FormatDate renders t's calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the calendar date of clock() as YYYY-MM-DD.
func (c Clock) Today() string {
	if c == nil {
		return FormatDate(time.Now())
	}
	return FormatDate(c())
}

// MidnightUTC parses a YYYY-MM-DD date as 00:00 UTC of that day.
func MidnightUTC(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}
