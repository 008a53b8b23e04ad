// Package civiltime works with dates in the fixed civil calendar of the business.
// Civil dates are represented as time.Time at midnight UTC; only the Y/M/D
// components are meaningful.
package civiltime

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DateFormat is the wire format of civil dates.
const DateFormat = "2006-01-02"

// Clock returns "now" in the business time zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a clock bound to the IANA time zone name.
func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixedClock returns a clock that always reports t. Used in tests and tools.
func NewFixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Now returns the current instant in the business time zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Location returns the business time zone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Today returns the current civil date.
func (c *Clock) Today() time.Time {
	return DateOf(c.Now())
}

// DateOf strips the clock part of t and returns its civil date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a civil date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate formats the civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return DateOf(t).Format(DateFormat)
}

// SameDay reports whether a and b fall on the same civil date, each read in its own location.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Before reports whether the civil date of a is strictly before that of b.
func Before(a, b time.Time) bool {
	return DateOf(a).Before(DateOf(b))
}

// MinutesOfDay returns minutes elapsed since midnight, seconds truncated.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MonthRange returns the first and last civil dates of the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}
