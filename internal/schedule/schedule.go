// Package schedule turns reservation date and time strings into the
// calendar facts the menu rules are written against: a weekday ordinal
// (Monday = 0 … Sunday = 6) and minutes elapsed since midnight.
//
// Everything here is pure and zone-naive. Dates are interpreted on the
// civil calendar; no wall clock is consulted.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Fixed input layouts accepted by every tool.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ErrMalformedInput is wrapped by every parse failure in this package.
var ErrMalformedInput = errors.New("malformed input")

// Weekday ordinals, Monday first.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Moment is a requested date/time reduced to what the rules need.
type Moment struct {
	Weekday int
	Minutes int
}

// Evaluate parses date (YYYY-MM-DD) and hhmm (HH:MM).
func Evaluate(date, hhmm string) (Moment, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return Moment{}, fmt.Errorf("%w: date %q must use YYYY-MM-DD", ErrMalformedInput, date)
	}
	minutes, err := ParseMinutes(hhmm)
	if err != nil {
		return Moment{}, err
	}
	return Moment{Weekday: ordinal(d.Weekday()), Minutes: minutes}, nil
}

// ParseMinutes converts HH:MM into minutes since midnight.
func ParseMinutes(hhmm string) (int, error) {
	t, err := time.Parse(TimeLayout, hhmm)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q must use HH:MM", ErrMalformedInput, hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes since midnight as HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ordinal shifts Go's Sunday-first weekday to Monday = 0.
func ordinal(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// IsWeekdayIn reports whether weekday falls in the closed range [from, to].
func IsWeekdayIn(weekday, from, to int) bool {
	return weekday >= from && weekday <= to
}
