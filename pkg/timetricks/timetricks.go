package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat = "2006-01-02"
)

// Date is a calendar date in some location's local calendar. It carries no
// time zone of its own; the zone is whatever calendar it was read from.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	// Normalize in UTC so DST transitions can't shift the day.
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// Time returns midnight at the start of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d comes before other.
func (d Date) Before(other Date) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate reads a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q not in fmt %q: %w", s, dayFormat, err)
	}
	return DateOf(t), nil
}

// SameDay reports whether t falls on d in t's own location.
func SameDay(t time.Time, d Date) bool {
	return DateOf(t) == d
}
