package timetricks

import (
	"errors"
	"fmt"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	lessThanAMinute = "less than a minute"
)

// ErrInvalidDuration is returned when asked to format a negative span.
var ErrInvalidDuration = errors.New("invalid duration")

// FormatSeconds renders a non-negative number of seconds as days, hours and
// minutes, e.g. "1 day, 1 hour, 1 minute". Leftover seconds are dropped and
// zero components are left out. Spans shorter than a minute are "less than a
// minute".
func FormatSeconds(total int64) (string, error) {
	if total < 0 {
		return "", fmt.Errorf("%w: %d seconds is negative", ErrInvalidDuration, total)
	}

	days := total / secondsPerDay
	total %= secondsPerDay
	hours := total / secondsPerHour
	total %= secondsPerHour
	minutes := total / secondsPerMinute

	parts := make([]string, 0, 3)
	for _, c := range []struct {
		n    int64
		unit string
	}{{days, "day"}, {hours, "hour"}, {minutes, "minute"}} {
		if c.n == 0 {
			continue
		}
		parts = append(parts, plural(c.n, c.unit))
	}

	if len(parts) == 0 {
		return lessThanAMinute, nil
	}
	return strings.Join(parts, ", "), nil
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
