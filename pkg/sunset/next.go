package sunset

import (
	"fmt"
	"time"

	"github.com/spencer-p/sunclock/pkg/timetricks"
)

// DefaultMaxDaysSearched is how many calendar dates NextEvent looks at when
// a Calculator does not say otherwise.
const DefaultMaxDaysSearched = 3

// NextEvent finds whichever of sunrise or sunset comes next after now at loc.
// It walks forward one local calendar date at a time, asking src for that
// date's sun times, and gives up with ErrNoUpcomingEvent after maxDays dates.
//
// Dates where the sun neither rises nor sets are skipped. Errors from src and
// clock are returned as is.
func NextEvent(loc Location, now LocalInstant, src SunTimesSource, clock LocalClock, maxDays int) (Result, error) {
	if maxDays < 1 {
		return Result{}, fmt.Errorf("%w: %d days", ErrInvalidSearchBound, maxDays)
	}
	if now.Location != loc {
		return Result{}, fmt.Errorf("%w: now is at %s, not %s", ErrLocationMismatch, now.Location, loc)
	}

	today, err := clock.CalendarDate(now)
	if err != nil {
		return Result{}, err
	}

	for offset := 0; offset < maxDays; offset++ {
		date := today.AddDays(offset)

		times, err := src.SunTimes(loc, date)
		if err != nil {
			return Result{}, err
		}
		if times.Polar() {
			continue
		}
		if times.Partial() {
			return Result{}, fmt.Errorf("%w: %s at %s has only one of sunrise and sunset",
				ErrInconsistentSunTimes, date, loc)
		}

		toSunrise, err := secondsUntil(loc, now, times.Sunrise, clock)
		if err != nil {
			return Result{}, err
		}
		if toSunrise > 0 {
			return newResult(Sunrise, toSunrise)
		}

		toSunset, err := secondsUntil(loc, now, times.Sunset, clock)
		if err != nil {
			return Result{}, err
		}
		if toSunset > 0 {
			return newResult(Sunset, toSunset)
		}
		// Both already happened, try the next date.
	}

	return Result{}, fmt.Errorf("%w: searched %d days from %s at %s",
		ErrNoUpcomingEvent, maxDays, today, loc)
}

func secondsUntil(loc Location, now LocalInstant, utc time.Time, clock LocalClock) (int64, error) {
	local, err := clock.UTCToLocal(loc, utc)
	if err != nil {
		return 0, err
	}
	return now.Until(local)
}

func newResult(e Event, seconds int64) (Result, error) {
	human, err := timetricks.FormatSeconds(seconds)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Event:   e,
		Seconds: seconds,
		Human:   human,
	}, nil
}

// Calculator bundles a SunTimesSource and LocalClock so callers don't have to
// pass them on every call. It holds no mutable state; it is as safe for
// concurrent use as its Source and Clock are.
type Calculator struct {
	Source SunTimesSource
	Clock  LocalClock

	// MaxDaysSearched bounds the search, zero means DefaultMaxDaysSearched.
	MaxDaysSearched int

	// TimeNow is used by Now, defaulting to time.Now.
	TimeNow func() time.Time
}

// NextEvent is NextEvent using the Calculator's capabilities.
func (c *Calculator) NextEvent(loc Location, now LocalInstant) (Result, error) {
	maxDays := c.MaxDaysSearched
	if maxDays == 0 {
		maxDays = DefaultMaxDaysSearched
	}
	return NextEvent(loc, now, c.Source, c.Clock, maxDays)
}

// Now returns the current wall clock time at loc.
func (c *Calculator) Now(loc Location) (LocalInstant, error) {
	now := time.Now
	if c.TimeNow != nil {
		now = c.TimeNow
	}
	return c.Clock.UTCToLocal(loc, now().UTC())
}

// NextEventFromNow finds the next sun event at loc from the current time.
func (c *Calculator) NextEventFromNow(loc Location) (Result, error) {
	now, err := c.Now(loc)
	if err != nil {
		return Result{}, err
	}
	return c.NextEvent(loc, now)
}
