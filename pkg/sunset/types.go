package sunset

import (
	"errors"
	"fmt"
	"time"

	"github.com/spencer-p/sunclock/pkg/timetricks"
)

var (
	// ErrInconsistentSunTimes means a source returned a sunrise without a
	// sunset or the other way around.
	ErrInconsistentSunTimes = errors.New("inconsistent sun times")

	// ErrNoUpcomingEvent means no sunrise or sunset was found in the
	// searched days.
	ErrNoUpcomingEvent = errors.New("no upcoming sun event")

	// ErrSunTimesUnavailable is wrapped by SunTimesSource implementations
	// when they cannot produce sun times.
	ErrSunTimesUnavailable = errors.New("sun times unavailable")

	// ErrTimezoneResolution is wrapped by LocalClock implementations when
	// they cannot place a location in a time zone.
	ErrTimezoneResolution = errors.New("time zone resolution failed")

	// ErrLocationMismatch is returned when local instants of two different
	// locations are compared.
	ErrLocationMismatch = errors.New("local instants are for different locations")

	// ErrInvalidSearchBound is returned for a search bound under one day.
	ErrInvalidSearchBound = errors.New("invalid search bound")
)

// Location is a lat/long coordinate on the Earth in decimal degrees.
type Location struct {
	Lat, Long float64
}

func (l Location) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Lat, l.Long)
}

// LocalInstant is a wall clock time at a Location. The zone of Wall is the
// UTC offset in effect there at that moment.
type LocalInstant struct {
	Location Location
	Wall     time.Time
}

// Offset returns the UTC offset the wall clock was produced with.
func (li LocalInstant) Offset() time.Duration {
	_, secs := li.Wall.Zone()
	return time.Duration(secs) * time.Second
}

// Until returns the whole number of seconds from li to later, truncated
// toward zero. Both must be for the same Location.
func (li LocalInstant) Until(later LocalInstant) (int64, error) {
	if li.Location != later.Location {
		return 0, fmt.Errorf("%w: %s and %s", ErrLocationMismatch, li.Location, later.Location)
	}
	// time.Time.Sub compares absolute instants, so the full date takes part
	// in the difference and the offsets cancel out.
	return int64(later.Wall.Sub(li.Wall) / time.Second), nil
}

func (li LocalInstant) String() string {
	return fmt.Sprintf("%s at %s", li.Wall.Format(time.RFC822Z), li.Location)
}

// SunTimesOfDay holds one calendar date's sunrise and sunset in UTC. A zero
// time means the event does not happen on that date.
type SunTimesOfDay struct {
	Date    timetricks.Date
	Sunrise time.Time
	Sunset  time.Time
}

// Polar reports whether neither event happens on the date.
func (s SunTimesOfDay) Polar() bool {
	return s.Sunrise.IsZero() && s.Sunset.IsZero()
}

// Partial reports whether exactly one event is present.
func (s SunTimesOfDay) Partial() bool {
	return s.Sunrise.IsZero() != s.Sunset.IsZero()
}

// Event encodes a sunrise or sunset event.
type Event bool

const (
	Sunrise Event = true
	Sunset  Event = false
)

func (e Event) String() string {
	if e == Sunrise {
		return "sunrise"
	}
	return "sunset"
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Result is the next sun event from some instant and how far away it is.
type Result struct {
	Event Event `json:"event"`
	// Seconds until the event, always positive.
	Seconds int64 `json:"seconds"`
	// Human is Seconds formatted by timetricks.FormatSeconds.
	Human string `json:"human"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s in %s", r.Event, r.Human)
}

// SunTimesSource looks up the sunrise and sunset of a calendar date.
type SunTimesSource interface {
	SunTimes(loc Location, date timetricks.Date) (SunTimesOfDay, error)
}

// ZoneFunc returns the civil time zone a Location keeps. Sources use it to
// read calendar dates the same way the LocalClock does.
type ZoneFunc func(loc Location) (*time.Location, error)

// LocalClock converts UTC instants to a location's wall clock.
type LocalClock interface {
	UTCToLocal(loc Location, utc time.Time) (LocalInstant, error)
	CalendarDate(li LocalInstant) (timetricks.Date, error)
}
