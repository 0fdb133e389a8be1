// Package tz places coordinates in time zones so UTC instants can be read as
// local wall clock times.
package tz

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/spencer-p/sunclock/pkg/sunset"
	"github.com/spencer-p/sunclock/pkg/timetricks"
)

// Finder names the IANA zone containing a coordinate, or returns "" if it
// doesn't know. tzf.F satisfies it.
type Finder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Clock is a sunset.LocalClock that looks zones up with a Finder. Loaded
// zones are remembered by name, so memory stays bounded by the number of
// zones no matter how many coordinates are asked about. It is safe for
// concurrent use.
type Clock struct {
	finder Finder

	// Fallback is used for coordinates the Finder has no zone for. Nil
	// makes those coordinates fail with sunset.ErrTimezoneResolution.
	Fallback *time.Location

	mu    sync.RWMutex
	zones map[string]*time.Location
}

var _ sunset.LocalClock = &Clock{}

// NewClock returns a Clock backed by tzf's default dataset.
func NewClock() (*Clock, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone data: %w", err)
	}
	return NewClockWithFinder(finder), nil
}

// NewClockWithFinder returns a Clock that uses finder.
func NewClockWithFinder(finder Finder) *Clock {
	return &Clock{
		finder: finder,
		zones:  make(map[string]*time.Location),
	}
}

// Zone returns the time zone loc is in. It is a sunset.ZoneFunc.
func (c *Clock) Zone(loc sunset.Location) (*time.Location, error) {
	if loc.Lat < -90 || loc.Lat > 90 || loc.Long < -180 || loc.Long > 180 {
		return nil, fmt.Errorf("%w: coordinate %s out of range", sunset.ErrTimezoneResolution, loc)
	}
	name := c.finder.GetTimezoneName(loc.Long, loc.Lat)
	if name == "" {
		if c.Fallback != nil {
			return c.Fallback, nil
		}
		return nil, fmt.Errorf("%w: no zone contains %s", sunset.ErrTimezoneResolution, loc)
	}

	c.mu.RLock()
	zone, ok := c.zones[name]
	c.mu.RUnlock()
	if ok {
		return zone, nil
	}

	zone, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: zone %q for %s: %v", sunset.ErrTimezoneResolution, name, loc, err)
	}

	c.mu.Lock()
	c.zones[name] = zone
	c.mu.Unlock()
	return zone, nil
}

// Len returns how many zones have been loaded.
func (c *Clock) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.zones)
}

// UTCToLocal reads utc on loc's wall clock.
func (c *Clock) UTCToLocal(loc sunset.Location, utc time.Time) (sunset.LocalInstant, error) {
	zone, err := c.Zone(loc)
	if err != nil {
		return sunset.LocalInstant{}, err
	}
	return sunset.LocalInstant{Location: loc, Wall: utc.In(zone)}, nil
}

// CalendarDate returns the local date of li. The date is taken in li's
// Location's zone regardless of how li.Wall was constructed.
func (c *Clock) CalendarDate(li sunset.LocalInstant) (timetricks.Date, error) {
	zone, err := c.Zone(li.Location)
	if err != nil {
		return timetricks.Date{}, err
	}
	return timetricks.DateOf(li.Wall.In(zone)), nil
}

// Fixed is a sunset.LocalClock that puts every location in one zone. It suits
// callers that already know the zone of the place they ask about.
type Fixed struct {
	Zone *time.Location
}

var _ sunset.LocalClock = Fixed{}

// ZoneOf returns f.Zone for any loc. It is a sunset.ZoneFunc.
func (f Fixed) ZoneOf(loc sunset.Location) (*time.Location, error) {
	if f.Zone == nil {
		return nil, fmt.Errorf("%w: no zone configured", sunset.ErrTimezoneResolution)
	}
	return f.Zone, nil
}

func (f Fixed) UTCToLocal(loc sunset.Location, utc time.Time) (sunset.LocalInstant, error) {
	if f.Zone == nil {
		return sunset.LocalInstant{}, fmt.Errorf("%w: no zone configured", sunset.ErrTimezoneResolution)
	}
	return sunset.LocalInstant{Location: loc, Wall: utc.In(f.Zone)}, nil
}

func (f Fixed) CalendarDate(li sunset.LocalInstant) (timetricks.Date, error) {
	if f.Zone == nil {
		return timetricks.Date{}, fmt.Errorf("%w: no zone configured", sunset.ErrTimezoneResolution)
	}
	return timetricks.DateOf(li.Wall.In(f.Zone)), nil
}
