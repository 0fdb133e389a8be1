package cache

import (
	"time"

	"github.com/spencer-p/sunclock/pkg/sunset"
	"github.com/spencer-p/sunclock/pkg/timetricks"
)

type sourceKey struct {
	loc  sunset.Location
	date timetricks.Date
}

// Source remembers the sun times another sunset.SunTimesSource returned for
// each location and date. Errors are not remembered.
type Source struct {
	next  sunset.SunTimesSource
	times *Timed[sourceKey, sunset.SunTimesOfDay]
}

var _ sunset.SunTimesSource = &Source{}

// NewSource wraps next with a cache whose entries live for ttl.
func NewSource(next sunset.SunTimesSource, ttl time.Duration) *Source {
	return &Source{
		next:  next,
		times: NewTimed[sourceKey, sunset.SunTimesOfDay](ttl),
	}
}

func (s *Source) SunTimes(loc sunset.Location, date timetricks.Date) (sunset.SunTimesOfDay, error) {
	key := sourceKey{loc, date}
	if cached, ok := s.times.Get(key); ok {
		return cached, nil
	}

	times, err := s.next.SunTimes(loc, date)
	if err != nil {
		return sunset.SunTimesOfDay{}, err
	}
	s.times.Set(key, times)
	return times, nil
}
