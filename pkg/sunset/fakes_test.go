package sunset

import (
	"fmt"
	"time"

	"github.com/spencer-p/sunclock/pkg/timetricks"
)

// fakeSource serves canned sun times and counts lookups.
type fakeSource struct {
	days  map[timetricks.Date]SunTimesOfDay
	calls int
}

func (f *fakeSource) SunTimes(loc Location, date timetricks.Date) (SunTimesOfDay, error) {
	f.calls++
	times, ok := f.days[date]
	if !ok {
		return SunTimesOfDay{}, fmt.Errorf("%w: no data for %s", ErrSunTimesUnavailable, date)
	}
	return times, nil
}

// polarSource never has a sunrise or sunset.
type polarSource struct {
	calls int
}

func (p *polarSource) SunTimes(loc Location, date timetricks.Date) (SunTimesOfDay, error) {
	p.calls++
	return SunTimesOfDay{Date: date}, nil
}

// zoneClock puts every location in one zone.
type zoneClock struct {
	zone *time.Location
	err  error
}

func (z zoneClock) UTCToLocal(loc Location, utc time.Time) (LocalInstant, error) {
	if z.err != nil {
		return LocalInstant{}, z.err
	}
	return LocalInstant{Location: loc, Wall: utc.In(z.zone)}, nil
}

func (z zoneClock) CalendarDate(li LocalInstant) (timetricks.Date, error) {
	if z.err != nil {
		return timetricks.Date{}, z.err
	}
	return timetricks.DateOf(li.Wall), nil
}

var (
	santaCruz = Location{36.9741, -122.0308}
	pdt       = time.FixedZone("PDT", -7*60*60)
)

// day builds sun times for date from local clock readings in zone.
func day(zone *time.Location, date timetricks.Date, riseH, riseM, setH, setM int) SunTimesOfDay {
	midnight := date.Time(zone)
	return SunTimesOfDay{
		Date:    date,
		Sunrise: midnight.Add(time.Duration(riseH)*time.Hour + time.Duration(riseM)*time.Minute).UTC(),
		Sunset:  midnight.Add(time.Duration(setH)*time.Hour + time.Duration(setM)*time.Minute).UTC(),
	}
}

func localAt(loc Location, zone *time.Location, date timetricks.Date, h, m, s int) LocalInstant {
	return LocalInstant{
		Location: loc,
		Wall:     time.Date(date.Year, date.Month, date.Day, h, m, s, 0, zone),
	}
}
