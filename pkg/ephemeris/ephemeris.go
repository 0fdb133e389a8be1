package ephemeris

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/spencer-p/sunclock/pkg/sunset"
	"github.com/spencer-p/sunclock/pkg/timetricks"
)

// Source is a sunset.SunTimesSource. It is safe for concurrent use if Zone
// is.
type Source struct {
	// Zone gives the civil zone whose calendar dates are asked for. Nil
	// falls back to sunset.SolarZone.
	Zone sunset.ZoneFunc
}

var _ sunset.SunTimesSource = Source{}

// SunTimes returns the sunrise on date at loc, read in loc's civil zone, and
// the sunset that follows it, both in UTC.
func (src Source) SunTimes(loc sunset.Location, date timetricks.Date) (sunset.SunTimesOfDay, error) {
	if !valid(loc) {
		return sunset.SunTimesOfDay{}, fmt.Errorf("%w: coordinate %s out of range",
			sunset.ErrSunTimesUnavailable, loc)
	}
	zone, err := src.zone(loc)
	if err != nil {
		return sunset.SunTimesOfDay{}, err
	}

	result := sunset.SunTimesOfDay{Date: date}
	// go-sunrise computes around solar noon of the date it is given, which
	// can be a day away from the civil date. Try the neighbours too and keep
	// the day whose sunrise is on the civil date.
	for _, offset := range []int{0, -1, 1} {
		d := date.AddDays(offset)
		rise, set := sunrise.SunriseSunset(loc.Lat, loc.Long, d.Year, d.Month, d.Day)
		if rise.IsZero() || set.IsZero() {
			// go-sunrise gives zero times for both when the sun never
			// crosses the horizon.
			continue
		}
		if !timetricks.SameDay(rise.In(zone), date) {
			continue
		}
		result.Sunrise = rise.UTC()
		result.Sunset = set.UTC()
		return result, nil
	}
	return result, nil
}

func (src Source) zone(loc sunset.Location) (*time.Location, error) {
	if src.Zone == nil {
		return sunset.SolarZone(loc.Long), nil
	}
	return src.Zone(loc)
}

func valid(loc sunset.Location) bool {
	return loc.Lat >= -90 && loc.Lat <= 90 && loc.Long >= -180 && loc.Long <= 180
}
