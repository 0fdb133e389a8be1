package sunset

import (
	"math"
	"time"

	"github.com/spencer-p/sunclock/pkg/timetricks"

	"github.com/keep94/sunrise"
)

// maxAlignSteps bounds how far Source will step the sunrise package to land
// on the requested date.
const maxAlignSteps = 3

// Source computes sun times locally with the keep94/sunrise package. It is
// safe for concurrent use if Zone is.
type Source struct {
	// Zone gives the civil zone whose calendar dates are asked for. Nil
	// falls back to the mean solar zone of the longitude, which is wrong
	// wherever the civil zone is far from solar time (e.g. Samoa, Kiribati).
	Zone ZoneFunc
}

// SunTimes returns the sunrise on date at loc, read in loc's civil zone, and
// the sunset that follows it, both in UTC.
func (src Source) SunTimes(loc Location, date timetricks.Date) (SunTimesOfDay, error) {
	zone, err := src.zone(loc)
	if err != nil {
		return SunTimesOfDay{}, err
	}
	noon := date.Time(zone).Add(12 * time.Hour)

	var s sunrise.Sunrise
	s.Around(loc.Lat, loc.Long, noon)

	// The sunrise package is not very clean with its dates, so step it until
	// the sunrise lands on the date we asked for.
	for i := 0; i < maxAlignSteps && !timetricks.SameDay(s.Sunrise().In(zone), date); i++ {
		if timetricks.DateOf(s.Sunrise().In(zone)).Before(date) {
			s.AddDays(1)
		} else {
			s.AddDays(-1)
		}
	}

	result := SunTimesOfDay{Date: date}
	rise, set := s.Sunrise().In(zone), s.Sunset().In(zone)
	if !timetricks.SameDay(rise, date) || !plausible(rise, set) {
		// No usable events, as happens when the sun stays up or down.
		return result, nil
	}
	result.Sunrise = rise.UTC()
	result.Sunset = set.UTC()
	return result, nil
}

func (src Source) zone(loc Location) (*time.Location, error) {
	if src.Zone == nil {
		return SolarZone(loc.Long), nil
	}
	return src.Zone(loc)
}

// plausible reports whether rise and set look like one real day's events.
func plausible(rise, set time.Time) bool {
	dayLength := set.Sub(rise)
	return dayLength > 0 && dayLength < 24*time.Hour
}

// SolarZone approximates local time at a longitude with a whole-hour offset.
func SolarZone(long float64) *time.Location {
	hours := int(math.Round(long / 15))
	return time.FixedZone("", hours*60*60)
}
