// Package sources picks one of the offline sun times sources by name.
package sources

import (
	"fmt"

	"github.com/spencer-p/sunclock/pkg/ephemeris"
	"github.com/spencer-p/sunclock/pkg/sunset"
)

// Source names accepted by Named.
const (
	Keep94    = "keep94"
	GoSunrise = "gosunrise"
)

// Named returns the offline source called name, reading calendar dates in
// the zones zone gives.
func Named(name string, zone sunset.ZoneFunc) (sunset.SunTimesSource, error) {
	switch name {
	case Keep94:
		return sunset.Source{Zone: zone}, nil
	case GoSunrise:
		return ephemeris.Source{Zone: zone}, nil
	default:
		return nil, fmt.Errorf("unknown sun times source %q, want %q or %q", name, Keep94, GoSunrise)
	}
}
