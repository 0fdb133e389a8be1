package main

import (
	"fmt"
	"log"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/sunclock/pkg/cache"
	"github.com/spencer-p/sunclock/pkg/handlers"
	"github.com/spencer-p/sunclock/pkg/metrics"
	"github.com/spencer-p/sunclock/pkg/sources"
	"github.com/spencer-p/sunclock/pkg/sunset"
	"github.com/spencer-p/sunclock/pkg/tz"
)

type Config struct {
	Port     string        `default:"8080"`
	Prefix   string        `default:"/"`
	MaxDays  int           `default:"3" split_words:"true"`
	Source   string        `default:"keep94"`
	CacheTTL time.Duration `default:"24h" split_words:"true"`

	// Zone pins every location to one IANA zone instead of looking zones up
	// by coordinate.
	Zone string

	// DefaultZone is used for coordinates with no zone on record, such as
	// open ocean. Without it those coordinates are rejected.
	DefaultZone string `split_words:"true"`
}

func newCalculator(env Config) (*sunset.Calculator, error) {
	if env.MaxDays < 1 {
		return nil, fmt.Errorf("max days must be at least 1, got %d", env.MaxDays)
	}

	var (
		clock  sunset.LocalClock
		zoneOf sunset.ZoneFunc
	)
	if env.Zone != "" {
		zone, err := time.LoadLocation(env.Zone)
		if err != nil {
			return nil, fmt.Errorf("bad zone %q: %w", env.Zone, err)
		}
		fixed := tz.Fixed{Zone: zone}
		clock, zoneOf = fixed, fixed.ZoneOf
	} else {
		c, err := tz.NewClock()
		if err != nil {
			return nil, err
		}
		if env.DefaultZone != "" {
			c.Fallback, err = time.LoadLocation(env.DefaultZone)
			if err != nil {
				return nil, fmt.Errorf("bad default zone %q: %w", env.DefaultZone, err)
			}
		}
		clock, zoneOf = c, c.Zone
	}

	src, err := sources.Named(env.Source, zoneOf)
	if err != nil {
		return nil, err
	}

	return &sunset.Calculator{
		Source:          cache.NewSource(src, env.CacheTTL),
		Clock:           clock,
		MaxDaysSearched: env.MaxDays,
	}, nil
}

func main() {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	calc, err := newCalculator(env)
	if err != nil {
		log.Fatal(err.Error())
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Handle("/metrics", promhttp.Handler())
	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, calc)

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s/%s (source %s, searching %d days)",
		srv.Addr, env.Prefix[1:], env.Source, env.MaxDays)
	log.Fatal(srv.ListenAndServe())
}
