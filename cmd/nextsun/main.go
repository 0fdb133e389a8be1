package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spencer-p/sunclock/pkg/sources"
	"github.com/spencer-p/sunclock/pkg/sunset"
	"github.com/spencer-p/sunclock/pkg/tz"
)

func main() {
	lat := flag.Float64("lat", 36.9741, "latitude in decimal degrees")
	lon := flag.Float64("lon", -122.0308, "longitude in decimal degrees")
	source := flag.String("source", sources.Keep94, "sun times source, keep94 or gosunrise")
	days := flag.Int("days", sunset.DefaultMaxDaysSearched, "calendar days to search")
	at := flag.String("at", "", "RFC3339 time to search from, default now")
	flag.Parse()

	clock, err := tz.NewClock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load zones: %v\n", err)
		os.Exit(1)
	}
	src, err := sources.Named(*source, clock.Zone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	calc := sunset.Calculator{
		Source:          src,
		Clock:           clock,
		MaxDaysSearched: *days,
	}
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -at: %v\n", err)
			os.Exit(2)
		}
		calc.TimeNow = func() time.Time { return t }
	}

	loc := sunset.Location{Lat: *lat, Long: *lon}
	now, err := calc.Now(loc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read the local time: %v\n", err)
		os.Exit(1)
	}
	result, err := calc.NextEvent(loc, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to find the next sun event: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("It is %s. Next %s.\n", now.Wall.Format(time.RFC822), result)
}
