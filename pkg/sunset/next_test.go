package sunset

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/sunclock/pkg/timetricks"
)

var (
	oct25 = timetricks.Date{2020, time.October, 25}
	oct26 = timetricks.Date{2020, time.October, 26}
	oct27 = timetricks.Date{2020, time.October, 27}
)

func normalDays() *fakeSource {
	return &fakeSource{days: map[timetricks.Date]SunTimesOfDay{
		oct25: day(pdt, oct25, 7, 26, 18, 19),
		oct26: day(pdt, oct26, 7, 27, 18, 18),
		oct27: day(pdt, oct27, 7, 28, 18, 16),
	}}
}

func TestNextEvent(t *testing.T) {
	table := []struct {
		name string
		now  LocalInstant
		want Result
	}{{
		name: "before sunrise",
		now:  localAt(santaCruz, pdt, oct25, 5, 0, 0),
		want: Result{Sunrise, 2*3600 + 26*60, "2 hours, 26 minutes"},
	}, {
		name: "just after midnight",
		now:  localAt(santaCruz, pdt, oct25, 0, 0, 30),
		want: Result{Sunrise, 7*3600 + 25*60 + 30, "7 hours, 25 minutes"},
	}, {
		name: "midday",
		now:  localAt(santaCruz, pdt, oct25, 12, 0, 0),
		want: Result{Sunset, 6*3600 + 19*60, "6 hours, 19 minutes"},
	}, {
		name: "at sunrise",
		now:  localAt(santaCruz, pdt, oct25, 7, 26, 0),
		want: Result{Sunset, 10*3600 + 53*60, "10 hours, 53 minutes"},
	}, {
		name: "one second after sunset",
		now:  localAt(santaCruz, pdt, oct25, 18, 19, 1),
		want: Result{Sunrise, 13*3600 + 7*60 + 59, "13 hours, 7 minutes"},
	}, {
		name: "seconds before sunset",
		now:  localAt(santaCruz, pdt, oct25, 18, 18, 30),
		want: Result{Sunset, 30, "less than a minute"},
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextEvent(santaCruz, tc.now, normalDays(), zoneClock{zone: pdt}, DefaultMaxDaysSearched)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("wrong result (-want,+got):\n%s", diff)
			}
			if got.Seconds <= 0 {
				t.Errorf("got non-positive delta %d", got.Seconds)
			}
		})
	}
}

func TestNextEventAdvancesOneDayAtATime(t *testing.T) {
	src := normalDays()
	now := localAt(santaCruz, pdt, oct25, 23, 0, 0)
	got, err := NextEvent(santaCruz, now, src, zoneClock{zone: pdt}, DefaultMaxDaysSearched)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Result{Sunrise, 8*3600 + 27*60, "8 hours, 27 minutes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong result (-want,+got):\n%s", diff)
	}
	if src.calls != 2 {
		t.Errorf("got %d lookups, wanted 2", src.calls)
	}
}

func TestNextEventUsesLocalCalendar(t *testing.T) {
	tokyo := Location{35.6762, 139.6503}
	jst := time.FixedZone("JST", 9*60*60)
	jun2 := timetricks.Date{2021, time.June, 2}

	// Only the local date has data. Looking up the UTC date (June 1st) would
	// fail.
	src := &fakeSource{days: map[timetricks.Date]SunTimesOfDay{
		jun2: day(jst, jun2, 4, 25, 18, 53),
	}}
	now := localAt(tokyo, jst, jun2, 0, 30, 0)
	got, err := NextEvent(tokyo, now, src, zoneClock{zone: jst}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Result{Sunrise, 3*3600 + 55*60, "3 hours, 55 minutes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong result (-want,+got):\n%s", diff)
	}
}

func TestNextEventSkipsPolarDays(t *testing.T) {
	src := &fakeSource{days: map[timetricks.Date]SunTimesOfDay{
		oct25: {Date: oct25},
		oct26: day(pdt, oct26, 7, 27, 18, 18),
	}}
	now := localAt(santaCruz, pdt, oct25, 12, 0, 0)
	got, err := NextEvent(santaCruz, now, src, zoneClock{zone: pdt}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Result{Sunrise, 19*3600 + 27*60, "19 hours, 27 minutes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong result (-want,+got):\n%s", diff)
	}
}

func TestNextEventErrors(t *testing.T) {
	now := localAt(santaCruz, pdt, oct25, 12, 0, 0)
	clockErr := errors.New("no zone for you")

	partial := day(pdt, oct25, 7, 26, 18, 19)
	partial.Sunset = time.Time{}

	table := []struct {
		name    string
		loc     Location
		src     SunTimesSource
		clock   LocalClock
		maxDays int
		want    error
	}{{
		name:    "polar every day",
		loc:     santaCruz,
		src:     &polarSource{},
		clock:   zoneClock{zone: pdt},
		maxDays: 3,
		want:    ErrNoUpcomingEvent,
	}, {
		name:    "sunrise without sunset",
		loc:     santaCruz,
		src:     &fakeSource{days: map[timetricks.Date]SunTimesOfDay{oct25: partial}},
		clock:   zoneClock{zone: pdt},
		maxDays: 3,
		want:    ErrInconsistentSunTimes,
	}, {
		name:    "source failure",
		loc:     santaCruz,
		src:     &fakeSource{},
		clock:   zoneClock{zone: pdt},
		maxDays: 3,
		want:    ErrSunTimesUnavailable,
	}, {
		name:    "clock failure",
		loc:     santaCruz,
		src:     normalDays(),
		clock:   zoneClock{zone: pdt, err: clockErr},
		maxDays: 3,
		want:    clockErr,
	}, {
		name:    "zero search bound",
		loc:     santaCruz,
		src:     normalDays(),
		clock:   zoneClock{zone: pdt},
		maxDays: 0,
		want:    ErrInvalidSearchBound,
	}, {
		name:    "now is somewhere else",
		loc:     Location{0, 0},
		src:     normalDays(),
		clock:   zoneClock{zone: pdt},
		maxDays: 3,
		want:    ErrLocationMismatch,
	}, {
		name:    "out of days",
		loc:     santaCruz,
		src:     &fakeSource{days: map[timetricks.Date]SunTimesOfDay{oct25: day(pdt, oct25, 7, 26, 11, 0)}},
		clock:   zoneClock{zone: pdt},
		maxDays: 1,
		want:    ErrNoUpcomingEvent,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextEvent(tc.loc, now, tc.src, tc.clock, tc.maxDays)
			if !errors.Is(err, tc.want) {
				t.Errorf("got err %v, wanted %v", err, tc.want)
			}
			if diff := cmp.Diff(Result{}, got); diff != "" {
				t.Errorf("expected empty result on error (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestNextEventSearchIsBounded(t *testing.T) {
	for _, maxDays := range []int{1, 3, 10} {
		src := &polarSource{}
		now := localAt(santaCruz, pdt, oct25, 12, 0, 0)
		if _, err := NextEvent(santaCruz, now, src, zoneClock{zone: pdt}, maxDays); !errors.Is(err, ErrNoUpcomingEvent) {
			t.Errorf("maxDays=%d: got err %v", maxDays, err)
		}
		if src.calls != maxDays {
			t.Errorf("maxDays=%d: got %d lookups", maxDays, src.calls)
		}
	}
}

func TestNextEventIdempotent(t *testing.T) {
	now := localAt(santaCruz, pdt, oct25, 9, 41, 17)
	first, err1 := NextEvent(santaCruz, now, normalDays(), zoneClock{zone: pdt}, 3)
	second, err2 := NextEvent(santaCruz, now, normalDays(), zoneClock{zone: pdt}, 3)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ (-first,+second):\n%s", diff)
	}
}

func TestCalculator(t *testing.T) {
	utcNow := time.Date(2020, time.October, 25, 19, 0, 0, 0, time.UTC) // noon PDT
	c := &Calculator{
		Source:  normalDays(),
		Clock:   zoneClock{zone: pdt},
		TimeNow: func() time.Time { return utcNow },
	}

	got, err := c.NextEventFromNow(santaCruz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Result{Sunset, 6*3600 + 19*60, "6 hours, 19 minutes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong result (-want,+got):\n%s", diff)
	}
	if got.String() != "sunset in 6 hours, 19 minutes" {
		t.Errorf("got %q", got.String())
	}

	polar := &polarSource{}
	c.Source = polar
	if _, err := c.NextEventFromNow(santaCruz); !errors.Is(err, ErrNoUpcomingEvent) {
		t.Errorf("got err %v, wanted ErrNoUpcomingEvent", err)
	}
	if polar.calls != DefaultMaxDaysSearched {
		t.Errorf("got %d lookups, wanted the default of %d", polar.calls, DefaultMaxDaysSearched)
	}
}

func TestLocalInstantUntil(t *testing.T) {
	a := localAt(santaCruz, pdt, oct25, 23, 59, 0)
	// Same instant seen from a different offset still differs by the full
	// date-time, not the clock reading.
	b := LocalInstant{Location: santaCruz, Wall: time.Date(2020, time.October, 26, 7, 1, 0, 0, time.UTC)}
	got, err := a.Until(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2*60 {
		t.Errorf("got %d seconds, wanted 120", got)
	}
	if a.Offset() != -7*time.Hour {
		t.Errorf("got offset %s", a.Offset())
	}

	elsewhere := b
	elsewhere.Location = Location{1, 1}
	if _, err := a.Until(elsewhere); !errors.Is(err, ErrLocationMismatch) {
		t.Errorf("got err %v, wanted ErrLocationMismatch", err)
	}
}
