package main

import (
	"testing"
	"time"

	"github.com/spencer-p/sunclock/pkg/tz"
)

func TestNewCalculator(t *testing.T) {
	calc, err := newCalculator(Config{Source: "gosunrise", MaxDays: 5, Zone: "America/Los_Angeles"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calc.MaxDaysSearched != 5 {
		t.Errorf("got %d max days", calc.MaxDaysSearched)
	}
	if _, ok := calc.Clock.(tz.Fixed); !ok {
		t.Errorf("got clock %T, wanted tz.Fixed", calc.Clock)
	}

	calc, err = newCalculator(Config{Source: "keep94", MaxDays: 3, DefaultZone: "UTC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock, ok := calc.Clock.(*tz.Clock)
	if !ok {
		t.Fatalf("got clock %T, wanted *tz.Clock", calc.Clock)
	}
	if clock.Fallback != time.UTC {
		t.Errorf("got fallback %v, wanted UTC", clock.Fallback)
	}

	for _, bad := range []Config{
		{Source: "sundial", MaxDays: 3, Zone: "UTC"},
		{Source: "keep94", MaxDays: 0, Zone: "UTC"},
		{Source: "keep94", MaxDays: 3, Zone: "Mars/Olympus_Mons"},
		{Source: "keep94", MaxDays: 3, DefaultZone: "Mars/Olympus_Mons"},
	} {
		if _, err := newCalculator(bad); err == nil {
			t.Errorf("expected error for %+v", bad)
		}
	}
}
