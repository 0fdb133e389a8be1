package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/spencer-p/sunclock/pkg/metrics"
	"github.com/spencer-p/sunclock/pkg/sunset"

	"github.com/gorilla/mux"
)

// Register adds the API routes to r.
func Register(r *mux.Router, calc *sunset.Calculator) {
	r.Handle("/", makeIndexHandler())
	r.Handle("/api/v1/next", makeServeNextEvent(calc)).Methods("GET")
}

// Answer is the JSON form of a next event response.
type Answer struct {
	Lat    float64       `json:"lat"`
	Long   float64       `json:"lon"`
	At     time.Time     `json:"at"`
	Result sunset.Result `json:"result"`
}

// Sentence phrases the answer for people.
func (a *Answer) Sentence() string {
	return fmt.Sprintf("The next %s at %s is in %s.",
		a.Result.Event,
		sunset.Location{Lat: a.Lat, Long: a.Long},
		a.Result.Human)
}

func makeServeNextEvent(calc *sunset.Calculator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loc, err := parseLocation(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Bad request: %v", err)
			return
		}

		now, err := startTime(calc, loc, r.FormValue("at"))
		if err != nil {
			writeError(w, err)
			return
		}

		result, err := calc.NextEvent(loc, now)
		if err != nil {
			writeError(w, err)
			return
		}
		metrics.ObserveNextEvent(result.Event.String())

		answer := Answer{
			Lat:    loc.Lat,
			Long:   loc.Long,
			At:     now.Wall,
			Result: result,
		}

		if r.FormValue("o") == "json" {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(w).Encode(&answer); err != nil {
				log.Printf("Failed to encode JSON result: %+v", err)
			}
			return
		}
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "%s\n", answer.Sentence())
	})
}

// startTime reads the optional "at" parameter, falling back to the current
// time.
func startTime(calc *sunset.Calculator, loc sunset.Location, at string) (sunset.LocalInstant, error) {
	if at == "" {
		return calc.Now(loc)
	}
	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return sunset.LocalInstant{}, badRequest{fmt.Errorf("time %q is not RFC3339: %w", at, err)}
	}
	return calc.Clock.UTCToLocal(loc, parsed.UTC())
}

func parseLocation(r *http.Request) (sunset.Location, error) {
	lat, err := parseCoordinate(r.FormValue("lat"), 90)
	if err != nil {
		return sunset.Location{}, fmt.Errorf("lat: %w", err)
	}
	long, err := parseCoordinate(r.FormValue("lon"), 180)
	if err != nil {
		return sunset.Location{}, fmt.Errorf("lon: %w", err)
	}
	return sunset.Location{Lat: lat, Long: long}, nil
}

func parseCoordinate(s string, limit float64) (float64, error) {
	if s == "" {
		return 0, errors.New("missing")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if f < -limit || f > limit {
		return 0, fmt.Errorf("%v is outside [-%v, %v]", f, limit, limit)
	}
	return f, nil
}

type badRequest struct {
	error
}

func (b badRequest) Unwrap() error { return b.error }

func writeError(w http.ResponseWriter, err error) {
	code, reason := classify(err)
	metrics.ObserveNextEventError(reason)
	w.WriteHeader(code)
	fmt.Fprintf(w, "Failed to find next sun event: %v", err)
	if code >= http.StatusInternalServerError {
		log.Printf("Failed to find next sun event: %+v", err)
	}
}

// classify maps an error to a status code and a metrics label.
func classify(err error) (int, string) {
	var br badRequest
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, sunset.ErrNoUpcomingEvent):
		return http.StatusNotFound, "no_upcoming_event"
	case errors.Is(err, sunset.ErrTimezoneResolution):
		return http.StatusUnprocessableEntity, "timezone_resolution"
	case errors.Is(err, sunset.ErrInconsistentSunTimes):
		return http.StatusInternalServerError, "inconsistent_sun_times"
	case errors.Is(err, sunset.ErrSunTimesUnavailable):
		return http.StatusServiceUnavailable, "sun_times_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func makeIndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ask /api/v1/next?lat=<lat>&lon=<lon> when the sun next rises or sets\n")
	})
}
