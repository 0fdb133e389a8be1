// Package ephemeris computes sunrise and sunset offline with the
// nathan-osman/go-sunrise package. Results are UTC instants keyed by the
// civil calendar date their sunrise falls on at the observer. Dates where the
// sun stays up or down report neither event.
package ephemeris
