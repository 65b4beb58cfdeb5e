// Package timeutil pins all business timestamps to the Swiss time zone so
// invoice dates stay consistent regardless of where the server runs.
package timeutil

import "time"

var zurich *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		loc = time.FixedZone("CET", 1*60*60)
	}
	zurich = loc
}

// Now returns the current time in Europe/Zurich.
func Now() time.Time {
	return time.Now().In(zurich)
}

// Location returns the business time zone.
func Location() *time.Location {
	return zurich
}
