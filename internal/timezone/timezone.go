package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var current atomic.Pointer[time.Location]

// Configure sets the location used by Now. Unknown names fall back to
// DefaultTimezone and the error is returned for logging.
func Configure(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		current.Store(fallback())
		return err
	}
	current.Store(loc)
	return nil
}

func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}
	return fallback()
}

// Now is the clock used for business timestamps such as ticket resolution.
func Now() time.Time {
	return time.Now().In(Location())
}

func fallback() *time.Location {
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}
