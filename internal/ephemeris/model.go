// Package ephemeris answers "ecliptic longitude of body B at instant T".
//
// The astronomical model is an injected interface so the engine can run
// against the VSOP87-backed production model, the mean-elements fallback, or
// a deterministic stub in tests. A fail-soft Adapter wraps the model for
// render-loop callers, and a bounded LongitudeCache sits in front of the
// adapter so many animation sub-steps within one calendar day cost a single
// model evaluation.
package ephemeris

import (
	"time"

	"github.com/helio/heliogo/internal/catalog"
)

// Model computes the heliocentric ecliptic longitude of a planet in degrees.
// Implementations must be pure: the same (body, instant) pair always yields
// the same longitude. Accuracy is only warranted for instants between
// 1700-01-01 and 2300-12-31.
type Model interface {
	// EclipticLongitude returns the longitude in degrees, in [0, 360).
	EclipticLongitude(body catalog.Body, t time.Time) (float64, error)
}

// Supported calendar range for ephemeris accuracy. Instants outside this
// window are served anyway; the adapter logs a soft warning.
var (
	RangeMin = time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC)
	RangeMax = time.Date(2300, 12, 31, 23, 59, 59, 0, time.UTC)
)

// InRange reports whether t falls inside the warranted accuracy window.
func InRange(t time.Time) bool {
	return !t.Before(RangeMin) && !t.After(RangeMax)
}
