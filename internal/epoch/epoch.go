// Package epoch converts between calendar instants and fractional day counts
// from the J2000 reference epoch (2000-01-01T12:00:00Z). All ephemeris and
// spin arithmetic in the engine runs on this day count.
package epoch

import (
	"errors"
	"math"
	"time"
)

// J2000 is the reference epoch: noon UTC, January 1, 2000.
var J2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// j2000JD is the Julian Date of the J2000 epoch.
const j2000JD = 2451545.0

const msPerDay = 86400000.0

// ErrInvalidInstant reports an unusable calendar value (the zero time).
// Forgiving callers treat this as zero days; see the ephemeris adapter.
var ErrInvalidInstant = errors.New("epoch: invalid instant")

// DaysSince returns the fractional number of days between J2000 and t,
// negative for instants before the epoch. Resolution is one millisecond.
func DaysSince(t time.Time) (float64, error) {
	if t.IsZero() {
		return 0, ErrInvalidInstant
	}
	return float64(t.UnixMilli()-J2000.UnixMilli()) / msPerDay, nil
}

// FromDays is the inverse of DaysSince. The round trip
// FromDays(DaysSince(t)) reproduces t to within one second
// (millisecond-resolution arithmetic, not exact for distant dates).
func FromDays(days float64) time.Time {
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return J2000
	}
	ms := J2000.UnixMilli() + int64(math.Round(days*msPerDay))
	return time.UnixMilli(ms).UTC()
}

// JulianDay returns the Julian Date of t, built on the same millisecond
// day arithmetic as DaysSince. Used to feed the VSOP87 ephemeris model;
// cross-validated in tests against go-satellite's JDay and meeus/julian.
func JulianDay(t time.Time) float64 {
	d, err := DaysSince(t)
	if err != nil {
		return j2000JD
	}
	return j2000JD + d
}
