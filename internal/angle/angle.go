// Package angle provides the degree/radian conversions and wrapping helpers
// shared by the orbit transform and the ephemeris adapter.
package angle

import "math"

// FullCircleDeg is one full revolution in degrees.
const FullCircleDeg = 360.0

// LongitudeToRadians converts an ecliptic longitude in degrees to radians:
// (degrees / 360) * 2π. Non-finite input yields 0.
func LongitudeToRadians(degrees float64) float64 {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0
	}
	return degrees / FullCircleDeg * 2 * math.Pi
}

// DegreesClamped clamps degrees to [-180, 180] and converts to radians.
// Non-finite input is treated as 0 (flat orbit).
func DegreesClamped(degrees float64) float64 {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0
	}
	if degrees > 180 {
		degrees = 180
	} else if degrees < -180 {
		degrees = -180
	}
	return degrees * math.Pi / 180
}

// WrapRadians wraps r into [0, 2π).
func WrapRadians(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// WrapDegrees wraps d into [0, 360).
func WrapDegrees(d float64) float64 {
	d = math.Mod(d, FullCircleDeg)
	if d < 0 {
		d += FullCircleDeg
	}
	return d
}
