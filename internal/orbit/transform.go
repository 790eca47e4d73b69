// Package orbit computes renderable 3D positions and spin angles for
// planets: the inclination transform shared by both simulation modes, and
// the tick-driven integrator for continuous (speed) mode.
//
// The orbit-plane parametrization is a uniform-angle ellipse, not a true
// anomaly solution: x = a*cos(θ), zFlat = b*sin(θ) with b = a*(1 - e).
// Equal-area sweep is intentionally not modeled.
package orbit

import (
	"math"

	"github.com/helio/heliogo/internal/angle"
)

// RotationAngle returns the inclination rotation angle in radians for the
// given inclination in degrees, clamped to [-180, 180]. Non-finite input is
// treated as 0 (flat orbit). Callers that need the angle alone (orbit-path
// outlines) use this so they stay consistent with ApplyInclination.
func RotationAngle(inclinationDeg float64) float64 {
	return angle.DegreesClamped(inclinationDeg)
}

// ApplyInclination rotates the flat orbit-plane point (x, 0, zFlat) about
// the axis perpendicular to the ecliptic by the clamped inclination angle:
//
//	x' = x
//	y' = -zFlat * sin(θ)
//	z' =  zFlat * cos(θ)
//
// This is a pure rotation: the Euclidean norm of (x, zFlat) is preserved in
// (x', y', z') to floating tolerance.
func ApplyInclination(x, zFlat, inclinationDeg float64) (float64, float64, float64) {
	θ := RotationAngle(inclinationDeg)
	sin, cos := math.Sincos(θ)
	return x, -zFlat * sin, zFlat * cos
}
