package orbit

import (
	"math"
	"testing"
)

// TestApplyInclinationReference verifies the rotation at the 90-degree
// reference point: (100, 50) maps to (100, -50, 0).
func TestApplyInclinationReference(t *testing.T) {
	x, y, z := ApplyInclination(100, 50, 90)
	if math.Abs(x-100) > 1e-9 {
		t.Errorf("x = %v, want 100 (unchanged)", x)
	}
	if math.Abs(y-(-50)) > 1e-9 {
		t.Errorf("y = %v, want -50", y)
	}
	if math.Abs(z) > 1e-9 {
		t.Errorf("z = %v, want 0", z)
	}
}

// TestApplyInclinationZero verifies a flat orbit passes through unchanged.
func TestApplyInclinationZero(t *testing.T) {
	x, y, z := ApplyInclination(3, 4, 0)
	if x != 3 || math.Abs(y) > 1e-12 || z != 4 {
		t.Errorf("ApplyInclination(3, 4, 0) = (%v, %v, %v), want (3, 0, 4)", x, y, z)
	}
}

// TestApplyInclinationNormPreserved verifies the transform is a pure
// rotation: |(x', y', z')| equals |(x, zFlat)| to within 1e-4 for a sweep of
// inputs and angles.
func TestApplyInclinationNormPreserved(t *testing.T) {
	points := [][2]float64{{1, 0}, {0, 1}, {100, 50}, {-30.5, 12.25}, {0.001, -0.002}}
	angles := []float64{-180, -90, -23.4, 0, 1.85, 7.005, 45, 90, 179.9, 180}

	for _, p := range points {
		for _, inc := range angles {
			x, y, z := ApplyInclination(p[0], p[1], inc)
			in := math.Hypot(p[0], p[1])
			out := math.Sqrt(x*x + y*y + z*z)
			if math.Abs(in-out) > 1e-4 {
				t.Errorf("norm not preserved for point %v at %v deg: in=%v out=%v", p, inc, in, out)
			}
		}
	}
}

// TestApplyInclinationClamped verifies inclinations beyond [-180, 180] are
// clamped to the bound rather than wrapped.
func TestApplyInclinationClamped(t *testing.T) {
	x1, y1, z1 := ApplyInclination(10, 20, 270)
	x2, y2, z2 := ApplyInclination(10, 20, 180)
	if x1 != x2 || math.Abs(y1-y2) > 1e-12 || math.Abs(z1-z2) > 1e-12 {
		t.Errorf("ApplyInclination(270 deg) = (%v, %v, %v), want same as 180 deg (%v, %v, %v)",
			x1, y1, z1, x2, y2, z2)
	}
}

// TestApplyInclinationNonFinite verifies NaN inclination degrades to a flat
// orbit instead of poisoning the output.
func TestApplyInclinationNonFinite(t *testing.T) {
	x, y, z := ApplyInclination(7, 9, math.NaN())
	if x != 7 || math.Abs(y) > 1e-12 || z != 9 {
		t.Errorf("ApplyInclination(NaN) = (%v, %v, %v), want flat (7, 0, 9)", x, y, z)
	}
}

// TestRotationAngle verifies the shared angle helper agrees with the clamp
// contract.
func TestRotationAngle(t *testing.T) {
	if got := RotationAngle(90); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("RotationAngle(90) = %v, want π/2", got)
	}
	if got := RotationAngle(-720); math.Abs(got-(-math.Pi)) > 1e-12 {
		t.Errorf("RotationAngle(-720) = %v, want -π (clamped)", got)
	}
}
