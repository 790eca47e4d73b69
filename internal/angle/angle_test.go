package angle

import (
	"math"
	"testing"
)

// TestLongitudeToRadians verifies the degree-to-radian formula at reference
// points, including wrap-free behavior above 360.
func TestLongitudeToRadians(t *testing.T) {
	cases := []struct {
		name string
		deg  float64
		want float64
	}{
		{"zero", 0, 0},
		{"half circle", 180, math.Pi},
		{"quarter circle", 90, math.Pi / 2},
		{"full circle", 360, 2 * math.Pi},
		{"beyond full", 540, 3 * math.Pi},
		{"negative", -90, -math.Pi / 2},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := LongitudeToRadians(tt.deg)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("LongitudeToRadians(%v) = %v, want %v", tt.deg, got, tt.want)
			}
		})
	}
}

// TestLongitudeToRadiansNonFinite verifies NaN and infinities collapse to 0.
func TestLongitudeToRadiansNonFinite(t *testing.T) {
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := LongitudeToRadians(d); got != 0 {
			t.Errorf("LongitudeToRadians(%v) = %v, want 0", d, got)
		}
	}
}

// TestDegreesClamped verifies clamping to [-180, 180] before conversion.
func TestDegreesClamped(t *testing.T) {
	cases := []struct {
		name string
		deg  float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 90, math.Pi / 2},
		{"upper bound", 180, math.Pi},
		{"lower bound", -180, -math.Pi},
		{"above range", 270, math.Pi},
		{"below range", -361, -math.Pi},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := DegreesClamped(tt.deg)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DegreesClamped(%v) = %v, want %v", tt.deg, got, tt.want)
			}
		})
	}

	if got := DegreesClamped(math.NaN()); got != 0 {
		t.Errorf("DegreesClamped(NaN) = %v, want 0", got)
	}
}

// TestWrapRadians verifies output is always in [0, 2π).
func TestWrapRadians(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{3 * math.Pi, math.Pi},
		{-math.Pi / 2, 3 * math.Pi / 2},
	}
	for _, tt := range cases {
		got := WrapRadians(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapRadians(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("WrapRadians(%v) = %v, outside [0, 2π)", tt.in, got)
		}
	}
}

// TestWrapDegrees verifies output is always in [0, 360).
func TestWrapDegrees(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-10, 350},
	}
	for _, tt := range cases {
		got := WrapDegrees(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("WrapDegrees(%v) = %v, outside [0, 360)", tt.in, got)
		}
	}
}
