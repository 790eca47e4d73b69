package transition

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

var durCfg = DefaultDurationConfig()

// TestDurationZeroCases verifies the instant-jump conditions: equal dates
// and speed at or above 1.
func TestDurationZeroCases(t *testing.T) {
	a := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(1, 0, 0)

	if d := Duration(a, a, 0.5, durCfg); d != 0 {
		t.Errorf("Duration(equal dates) = %v, want 0", d)
	}
	if d := Duration(a, b, 1, durCfg); d != 0 {
		t.Errorf("Duration(speed 1) = %v, want 0", d)
	}
	if d := Duration(a, b, 2, durCfg); d != 0 {
		t.Errorf("Duration(speed 2) = %v, want 0", d)
	}
}

// TestDurationBounds verifies the base duration clamp: tiny spans hit MinMs,
// huge spans hit MaxMs (scaled by the speed factor).
func TestDurationBounds(t *testing.T) {
	a := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	// One hour span: log10(0.0417+1)*1000 ≈ 18ms, clamped up to MinMs.
	short := Duration(a, a.Add(time.Hour), 0, durCfg)
	if !scalar.EqualWithinAbs(short, durCfg.MinMs, 1e-9) {
		t.Errorf("Duration(1h, speed 0) = %v, want MinMs %v", short, durCfg.MinMs)
	}

	// 10000 day span: log10(10001)*1000 ≈ 4000ms, clamped down to MaxMs.
	long := Duration(a, a.AddDate(0, 0, 10000), 0, durCfg)
	if !scalar.EqualWithinAbs(long, durCfg.MaxMs, 1e-9) {
		t.Errorf("Duration(10000d, speed 0) = %v, want MaxMs %v", long, durCfg.MaxMs)
	}
}

// TestDurationMonotoneInSpan verifies duration never decreases as the day
// span grows at fixed speed.
func TestDurationMonotoneInSpan(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := 0.0
	for days := 1; days <= 5000; days += 50 {
		d := Duration(a, a.AddDate(0, 0, days), 0.3, durCfg)
		if d < prev-1e-9 {
			t.Errorf("duration decreased at span %d days: %v < %v", days, d, prev)
		}
		prev = d
	}
}

// TestDurationMonotoneInSpeed verifies duration never increases as speed
// grows at fixed span, and respects the 0.1*MinMs floor.
func TestDurationMonotoneInSpeed(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 365)

	prev := Duration(a, b, 0, durCfg)
	for s := 0.05; s < 1; s += 0.05 {
		d := Duration(a, b, s, durCfg)
		if d > prev+1e-9 {
			t.Errorf("duration increased at speed %v: %v > %v", s, d, prev)
		}
		if d < 0.1*durCfg.MinMs-1e-9 {
			t.Errorf("duration at speed %v = %v, below floor %v", s, d, 0.1*durCfg.MinMs)
		}
		prev = d
	}
}

// TestDurationDirectionSymmetric verifies forward and backward spans of the
// same length get the same duration.
func TestDurationDirectionSymmetric(t *testing.T) {
	a := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 500)

	fwd := Duration(a, b, 0.4, durCfg)
	bwd := Duration(b, a, 0.4, durCfg)
	if !scalar.EqualWithinAbs(fwd, bwd, 1e-9) {
		t.Errorf("forward %v != backward %v", fwd, bwd)
	}
}

// TestInterpolateEndpoints verifies progress 0 and 1 return the exact input
// instants, not reconstructed approximations.
func TestInterpolateEndpoints(t *testing.T) {
	a := time.Date(2024, 6, 15, 7, 31, 12, 0, time.UTC)
	b := time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC)

	if got := Interpolate(a, b, 0); !got.Equal(a) {
		t.Errorf("Interpolate(progress 0) = %v, want exactly %v", got, a)
	}
	if got := Interpolate(a, b, 1); !got.Equal(b) {
		t.Errorf("Interpolate(progress 1) = %v, want exactly %v", got, b)
	}
}

// TestInterpolateMidpoint verifies progress 0.5 lands on the exact timeline
// midpoint.
func TestInterpolateMidpoint(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	got := Interpolate(a, b, 0.5)
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Interpolate(midpoint) = %v, want %v", got, want)
	}
}

// TestInterpolateClamped verifies out-of-range progress clamps to the
// endpoints.
func TestInterpolateClamped(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 10)

	if got := Interpolate(a, b, -3); !got.Equal(a) {
		t.Errorf("Interpolate(-3) = %v, want start", got)
	}
	if got := Interpolate(a, b, 7); !got.Equal(b) {
		t.Errorf("Interpolate(7) = %v, want target", got)
	}
}

// TestDirectionOf verifies the temporal sense classification.
func TestDirectionOf(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if d := DirectionOf(a, a.AddDate(0, 0, 1)); d != Forward {
		t.Errorf("DirectionOf(later) = %s, want forward", d)
	}
	if d := DirectionOf(a, a.AddDate(0, 0, -1)); d != Backward {
		t.Errorf("DirectionOf(earlier) = %s, want backward", d)
	}
	if d := DirectionOf(a, a); d != Forward {
		t.Errorf("DirectionOf(equal) = %s, want forward", d)
	}
}

// TestTransitionLifecycle verifies a transition starts at its start instant,
// passes through intermediate instants, and completes exactly at the target.
func TestTransitionLifecycle(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 365)

	tr := New(a, b, 0, durCfg, Linear)
	if tr.Done() {
		t.Fatal("fresh transition reports Done")
	}
	if got := tr.Current(); !got.Equal(a) {
		t.Errorf("Current before any advance = %v, want start %v", got, a)
	}

	// Advance halfway through the duration.
	mid := tr.Advance(Duration(a, b, 0, durCfg) / 2)
	if !mid.After(a) || !mid.Before(b) {
		t.Errorf("midway instant %v not strictly between %v and %v", mid, a, b)
	}

	// Advance past the end.
	end := tr.Advance(Duration(a, b, 0, durCfg))
	if !end.Equal(b) {
		t.Errorf("final instant = %v, want exactly target %v", end, b)
	}
	if !tr.Done() {
		t.Error("transition not Done after advancing past duration")
	}
}

// TestTransitionZeroDuration verifies an instant transition completes on the
// first advance.
func TestTransitionZeroDuration(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 100)

	tr := New(a, b, 1, durCfg, nil) // speed 1: zero duration
	got := tr.Advance(16)
	if !got.Equal(b) || !tr.Done() {
		t.Errorf("zero-duration advance = %v done=%v, want target %v done=true", got, tr.Done(), b)
	}
}

// TestTransitionSkip verifies SkipToTarget is a state overwrite that
// completes the transition immediately.
func TestTransitionSkip(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 1000)

	tr := New(a, b, 0, durCfg, nil)
	tr.Advance(50)
	tr.SkipToTarget()

	if !tr.Done() {
		t.Error("transition not Done after SkipToTarget")
	}
	if got := tr.Current(); !got.Equal(b) {
		t.Errorf("Current after skip = %v, want target %v", got, b)
	}
}

// TestTransitionBackward verifies a backward transition interpolates toward
// the earlier target.
func TestTransitionBackward(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(-5, 0, 0)

	tr := New(a, b, 0, durCfg, Linear)
	if tr.Direction() != Backward {
		t.Fatalf("Direction = %s, want backward", tr.Direction())
	}

	mid := tr.Advance(Duration(a, b, 0, durCfg) / 2)
	if !mid.Before(a) || !mid.After(b) {
		t.Errorf("backward midway instant %v not between %v and %v", mid, b, a)
	}
}
