package orbit

import (
	"log/slog"
	"math"

	"github.com/helio/heliogo/internal/angle"
	"github.com/helio/heliogo/internal/catalog"
)

const secondsPerDay = 86400.0

// Integrator advances one body's orbital angle and axial spin in continuous
// (speed) mode. The owning scheduler calls Tick once per frame; there is no
// hidden callback registration and no internal goroutine, which keeps the
// integrator directly testable by driving ticks manually.
//
// State machine: Idle (speed == 0, position held) ⇄ Advancing. The
// integrator runs for the simulation's lifetime; there is no terminal state.
type Integrator struct {
	body   catalog.Body
	params catalog.OrbitalParameters
	logger *slog.Logger

	// Angle accumulators, wrapped into [0, 2π) after every advance.
	orbitRad float64
	spinRad  float64
}

// NewIntegrator creates an integrator for body with the given reference
// parameters. Non-finite inclination is warned about once here; the
// transform substitutes 0 on every evaluation regardless.
func NewIntegrator(body catalog.Body, params catalog.OrbitalParameters, logger *slog.Logger) *Integrator {
	if math.IsNaN(params.InclinationDeg) || math.IsInf(params.InclinationDeg, 0) {
		logger.Warn("non-finite inclination, treating orbit as flat",
			"body", body.String(),
		)
	}
	return &Integrator{body: body, params: params, logger: logger}
}

// Tick advances the orbital angle and spin by dtSeconds of real time at the
// given speed multiplier. A zero multiplier holds position (Idle). The base
// angular speed comes directly from the orbital period, ω = 2π / (P*86400)
// radians per real second, so period closure is exact and repeated ticks
// accumulate no drift beyond float rounding.
func (i *Integrator) Tick(dtSeconds, speedMultiplier float64) {
	if speedMultiplier <= 0 || dtSeconds <= 0 {
		return
	}
	if math.IsNaN(dtSeconds) || math.IsInf(dtSeconds, 0) ||
		math.IsNaN(speedMultiplier) || math.IsInf(speedMultiplier, 0) {
		i.logger.Warn("ignoring non-finite tick",
			"body", i.body.String(),
			"dt_seconds", dtSeconds,
			"speed", speedMultiplier,
		)
		return
	}

	simSeconds := dtSeconds * speedMultiplier

	if i.params.OrbitalPeriodDays > 0 {
		ω := 2 * math.Pi / (i.params.OrbitalPeriodDays * secondsPerDay)
		i.orbitRad = angle.WrapRadians(i.orbitRad + simSeconds*ω)
	}

	if i.params.SpinPeriodDays > 0 {
		spinω := i.params.SpinDirection.Sign() * 2 * math.Pi / (i.params.SpinPeriodDays * secondsPerDay)
		i.spinRad = angle.WrapRadians(i.spinRad + simSeconds*spinω)
	}
}

// Angle returns the current orbital angle accumulator in [0, 2π).
func (i *Integrator) Angle() float64 { return i.orbitRad }

// Spin returns the current axial spin angle in [0, 2π).
func (i *Integrator) Spin() float64 { return i.spinRad }

// Position evaluates the elliptical orbit at the current angle and applies
// the inclination transform, returning the renderable 3D position.
func (i *Integrator) Position() (x, y, z float64) {
	a := i.params.DistanceScale
	b := a * (1 - i.params.Eccentricity)
	flatX := a * math.Cos(i.orbitRad)
	flatZ := b * math.Sin(i.orbitRad)
	return ApplyInclination(flatX, flatZ, i.params.InclinationDeg)
}

// Reset zeroes both accumulators. Called when the tracked body set changes.
func (i *Integrator) Reset() {
	i.orbitRad = 0
	i.spinRad = 0
}
