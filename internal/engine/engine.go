// Package engine is the position facade: the single entry point the
// renderer uses to ask "where is body B right now / at instant T". It
// composes the catalog, the continuous orbit integrators, the longitude
// cache, and the date-transition state machine. No call on Engine panics or
// returns an error; degenerate inputs produce a structurally valid,
// zero-valued PlanetPosition, because the caller is a per-frame render loop
// that must never stall.
package engine

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/helio/heliogo/internal/angle"
	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/ephemeris"
	"github.com/helio/heliogo/internal/epoch"
	"github.com/helio/heliogo/internal/metrics"
	"github.com/helio/heliogo/internal/orbit"
	"github.com/helio/heliogo/internal/transition"
)

// PlanetPosition is the per-body output value handed to the renderer.
// Produced fresh on every query; never shared or mutated after construction.
type PlanetPosition struct {
	Body         catalog.Body
	LongitudeDeg float64 // [0, 360)
	RotationRad  float64 // [0, 2π)
	X, Y, Z      float64 // scene units (AU), inclination applied
	Instant      time.Time
}

// Engine owns one simulation's state. Multiple engines (e.g. in tests) are
// fully independent: the longitude cache is an injected instance, not a
// process-wide singleton.
//
// The core is synchronous and was designed for a single-threaded frame
// loop; because this host serves concurrent HTTP readers alongside the tick
// goroutine, all state access is serialized with a mutex.
type Engine struct {
	mu sync.Mutex

	catalog     *catalog.Catalog
	cache       *ephemeris.LongitudeCache
	integrators map[catalog.Body]*orbit.Integrator
	logger      *slog.Logger

	durCfg transition.DurationConfig
	easing transition.EasingFunc

	// Date-mode state. dateInstant is the instant last presented in date
	// mode; active transitions interpolate toward their target from here.
	dateInstant time.Time
	trans       *transition.Transition
}

// New creates an engine over cat, with date-mode longitudes served by cache.
func New(cat *catalog.Catalog, cache *ephemeris.LongitudeCache, logger *slog.Logger) *Engine {
	e := &Engine{
		catalog:     cat,
		cache:       cache,
		integrators: make(map[catalog.Body]*orbit.Integrator),
		logger:      logger,
		durCfg:      transition.DefaultDurationConfig(),
		easing:      transition.EaseInOutCubic,
	}
	for _, b := range catalog.Bodies() {
		params, ok := cat.Parameters(b)
		if !ok {
			continue
		}
		e.integrators[b] = orbit.NewIntegrator(b, params, logger)
	}
	return e
}

// Tick advances continuous-mode state by dtSeconds at the given speed
// multiplier, and moves any active date transition forward by the same real
// time. Invoked synchronously once per frame by the owning scheduler.
func (e *Engine) Tick(dtSeconds, speedMultiplier float64) {
	start := time.Now()

	e.mu.Lock()
	for _, integ := range e.integrators {
		integ.Tick(dtSeconds, speedMultiplier)
	}
	if e.trans != nil {
		e.dateInstant = e.trans.Advance(dtSeconds * 1000)
		if e.trans.Done() {
			e.trans = nil
		}
	}
	e.mu.Unlock()

	metrics.ObserveEngineTick(time.Since(start))
}

// Positions returns the continuous-mode position of every body.
func (e *Engine) Positions() []PlanetPosition {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]PlanetPosition, 0, len(e.integrators))
	for _, b := range catalog.Bodies() {
		integ, ok := e.integrators[b]
		if !ok {
			continue
		}
		x, y, z := integ.Position()
		out = append(out, PlanetPosition{
			Body:         b,
			LongitudeDeg: angle.WrapDegrees(integ.Angle() * 180 / math.Pi),
			RotationRad:  integ.Spin(),
			X:            x,
			Y:            y,
			Z:            z,
			Instant:      time.Now().UTC(),
		})
	}
	return out
}

// PositionAt returns the date-mode position of body at instant t: ecliptic
// longitude from the cache (ephemeris-backed), elliptical radius at that
// longitude, inclination applied, and the spin angle derived from the day
// count. Always returns a usable value; failures degrade to zeroes.
func (e *Engine) PositionAt(body catalog.Body, t time.Time) PlanetPosition {
	params, ok := e.catalog.Parameters(body)
	if !ok {
		e.logger.Warn("position query for unknown body", "body", int(body))
		return PlanetPosition{Body: body, Instant: t}
	}

	deg := e.cache.Get(body, t)
	θ := angle.LongitudeToRadians(deg)

	a := params.DistanceScale
	b := a * (1 - params.Eccentricity)
	x, y, z := orbit.ApplyInclination(a*math.Cos(θ), b*math.Sin(θ), params.InclinationDeg)

	return PlanetPosition{
		Body:         body,
		LongitudeDeg: deg,
		RotationRad:  spinAt(params, t),
		X:            x,
		Y:            y,
		Z:            z,
		Instant:      t,
	}
}

// PositionsAt returns the date-mode position of every body at instant t and
// records t as the presented date-mode instant.
func (e *Engine) PositionsAt(t time.Time) []PlanetPosition {
	e.mu.Lock()
	if e.trans == nil {
		e.dateInstant = t
	}
	e.mu.Unlock()

	out := make([]PlanetPosition, 0, len(e.integrators))
	for _, b := range catalog.Bodies() {
		out = append(out, e.PositionAt(b, t))
	}
	return out
}

// spinAt derives the axial spin angle at instant t from the day count since
// J2000. Invalid instants yield 0 rotation.
func spinAt(params catalog.OrbitalParameters, t time.Time) float64 {
	if params.SpinPeriodDays <= 0 {
		return 0
	}
	days, err := epoch.DaysSince(t)
	if err != nil {
		return 0
	}
	turns := days / params.SpinPeriodDays * params.SpinDirection.Sign()
	return angle.WrapRadians(turns * 2 * math.Pi)
}

// BeginTransition starts an animated date-mode jump to target, paced by
// speed in [0, 1]. The start instant is the currently presented date-mode
// instant; with none presented yet, the jump is immediate.
func (e *Engine) BeginTransition(target time.Time, speed float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.dateInstant
	if start.IsZero() {
		start = target
	}
	e.trans = transition.New(start, target, speed, e.durCfg, e.easing)
	e.logger.Info("date transition started",
		"from", start.UTC().Format(time.RFC3339),
		"to", target.UTC().Format(time.RFC3339),
		"direction", e.trans.Direction().String(),
	)
}

// SkipTransition jumps any active transition straight to its target.
func (e *Engine) SkipTransition() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.trans != nil {
		e.dateInstant = e.trans.Target()
		e.trans.SkipToTarget()
		e.trans = nil
	}
}

// TransitionActive reports whether a date transition is in progress.
func (e *Engine) TransitionActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trans != nil
}

// DateInstant returns the currently presented date-mode instant, zero if
// date mode has not been used.
func (e *Engine) DateInstant() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dateInstant
}

// ResetBody zeroes the continuous-mode accumulators for body. Called when
// the renderer's active body changes.
func (e *Engine) ResetBody(body catalog.Body) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if integ, ok := e.integrators[body]; ok {
		integ.Reset()
	}
}

// Reset zeroes all continuous-mode accumulators.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, integ := range e.integrators {
		integ.Reset()
	}
}
