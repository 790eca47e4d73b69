package ephemeris

import (
	"log/slog"
	"time"

	"github.com/helio/heliogo/internal/angle"
	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/metrics"
)

// Adapter is the fail-soft boundary in front of a Model. Its callers run
// inside a per-frame render callback, so every failure is absorbed: an
// unknown body, an invalid instant, or a model error yields longitude 0 and
// a warning log, never an error or panic.
type Adapter struct {
	model  Model
	logger *slog.Logger
}

// NewAdapter wraps model with the fail-soft contract.
func NewAdapter(model Model, logger *slog.Logger) *Adapter {
	return &Adapter{model: model, logger: logger}
}

// EclipticLongitude returns the longitude of body at t in degrees, [0, 360).
// Returns 0 for any input or model failure.
func (a *Adapter) EclipticLongitude(body catalog.Body, t time.Time) float64 {
	deg, ok := a.lookup(body, t)
	if !ok {
		return 0
	}
	return deg
}

// lookup performs the validated model call. The second return value reports
// whether the result came from the model; the cache uses it to avoid
// storing results for inputs that failed validation.
func (a *Adapter) lookup(body catalog.Body, t time.Time) (float64, bool) {
	if !body.Valid() {
		metrics.IncEphemerisErrors("unknown_body")
		a.logger.Warn("ephemeris lookup for unsupported body, returning 0",
			"body", int(body),
		)
		return 0, false
	}
	if t.IsZero() {
		metrics.IncEphemerisErrors("invalid_instant")
		a.logger.Warn("ephemeris lookup with invalid instant, returning 0",
			"body", body.String(),
		)
		return 0, false
	}
	if !InRange(t) {
		// Soft warning only: the model is still consulted.
		a.logger.Warn("instant outside supported ephemeris range 1700-2300",
			"body", body.String(),
			"instant", t.UTC().Format(time.RFC3339),
		)
	}

	start := time.Now()
	deg, err := a.model.EclipticLongitude(body, t)
	metrics.ObserveEphemerisDuration(time.Since(start))

	if err != nil {
		metrics.IncEphemerisErrors("model_error")
		a.logger.Warn("ephemeris model failed, returning 0",
			"body", body.String(),
			"instant", t.UTC().Format(time.RFC3339),
			"error", err,
		)
		return 0, false
	}
	return angle.WrapDegrees(deg), true
}
