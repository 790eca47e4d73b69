// Package api wires the HTTP surface: position queries, catalog listing,
// simulation controls, probes, and metrics.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/helio/heliogo/internal/auth"
	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/engine"
	"github.com/helio/heliogo/internal/health"
	"github.com/helio/heliogo/internal/metrics"
	"github.com/helio/heliogo/internal/stream"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// SpeedSetter lets the API adjust the continuous-mode speed multiplier used
// by the owning tick loop.
type SpeedSetter interface {
	SetSpeed(multiplier float64)
	Speed() float64
}

// NewServer creates a configured HTTP server over the engine.
func NewServer(addr string, logger *slog.Logger, authCfg auth.Config, cat *catalog.Catalog, eng *engine.Engine, speed SpeedSetter, streamHandler *stream.Handler) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /readyz", health.Readyz)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/v1/bodies", bodiesHandler(cat))
	mux.HandleFunc("GET /api/v1/positions", positionsHandler(eng))
	mux.HandleFunc("POST /api/v1/simulation/speed", speedHandler(logger, speed))
	mux.HandleFunc("POST /api/v1/simulation/date", dateHandler(eng))
	mux.HandleFunc("POST /api/v1/simulation/date/skip", skipHandler(eng))
	mux.HandleFunc("GET /api/v1/stream/positions", streamHandler.HandlePositions)

	// Build middleware chain: metrics -> logging -> auth -> mux.
	var handler http.Handler = mux
	handler = auth.Middleware(authCfg)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = metrics.Middleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// HTTPServer returns the underlying *http.Server for external control (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// bodyInfo is the JSON shape of one catalog entry.
type bodyInfo struct {
	Name              string  `json:"name"`
	DistanceScale     float64 `json:"distance_scale"`
	Eccentricity      float64 `json:"eccentricity"`
	InclinationDeg    float64 `json:"inclination_deg"`
	AxialTiltDeg      float64 `json:"axial_tilt_deg"`
	OrbitalPeriodDays float64 `json:"orbital_period_days"`
	SpinPeriodDays    float64 `json:"spin_period_days"`
	SpinDirection     string  `json:"spin_direction"`
}

func bodiesHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]bodyInfo, 0, 8)
		for _, b := range catalog.Bodies() {
			params, ok := cat.Parameters(b)
			if !ok {
				continue
			}
			out = append(out, bodyInfo{
				Name:              b.String(),
				DistanceScale:     params.DistanceScale,
				Eccentricity:      params.Eccentricity,
				InclinationDeg:    params.InclinationDeg,
				AxialTiltDeg:      params.AxialTiltDeg,
				OrbitalPeriodDays: params.OrbitalPeriodDays,
				SpinPeriodDays:    params.SpinPeriodDays,
				SpinDirection:     params.SpinDirection.String(),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"bodies": out})
	}
}

// positionPayload is the JSON shape of one PlanetPosition.
type positionPayload struct {
	Body         string     `json:"body"`
	LongitudeDeg float64    `json:"longitude_deg"`
	RotationRad  float64    `json:"rotation_rad"`
	Position     [3]float64 `json:"position"`
	Instant      string     `json:"instant"`
}

// positionsHandler serves both modes: with no query it returns the
// continuous-mode state, with ?at=RFC3339 it returns the ephemeris-backed
// positions for that instant.
func positionsHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var positions []engine.PlanetPosition
		mode := "continuous"

		if v := r.URL.Query().Get("at"); v != "" {
			at, err := time.Parse(time.RFC3339, v)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": "invalid at parameter, want RFC3339 timestamp",
				})
				return
			}
			mode = "date"
			positions = eng.PositionsAt(at)
		} else {
			positions = eng.Positions()
		}

		out := make([]positionPayload, len(positions))
		for i, p := range positions {
			out[i] = positionPayload{
				Body:         p.Body.String(),
				LongitudeDeg: p.LongitudeDeg,
				RotationRad:  p.RotationRad,
				Position:     [3]float64{p.X, p.Y, p.Z},
				Instant:      p.Instant.UTC().Format(time.RFC3339),
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"mode": mode, "positions": out})
	}
}

func speedHandler(logger *slog.Logger, speed SpeedSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Multiplier *float64 `json:"multiplier"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Multiplier == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "want JSON body {\"multiplier\": n}"})
			return
		}
		if *req.Multiplier < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multiplier must be >= 0"})
			return
		}
		speed.SetSpeed(*req.Multiplier)
		logger.Info("simulation speed changed", "multiplier", *req.Multiplier)
		writeJSON(w, http.StatusOK, map[string]float64{"multiplier": speed.Speed()})
	}
}

// dateHandler starts an animated transition to an absolute date.
// Body: {"target":"2024-06-15T00:00:00Z","speed":0.5}
func dateHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Target string  `json:"target"`
			Speed  float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Target == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "want JSON body {\"target\": RFC3339, \"speed\": 0..1}"})
			return
		}
		target, err := time.Parse(time.RFC3339, req.Target)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid target timestamp, want RFC3339"})
			return
		}
		if req.Speed < 0 || req.Speed > 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "speed must be in [0, 1]"})
			return
		}

		eng.BeginTransition(target, req.Speed)
		writeJSON(w, http.StatusAccepted, map[string]any{
			"target":        target.UTC().Format(time.RFC3339),
			"transitioning": eng.TransitionActive(),
		})
	}
}

func skipHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eng.SkipTransition()
		writeJSON(w, http.StatusOK, map[string]any{
			"transitioning": false,
			"date":          eng.DateInstant().UTC().Format(time.RFC3339),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// probePath returns true for health/readiness probe paths that should not log at INFO.
func probePath(path string) bool {
	return path == "/healthz" || path == "/readyz"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Flush forwards flushes so the SSE stream handler still sees an
// http.Flusher behind the middleware chain.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController, which needs
// it to reach the connection's write deadline for long-lived streams.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			duration := time.Since(start)
			level := slog.LevelInfo
			if probePath(r.URL.Path) {
				level = slog.LevelDebug
			}

			logger.Log(r.Context(), level, "request",
				"component", "api",
				"method", r.Method,
				"path", r.URL.Path,
				"status", strconv.Itoa(sr.statusCode),
				"duration_ms", duration.Milliseconds(),
				"remote_ip", r.RemoteAddr,
			)
		})
	}
}
