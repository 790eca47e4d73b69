// Package stream implements Server-Sent Events (SSE) streaming of planet
// position frames. Clients connect via GET /api/v1/stream/positions and
// receive a continuous stream of engine snapshots.
//
// SSE message format:
//
//	data: {"type":"position_frame","t":"2026-08-23T04:00:00Z","bodies":[...]}\n\n
//
// First message is always metadata:
//
//	data: {"type":"metadata","bodies":8,"step_ms":1000}\n\n
//
// Keep-alive comments (:\n\n) are sent every KeepaliveInterval to prevent
// timeout. Reconnecting clients receive a fresh metadata message on each
// connection.
package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/helio/heliogo/internal/engine"
	"github.com/helio/heliogo/internal/httputil"
	"github.com/helio/heliogo/internal/metrics"
)

// Config holds streaming configuration loaded from environment variables.
type Config struct {
	MaxConcurrentPerIP int           // Max concurrent streams per IP (default: 10).
	MaxTotal           int           // Max concurrent streams across all IPs (default: 1000).
	KeepaliveInterval  time.Duration // Keep-alive ping interval (default: 30s).
	TrustProxy         bool          // Trust X-Forwarded-For for client IPs.
}

// Handler manages SSE streaming connections.
type Handler struct {
	engine  *engine.Engine
	config  Config
	limiter *streamLimiter
	logger  *slog.Logger
}

// NewHandler creates a new streaming handler.
func NewHandler(eng *engine.Engine, config Config, logger *slog.Logger) *Handler {
	return &Handler{
		engine:  eng,
		config:  config,
		limiter: newStreamLimiter(config.MaxConcurrentPerIP, config.MaxTotal),
		logger:  logger,
	}
}

// HandlePositions serves the SSE position stream.
// GET /api/v1/stream/positions?step_ms=1000
func (h *Handler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	stepMs := 1000
	if v := r.URL.Query().Get("step_ms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 50 || n > 60000 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid step_ms parameter, must be 50-60000"})
			return
		}
		stepMs = n
	}

	// Rate limiting: enforce concurrent stream limit per IP.
	ip := httputil.ClientIP(r, h.config.TrustProxy)
	if !h.limiter.acquire(ip) {
		metrics.IncStreamErrors("rate_limit")
		h.logger.Warn("stream rate limit exceeded",
			"remote_ip", ip,
			"current_count", h.limiter.count(ip),
			"total_count", h.limiter.totalCount(),
		)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "too many concurrent streams"})
		return
	}

	metrics.IncStreamConnections("connect")
	metrics.IncStreamsActive()

	startTime := time.Now()
	h.logger.Info("stream connected",
		"remote_ip", ip,
		"user_agent", r.Header.Get("User-Agent"),
		"step_ms", stepMs,
	)

	defer func() {
		h.limiter.release(ip)
		metrics.IncStreamConnections("disconnect")
		metrics.DecStreamsActive()
		h.logger.Info("stream disconnected",
			"remote_ip", ip,
			"duration_seconds", int(time.Since(startTime).Seconds()),
		)
	}()

	// Verify flusher support (required for SSE).
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "streaming not supported"})
		return
	}

	// Set SSE response headers.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering.
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Use ResponseController to manage write deadlines for long-lived SSE.
	// Clear the server's default WriteTimeout for this connection.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("could not clear write deadline", "error", err)
	}

	c := &client{
		w:       w,
		flusher: flusher,
		rc:      rc,
		ip:      ip,
		logger:  h.logger,
	}

	// Send jittered retry interval (3-7s) to prevent thundering-herd
	// reconnection storms when the server restarts.
	retryMs := 3000 + rand.Intn(4000)
	fmt.Fprintf(w, "retry: %d\n\n", retryMs)
	flusher.Flush()

	// Send metadata message (first message on every connection).
	meta := metadataMessage{
		Type:   "metadata",
		Bodies: len(h.engine.Positions()),
		StepMs: stepMs,
	}
	if err := c.sendJSON(meta); err != nil {
		metrics.IncStreamErrors("send_error")
		h.logger.Warn("stream send error (metadata)", "remote_ip", ip, "error", err)
		return
	}

	ticker := time.NewTicker(time.Duration(stepMs) * time.Millisecond)
	defer ticker.Stop()

	keepaliveTicker := time.NewTicker(h.config.KeepaliveInterval)
	defer keepaliveTicker.Stop()

	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			frame := buildFrameMessage(h.engine)
			data, err := json.Marshal(frame)
			if err != nil {
				metrics.IncStreamErrors("marshal_error")
				h.logger.Warn("stream marshal error", "remote_ip", ip, "error", err)
				continue
			}
			if err := c.sendRaw(data); err != nil {
				metrics.IncStreamErrors("send_error")
				h.logger.Warn("stream send error", "remote_ip", ip, "error", err)
				return
			}

			// Reset keepalive since we just sent data.
			keepaliveTicker.Reset(h.config.KeepaliveInterval)

		case <-keepaliveTicker.C:
			if err := c.sendKeepalive(); err != nil {
				metrics.IncStreamErrors("send_error")
				h.logger.Warn("stream keepalive error", "remote_ip", ip, "error", err)
				return
			}
		}
	}
}

// buildFrameMessage snapshots the engine into the SSE frame payload. The
// frame carries the date-mode instant when one is being presented so the
// client can label its time scrubber during transitions.
func buildFrameMessage(eng *engine.Engine) positionFrameMessage {
	positions := eng.Positions()

	bodies := make([]bodyPayload, len(positions))
	for i, p := range positions {
		bodies[i] = bodyPayload{
			Name: p.Body.String(),
			Lon:  p.LongitudeDeg,
			Rot:  p.RotationRad,
			P:    [3]float64{p.X, p.Y, p.Z},
		}
	}

	msg := positionFrameMessage{
		Type:   "position_frame",
		T:      time.Now().UTC().Format(time.RFC3339),
		Bodies: bodies,
	}
	if d := eng.DateInstant(); !d.IsZero() {
		msg.Date = d.UTC().Format(time.RFC3339)
		msg.Transitioning = eng.TransitionActive()
	}
	return msg
}

// SSE message payload types.

type metadataMessage struct {
	Type   string `json:"type"`
	Bodies int    `json:"bodies"`
	StepMs int    `json:"step_ms"`
}

type positionFrameMessage struct {
	Type          string        `json:"type"`
	T             string        `json:"t"`
	Date          string        `json:"date,omitempty"`
	Transitioning bool          `json:"transitioning,omitempty"`
	Bodies        []bodyPayload `json:"bodies"`
}

type bodyPayload struct {
	Name string     `json:"name"`
	Lon  float64    `json:"lon"`
	Rot  float64    `json:"rot"`
	P    [3]float64 `json:"p"`
}
