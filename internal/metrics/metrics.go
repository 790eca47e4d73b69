// Package metrics registers and exposes Prometheus instrumentation for the
// position engine and its HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heliogo_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "heliogo_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	longitudeCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "heliogo_longitude_cache_hits_total",
		Help: "Longitude cache hits.",
	})

	longitudeCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "heliogo_longitude_cache_misses_total",
		Help: "Longitude cache misses.",
	})

	longitudeCacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "heliogo_longitude_cache_evictions_total",
		Help: "Longitude cache entries evicted.",
	})

	longitudeCacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heliogo_longitude_cache_entries",
		Help: "Current number of longitude cache entries.",
	})

	ephemerisDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "heliogo_ephemeris_duration_seconds",
		Help:    "Duration of uncached ephemeris model evaluations.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	})

	ephemerisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heliogo_ephemeris_errors_total",
			Help: "Ephemeris lookups absorbed by the fail-soft boundary.",
		},
		[]string{"reason"},
	)

	engineTickSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "heliogo_engine_tick_seconds",
		Help:    "Duration of one engine tick across all bodies.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	})

	streamConnectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heliogo_stream_connections_total",
			Help: "SSE stream connect/disconnect events.",
		},
		[]string{"event"},
	)

	streamsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "heliogo_streams_active",
		Help: "Currently connected SSE streams.",
	})

	streamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heliogo_stream_errors_total",
			Help: "SSE stream errors by kind.",
		},
		[]string{"kind"},
	)

	streamMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "heliogo_stream_messages_total",
		Help: "SSE messages sent.",
	})

	streamBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "heliogo_stream_bytes_total",
		Help: "SSE payload bytes sent.",
	})
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDurationSeconds,
		longitudeCacheHits,
		longitudeCacheMisses,
		longitudeCacheEvictions,
		longitudeCacheEntries,
		ephemerisDurationSeconds,
		ephemerisErrorsTotal,
		engineTickSeconds,
		streamConnectionsTotal,
		streamsActive,
		streamErrorsTotal,
		streamMessagesTotal,
		streamBytesTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncCacheHits records a longitude cache hit.
func IncCacheHits() { longitudeCacheHits.Inc() }

// IncCacheMisses records a longitude cache miss.
func IncCacheMisses() { longitudeCacheMisses.Inc() }

// AddCacheEvictions records n evicted longitude cache entries.
func AddCacheEvictions(n int) { longitudeCacheEvictions.Add(float64(n)) }

// SetCacheEntries publishes the current longitude cache size.
func SetCacheEntries(n int) { longitudeCacheEntries.Set(float64(n)) }

// ObserveEphemerisDuration records the duration of an uncached model call.
func ObserveEphemerisDuration(d time.Duration) {
	ephemerisDurationSeconds.Observe(d.Seconds())
}

// IncEphemerisErrors records an absorbed ephemeris failure.
func IncEphemerisErrors(reason string) {
	ephemerisErrorsTotal.WithLabelValues(reason).Inc()
}

// ObserveEngineTick records the duration of one engine tick.
func ObserveEngineTick(d time.Duration) { engineTickSeconds.Observe(d.Seconds()) }

// IncStreamConnections records a stream lifecycle event ("connect"/"disconnect").
func IncStreamConnections(event string) {
	streamConnectionsTotal.WithLabelValues(event).Inc()
}

// IncStreamsActive increments the active stream gauge.
func IncStreamsActive() { streamsActive.Inc() }

// DecStreamsActive decrements the active stream gauge.
func DecStreamsActive() { streamsActive.Dec() }

// IncStreamErrors records a stream error by kind.
func IncStreamErrors(kind string) { streamErrorsTotal.WithLabelValues(kind).Inc() }

// IncStreamMessages records one sent SSE message.
func IncStreamMessages() { streamMessagesTotal.Inc() }

// AddStreamBytes records sent SSE payload bytes.
func AddStreamBytes(n int64) { streamBytesTotal.Add(float64(n)) }

// knownRoutes are the exact paths served by the API. Anything else collapses
// to "other" so scanner traffic cannot inflate label cardinality.
var knownRoutes = map[string]bool{
	"/healthz":                     true,
	"/readyz":                      true,
	"/metrics":                     true,
	"/api/v1/bodies":               true,
	"/api/v1/positions":            true,
	"/api/v1/simulation/speed":     true,
	"/api/v1/simulation/date":      true,
	"/api/v1/simulation/date/skip": true,
	"/api/v1/stream/positions":     true,
}

func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush forwards flushes so the SSE stream handler still sees an
// http.Flusher behind the middleware chain.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
