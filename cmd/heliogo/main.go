package main

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/helio/heliogo/internal/api"
	"github.com/helio/heliogo/internal/auth"
	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/engine"
	"github.com/helio/heliogo/internal/ephemeris"
	"github.com/helio/heliogo/internal/stream"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	addr := os.Getenv("HELIOGO_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	authCfg, err := loadAuthConfig(logger)
	if err != nil {
		logger.Error("invalid auth configuration", "error", err)
		os.Exit(1)
	}

	cat := catalog.Default()

	model := loadEphemerisModel(logger)
	adapter := ephemeris.NewAdapter(model, logger)
	cacheCfg := loadCacheConfig(logger)
	lonCache := ephemeris.NewLongitudeCache(adapter, cacheCfg, logger)

	eng := engine.New(cat, lonCache, logger)

	simCfg := loadSimConfig(logger)
	sim := &simLoop{engine: eng, tickInterval: simCfg.TickInterval}
	sim.SetSpeed(simCfg.Speed)

	streamCfg := loadStreamConfig(logger)
	streamHandler := stream.NewHandler(eng, streamCfg, logger)

	srv := api.NewServer(addr, logger, authCfg, cat, eng, sim, streamHandler)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the simulation tick loop.
	go sim.Run(ctx)

	go func() {
		logger.Info("starting server", "addr", addr, "auth_enabled", authCfg.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// simLoop drives the engine's continuous mode at a fixed tick interval. The
// speed multiplier is adjustable at runtime via the API.
type simLoop struct {
	engine       *engine.Engine
	tickInterval time.Duration
	speedBits    atomic.Uint64
}

// SetSpeed updates the continuous-mode speed multiplier.
func (s *simLoop) SetSpeed(multiplier float64) {
	s.speedBits.Store(math.Float64bits(multiplier))
}

// Speed returns the current speed multiplier.
func (s *simLoop) Speed() float64 {
	return math.Float64frombits(s.speedBits.Load())
}

// Run ticks the engine until ctx is cancelled. Each tick advances the
// simulation by the real elapsed time scaled by the current speed.
func (s *simLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.engine.Tick(dt, s.Speed())
		}
	}
}

type simConfig struct {
	TickInterval time.Duration
	Speed        float64
}

func loadAuthConfig(logger *slog.Logger) (auth.Config, error) {
	cfg := auth.Config{}

	enabledStr := os.Getenv("HELIOGO_AUTH_ENABLED")
	if enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return cfg, errors.New("HELIOGO_AUTH_ENABLED must be a boolean value (true/false/1/0)")
		}
		cfg.Enabled = enabled
	}

	if cfg.Enabled {
		cfg.Token = os.Getenv("HELIOGO_AUTH_TOKEN")
		if cfg.Token == "" {
			return cfg, errors.New("HELIOGO_AUTH_TOKEN is required when auth is enabled")
		}
		logger.Info("auth enabled")
	}

	return cfg, nil
}

// loadEphemerisModel selects the ephemeris backend. With a VSOP87 data
// directory configured and readable the full VSOP87 series is used;
// otherwise the engine falls back to J2000 mean orbital elements, which are
// accurate to a degree or two over a few centuries.
func loadEphemerisModel(logger *slog.Logger) ephemeris.Model {
	dataDir := os.Getenv("HELIOGO_VSOP87_DIR")
	if dataDir == "" {
		logger.Info("no VSOP87 data directory configured, using mean-elements model")
		return ephemeris.NewMeanElementsModel()
	}

	vsop := ephemeris.NewVSOP87Model(dataDir)
	if err := vsop.Probe(); err != nil {
		logger.Warn("VSOP87 data not loadable, falling back to mean-elements model",
			"dir", dataDir, "error", err)
		return ephemeris.NewMeanElementsModel()
	}

	logger.Info("ephemeris backend ready", "model", "vsop87", "dir", dataDir)
	return vsop
}

func loadCacheConfig(logger *slog.Logger) ephemeris.CacheConfig {
	cfg := ephemeris.DefaultCacheConfig()

	if v := os.Getenv("HELIOGO_CACHE_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid HELIOGO_CACHE_CAPACITY value, using default", "value", v, "default", cfg.Capacity)
		} else {
			cfg.Capacity = n
		}
	}

	if v := os.Getenv("HELIOGO_CACHE_EVICT_BATCH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid HELIOGO_CACHE_EVICT_BATCH value, using default", "value", v, "default", cfg.EvictBatch)
		} else {
			cfg.EvictBatch = n
		}
	}

	logger.Info("cache config",
		"capacity", cfg.Capacity,
		"evict_batch", cfg.EvictBatch,
	)

	return cfg
}

func loadSimConfig(logger *slog.Logger) simConfig {
	cfg := simConfig{
		TickInterval: 100 * time.Millisecond,
		Speed:        1,
	}

	if v := os.Getenv("HELIOGO_TICK_INTERVAL_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 10 {
			logger.Warn("invalid HELIOGO_TICK_INTERVAL_MS value, using default", "value", v, "default", 100)
		} else {
			cfg.TickInterval = time.Duration(n) * time.Millisecond
		}
	}

	if v := os.Getenv("HELIOGO_SIM_SPEED"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			logger.Warn("invalid HELIOGO_SIM_SPEED value, using default", "value", v, "default", 1)
		} else {
			cfg.Speed = f
		}
	}

	logger.Info("simulation config",
		"tick_interval_ms", cfg.TickInterval.Milliseconds(),
		"speed", cfg.Speed,
	)

	return cfg
}

func loadStreamConfig(logger *slog.Logger) stream.Config {
	cfg := stream.Config{
		MaxConcurrentPerIP: 10,
		MaxTotal:           1000,
		KeepaliveInterval:  30 * time.Second,
	}

	if v := os.Getenv("HELIOGO_STREAM_MAX_CONCURRENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid HELIOGO_STREAM_MAX_CONCURRENT value, using default", "value", v, "default", 10)
		} else {
			cfg.MaxConcurrentPerIP = n
		}
	}

	if v := os.Getenv("HELIOGO_STREAM_MAX_TOTAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid HELIOGO_STREAM_MAX_TOTAL value, using default", "value", v, "default", 1000)
		} else {
			cfg.MaxTotal = n
		}
	}

	if v := os.Getenv("HELIOGO_STREAM_KEEPALIVE_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid HELIOGO_STREAM_KEEPALIVE_INTERVAL value, using default", "value", v, "default", 30)
		} else {
			cfg.KeepaliveInterval = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("HELIOGO_STREAM_TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid HELIOGO_STREAM_TRUST_PROXY value, defaulting to false", "value", v)
		} else {
			cfg.TrustProxy = b
		}
	}

	logger.Info("stream config",
		"max_concurrent_per_ip", cfg.MaxConcurrentPerIP,
		"max_total", cfg.MaxTotal,
		"keepalive_interval_seconds", cfg.KeepaliveInterval.Seconds(),
		"trust_proxy", cfg.TrustProxy,
	)

	return cfg
}
