package transition

import (
	"math"
	"time"
)

// Direction is the temporal sense of a transition.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// DirectionOf returns Forward iff target is after start, Backward iff it is
// before. Equal instants report Forward (the transition is a no-op anyway).
func DirectionOf(start, target time.Time) Direction {
	if target.Before(start) {
		return Backward
	}
	return Forward
}

// DurationConfig bounds the transition duration model.
type DurationConfig struct {
	MinMs float64 // shortest base duration (default: 300)
	MaxMs float64 // longest base duration (default: 3000)
}

// DefaultDurationConfig returns the documented defaults.
func DefaultDurationConfig() DurationConfig {
	return DurationConfig{MinMs: 300, MaxMs: 3000}
}

const msPerDay = 86400000.0

// Duration returns the transition duration in milliseconds for animating
// from start to target at the given speed setting in [0, 1].
//
// Zero when start == target or speed >= 1 (instant mode). Otherwise the
// base duration grows with the log of the day span, clamped to
// [MinMs, MaxMs], and is scaled down by (1 - speed*0.9), floored at
// 0.1*MinMs. Monotonic increasing in day span at fixed speed, monotonic
// decreasing in speed at fixed span.
func Duration(start, target time.Time, speed float64, cfg DurationConfig) float64 {
	if start.Equal(target) || speed >= 1 {
		return 0
	}
	if speed < 0 || math.IsNaN(speed) {
		speed = 0
	}

	dayDistance := math.Abs(float64(target.UnixMilli()-start.UnixMilli())) / msPerDay
	base := math.Log10(dayDistance+1) * 1000
	if base < cfg.MinMs {
		base = cfg.MinMs
	}
	if base > cfg.MaxMs {
		base = cfg.MaxMs
	}

	scaled := base * (1 - speed*0.9)
	floor := 0.1 * cfg.MinMs
	if scaled < floor {
		scaled = floor
	}
	return scaled
}

// Interpolate returns the instant at the given progress along the
// millisecond timeline from start to target. Progress is clamped to [0,1];
// 0 returns exactly start, 1 exactly target, 0.5 the exact midpoint.
func Interpolate(start, target time.Time, progress float64) time.Time {
	progress = clamp01(progress)
	if progress == 0 {
		return start
	}
	if progress == 1 {
		return target
	}
	span := float64(target.UnixMilli() - start.UnixMilli())
	ms := start.UnixMilli() + int64(math.Round(span*progress))
	return time.UnixMilli(ms).UTC()
}

// Transition animates between two absolute dates. Created when a date-mode
// jump begins; replaced when it completes or is skipped. Skip is a state
// overwrite, not a cancellation; nothing runs in flight.
type Transition struct {
	start     time.Time
	target    time.Time
	direction Direction
	duration  float64 // ms
	progress  float64 // [0, 1], raw (pre-easing)
	easing    EasingFunc
}

// New starts a transition from start to target paced by speed in [0,1].
// A nil easing defaults to EaseInOutCubic.
func New(start, target time.Time, speed float64, cfg DurationConfig, easing EasingFunc) *Transition {
	if easing == nil {
		easing = EaseInOutCubic
	}
	return &Transition{
		start:     start,
		target:    target,
		direction: DirectionOf(start, target),
		duration:  Duration(start, target, speed, cfg),
		easing:    easing,
	}
}

// Advance moves the transition forward by dtMs of real time and returns the
// current interpolated instant. A zero-duration transition completes on the
// first advance.
func (t *Transition) Advance(dtMs float64) time.Time {
	if t.duration <= 0 {
		t.progress = 1
	} else if dtMs > 0 {
		t.progress = clamp01(t.progress + dtMs/t.duration)
	}
	return t.Current()
}

// Current returns the instant at the eased progress.
func (t *Transition) Current() time.Time {
	return Interpolate(t.start, t.target, t.easing(t.progress))
}

// SkipToTarget overwrites progress so the transition is complete.
func (t *Transition) SkipToTarget() {
	t.progress = 1
}

// Done reports whether the target has been reached.
func (t *Transition) Done() bool {
	return t.progress >= 1
}

// Target returns the destination instant.
func (t *Transition) Target() time.Time { return t.target }

// Direction returns the temporal sense of the transition.
func (t *Transition) Direction() Direction { return t.direction }

// Progress returns the raw (pre-easing) progress in [0, 1].
func (t *Transition) Progress() float64 { return t.progress }
