// Package transition implements date-mode animation: eased, duration-scaled
// interpolation between two absolute calendar instants.
package transition

import "math"

// EasingFunc shapes a progress value. Every easing function maps [0,1] to
// [0,1] with f(0)=0 and f(1)=1, monotonically non-decreasing. Input outside
// [0,1] is clamped first.
type EasingFunc func(progress float64) float64

func clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Linear is the identity easing.
func Linear(p float64) float64 {
	return clamp01(p)
}

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(p float64) float64 {
	p = clamp01(p)
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math.Pow(-2*p+2, 2)/2
}

// EaseInOutCubic is a steeper symmetric ease.
func EaseInOutCubic(p float64) float64 {
	p = clamp01(p)
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

// EaseOutQuart starts fast and settles slowly into the target.
func EaseOutQuart(p float64) float64 {
	p = clamp01(p)
	return 1 - math.Pow(1-p, 4)
}
