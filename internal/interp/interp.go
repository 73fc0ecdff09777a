package interp

import (
	"math"

	"github.com/fogleman/ease"
)

// Easing maps a linear progress ratio to an eased one
type Easing func(t float64) float64

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpInt interpolates and truncates toward zero, like int(a + (b-a)*t)
func LerpInt(a, b int, t float64) int {
	return int(Lerp(float64(a), float64(b), t))
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1]
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Ratio returns elapsed/duration clamped to [0,1]. Zero duration counts as finished.
func Ratio(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return Clamp01(elapsed / duration)
}

// Linear is the identity easing
func Linear(t float64) float64 {
	return Clamp01(t)
}

// Smoothstep is t*t*(3-2t)
func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// EaseIn is a quadratic ease-in
func EaseIn(t float64) float64 {
	return ease.InQuad(Clamp01(t))
}

// EaseOut is a quadratic ease-out
func EaseOut(t float64) float64 {
	return ease.OutQuad(Clamp01(t))
}

// EaseInOut uses smoothstep
func EaseInOut(t float64) float64 {
	return Smoothstep(t)
}

// EaseInOutCubic applies smooth cubic easing
func EaseInOutCubic(t float64) float64 {
	return ease.InOutCubic(Clamp01(t))
}

// Between eases t and interpolates a..b
func Between(a, b, t float64, fn Easing) float64 {
	if fn == nil {
		fn = Linear
	}
	return Lerp(a, b, fn(t))
}

// Pulse returns a value in [0,1] oscillating with the given frequency (Hz)
func Pulse(t, freq float64) float64 {
	return 0.5 + 0.5*math.Sin(2*math.Pi*freq*t)
}

// Wave is the scaled pulse used for arrow brightness: base + amp*sin(2πft)
func Wave(t, base, amp, freq float64) float64 {
	return base + amp*math.Sin(2*math.Pi*freq*t)
}

// RiseIn returns the vertical offset of an element that slides up by
// travel pixels, starting at start and settling after dur seconds.
func RiseIn(t, start, travel, dur float64) float64 {
	if t <= start {
		return travel
	}
	if t >= start+dur {
		return 0
	}
	k := EaseOut((t - start) / dur)
	return travel * (1 - k)
}

// Bob is a sine bobbing offset
func Bob(t, amp, speed float64) float64 {
	return amp * math.Sin(t*speed)
}
