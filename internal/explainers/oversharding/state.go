package oversharding

import (
	"github.com/ivlev/scene2video/internal/interp"
	"github.com/ivlev/scene2video/internal/timeline"
)

// Layout of a slide as fractions of the frame and motion constants in seconds
const (
	MainY      = 0.40
	SubY       = 0.62
	SubStart   = 0.2 // Подзаголовок появляется позже основного текста
	mainTravel = 36
	subTravel  = 26
	riseDur    = 0.7

	iconX       = 0.12
	iconXBounce = 0.15
	iconY       = 0.18
	iconYBounce = 0.20

	flashStart = 0.05
	flashDur   = 0.2
	flashAlpha = 0.22
	glowAlpha  = 0.08
)

// State is the resolved layout of a slide frame
type State struct {
	Slide      Slide
	MainOffset float64 // Pixels below the resting position
	SubVisible bool
	SubOffset  float64
	IconX      float64 // Fraction of the frame width
	IconY      float64 // Fraction of the frame height
	IconDY     float64 // Pixels
	Wash       float64 // White overlay opacity
}

// Resolve computes the slide layout for a scene at local time t
func Resolve(s timeline.Scene, t float64) State {
	st := State{
		Slide:      Slides[s.Name],
		MainOffset: interp.RiseIn(t, 0, mainTravel, riseDur),
		IconX:      iconX,
		IconY:      iconY,
	}

	// Подзаголовок живёт в своём времени: отсчёт с момента появления
	if st.Slide.Sub != "" && t >= SubStart {
		st.SubVisible = true
		st.SubOffset = interp.RiseIn(t-SubStart, SubStart, subTravel, riseDur)
	}

	switch s.Mode {
	case EffectBounce:
		st.IconX, st.IconY = iconXBounce, iconYBounce
		st.IconDY = interp.RiseIn(t, 0.1, 18, 0.5)
	case EffectPulse:
		st.IconDY = interp.Bob(t, 10, 5)
	case EffectFlash:
		if t >= flashStart && t < flashStart+flashDur {
			st.Wash = flashAlpha
		}
	case EffectGlow:
		st.Wash = glowAlpha
	}

	return st
}
