package indexdesign

import (
	"math"

	"github.com/ivlev/scene2video/internal/interp"
	"github.com/ivlev/scene2video/internal/timeline"
)

// Scene modes
const (
	ModeSetup         = "setup"
	ModeTraffic       = "traffic"
	ModeMisconception = "misconception"
	ModeFactors       = "factors"
	ModeOptimized     = "optimized"
)

// Factors is the number of index settings cards
const Factors = 4

// heapTrack maps traffic progress onto heap usage
var heapTrack = interp.Track{
	Keys:   []interp.Key{{Time: 0, Value: 0.15}, {Time: 1, Value: 1}},
	Easing: interp.EaseInOut,
}

// State is the resolved content of an index design frame
type State struct {
	Mode string

	// Traffic growth
	Traffic    float64 // Eased load in [0,1]
	ArrowWidth float64
	Heap       float64
	Popups     float64 // Popup opacity, 0 while hidden
	Pulse      float64 // Alarm pulse in [0,1]

	// Misconception
	Strike float64 // Cross-out progress
	Reveal float64 // Answer slide-in, negative while hidden

	// Factor cards
	Active   int     // Highlighted card
	Factor   float64 // Eased animation progress of the active card
	Emphasis float64 // Outline pulse of the active card

	// ILM phases
	Phase      int
	PhaseShift float64 // Eased progress through all phases
}

// Resolve computes the frame state for a scene at local time t
func Resolve(s timeline.Scene, t float64) State {
	st := State{Mode: s.Mode, Reveal: -1}
	p := interp.Ratio(t, s.Duration)

	switch s.Mode {
	case ModeTraffic:
		st.Traffic = interp.EaseInOut(p)
		st.ArrowWidth = math.Floor(6 + 10*st.Traffic)
		st.Heap = heapTrack.At(p)
		st.Pulse = interp.Pulse(t, 6/(2*math.Pi))
		if start := s.Param("popups_at", 2); t > start {
			st.Popups = interp.EaseInOut((t - start) / (s.Duration - start))
		}

	case ModeMisconception:
		const split = 0.55
		if p < split {
			st.Strike = interp.EaseIn(p / split)
		} else {
			st.Strike = 1
			st.Reveal = interp.EaseOut((p - split) / (1 - split))
		}

	case ModeFactors:
		per := s.Param("per_factor", 2.5)
		idx := int(math.Floor(t / per))
		frac := (t - float64(idx)*per) / per
		if idx > Factors-1 {
			idx = Factors - 1
			frac = 1
		}
		if idx < 0 {
			idx = 0
		}
		st.Active = idx
		st.Factor = interp.EaseInOutCubic(frac)
		st.Emphasis = interp.Pulse(t, 8/(2*math.Pi))

	case ModeOptimized:
		st.PhaseShift = interp.EaseInOut(p)
		st.Phase = int(math.Min(2, math.Floor(st.PhaseShift*3)))
	}

	return st
}
