package interp

import "math/rand"

// Phase is the discrete lifecycle of a staggered item
type Phase int

const (
	PhasePending Phase = iota
	PhaseProcessing
	PhaseError
	PhaseSuccess
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseProcessing:
		return "processing"
	case PhaseError:
		return "error"
	case PhaseSuccess:
		return "success"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// Rank orders phases along pending→processing→{error|success}→done.
// Error and success share a rank.
func (p Phase) Rank() int {
	switch p {
	case PhasePending:
		return 0
	case PhaseProcessing:
		return 1
	case PhaseError, PhaseSuccess:
		return 2
	default:
		return 3
	}
}

// Active reports whether the item is visible in a processing list
func (p Phase) Active() bool {
	return p == PhaseProcessing || p == PhaseError || p == PhaseSuccess
}

// Schedule declares the stagger and threshold durations of an item lifecycle
type Schedule struct {
	Spacing    float64 `yaml:"spacing"`    // Offset between consecutive items
	Processing float64 `yaml:"processing"` // Time spent in PhaseProcessing
	Result     float64 `yaml:"result"`     // Time the error/success result is shown
}

// Offset returns the start time of item i (0-based)
func (s Schedule) Offset(i int) float64 {
	return float64(i) * s.Spacing
}

// Local returns the item's own elapsed time; negative before it starts
func (s Schedule) Local(i int, t float64) float64 {
	return t - s.Offset(i)
}

// PhaseAt resolves the phase of item i at local scene time t
func (s Schedule) PhaseAt(i int, t float64, failed bool) Phase {
	lt := s.Local(i, t)
	switch {
	case lt < 0:
		return PhasePending
	case lt < s.Processing:
		return PhaseProcessing
	case lt < s.Processing+s.Result:
		if failed {
			return PhaseError
		}
		return PhaseSuccess
	default:
		return PhaseDone
	}
}

// Settled reports whether item i has finished its result phase at t
func (s Schedule) Settled(i int, t float64) bool {
	return s.Local(i, t) >= s.Processing+s.Result
}

// ErrorPattern is a fixed per-run assignment of failing items
type ErrorPattern []bool

// NewErrorPattern draws n failures with probability p from an explicit seeded source
func NewErrorPattern(rng *rand.Rand, n int, p float64) ErrorPattern {
	out := make(ErrorPattern, n)
	for i := range out {
		out[i] = rng.Float64() < p
	}
	return out
}

// Failed reports whether item i fails; out of range items succeed
func (e ErrorPattern) Failed(i int) bool {
	return i >= 0 && i < len(e) && e[i]
}

// Count returns the number of failing items
func (e ErrorPattern) Count() int {
	n := 0
	for _, f := range e {
		if f {
			n++
		}
	}
	return n
}
