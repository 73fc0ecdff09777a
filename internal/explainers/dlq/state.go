package dlq

import (
	"math/rand"

	"github.com/ivlev/scene2video/internal/interp"
	"github.com/ivlev/scene2video/internal/timeline"
)

// Scene modes
const (
	ModeIntro      = "intro"
	ModeDLQ        = "dlq"
	ModeTransition = "transition"
	ModeNoDLQ      = "no_dlq"
	ModeOutro      = "outro"
)

const (
	Messages  = 10  // Messages sent in each run
	ErrorRate = 0.2 // Probability that a message fails
	MaxRows   = 6   // Rows visible in a list card
)

// Default lifecycle thresholds of a message, seconds
const (
	DefaultSpacing    = 0.75
	DefaultProcessing = 0.95
	DefaultResult     = 0.45
)

// Message is a message visible in the main pipeline list
type Message struct {
	ID    int // 1-based
	Phase interp.Phase
}

// State is the resolved content of a DLQ frame
type State struct {
	Mode        string
	HeaderAlpha float64
	Pipeline    []Message // Last MaxRows messages that are processing or showing a result
	DLQ         []int     // IDs parked in the dead letter queue
	Lost        int       // Failed messages without a DLQ
	Starting    bool
}

// Model carries the per-run error assignment. Both runs replay the same
// traffic, so the pattern is drawn once.
type Model struct {
	Errors   interp.ErrorPattern
	Messages int
	MaxRows  int
}

// NewModel draws the error pattern from an explicit seed
func NewModel(seed int64) Model {
	rng := rand.New(rand.NewSource(seed))
	return Model{
		Errors:   interp.NewErrorPattern(rng, Messages, ErrorRate),
		Messages: Messages,
		MaxRows:  MaxRows,
	}
}

// Schedule reads the lifecycle thresholds of a run scene
func Schedule(s timeline.Scene) interp.Schedule {
	return interp.Schedule{
		Spacing:    s.Param("spacing", DefaultSpacing),
		Processing: s.Param("processing", DefaultProcessing),
		Result:     s.Param("result", DefaultResult),
	}
}

// Phase returns the phase of message id (1-based) at local time t
func (m Model) Phase(sch interp.Schedule, id int, t float64) interp.Phase {
	return sch.PhaseAt(id-1, t, m.Errors.Failed(id-1))
}

// Resolve computes the frame state for a scene at local time t
func (m Model) Resolve(s timeline.Scene, t float64) State {
	st := State{Mode: s.Mode, HeaderAlpha: 1}

	switch s.Mode {
	case ModeIntro:
		st.HeaderAlpha = interp.Ratio(t, s.Duration)
		return st
	case ModeDLQ, ModeNoDLQ:
	default:
		return st
	}

	sch := Schedule(s)
	for id := 1; id <= m.Messages; id++ {
		ph := m.Phase(sch, id, t)
		if ph.Active() {
			st.Pipeline = append(st.Pipeline, Message{ID: id, Phase: ph})
		}

		// Ошибка фиксируется только после показа результата
		if m.Errors.Failed(id-1) && sch.Settled(id-1, t) {
			if s.Mode == ModeDLQ {
				st.DLQ = append(st.DLQ, id)
			} else {
				st.Lost++
			}
		}
	}

	if len(st.Pipeline) > m.MaxRows {
		st.Pipeline = st.Pipeline[len(st.Pipeline)-m.MaxRows:]
	}
	st.Starting = len(st.Pipeline) == 0 && t < 0.25

	return st
}
