package scaling

import (
	"github.com/ivlev/scene2video/internal/explainers/pipeline"
	"github.com/ivlev/scene2video/internal/interp"
	"github.com/ivlev/scene2video/internal/timeline"
)

// Scene modes
const (
	ModeTitle      = "title"
	ModeBefore     = "before"
	ModeTransition = "transition"
	ModeAfter      = "after"
	ModeObs        = "obs"
	ModeClosing    = "closing"
)

// Kinds of the "before" scenes
const (
	KindSteady = "steady"
	KindSpike  = "spike"
)

// BeforeState is the unbuffered App → Logstash → ES pipeline
type BeforeState struct {
	Events    int // events/day
	ESMeter   float64
	DashStale bool
	DashDelay int     // Seconds
	GCPause   float64 // ms
	RetryRate float64 // Fraction of writes retried
	Severity  pipeline.Severity
	Status    string
}

// ResolveBefore computes the unbuffered pipeline at progress p
func ResolveBefore(kind string, events int, p float64) BeforeState {
	st := BeforeState{
		Events:   events,
		ESMeter:  0.20,
		Severity: pipeline.SevSteady,
		Status:   "10K/day — Fast dashboards, low CPU, no alerts.",
	}
	if kind != KindSpike {
		return st
	}

	p = interp.Clamp01(p)
	st.ESMeter = interp.Lerp(0.3, 0.95, p)
	st.GCPause = interp.Lerp(5, 180, p)
	st.RetryRate = interp.Lerp(0, 0.18, p)
	st.DashStale = true
	st.DashDelay = interp.LerpInt(0, 45, p)
	st.Severity = pipeline.SevError
	st.Status = "Spike without buffer — ES throttles; retries cascade."
	return st
}

var afterStatus = map[pipeline.Scenario]string{
	pipeline.Baseline:       "Buffered ingestion. Balanced production & consumption.",
	pipeline.Peak:           "Peak load. Lag rises; downstream throughput is capped.",
	pipeline.HotPartition:   "Hot partition — one consumer bottlenecks; more consumers don’t help.",
	pipeline.SlowDownstream: "Downstream slow — ES throttles; consumers apply backpressure.",
	pipeline.HeavyLogic:     "Heavy transforms & sync calls reduce throughput.",
	pipeline.RetryStorm:     "Retry storm — duplicates amplify load; lag is a side effect.",
}

// State is the resolved content of a frame
type State struct {
	Mode   string
	Before BeforeState
	After  pipeline.State
	Status string
}

// Resolve computes the frame state for a scene at local time t
func Resolve(s timeline.Scene, t float64) State {
	st := State{Mode: s.Mode}
	p := interp.Ratio(t, s.Duration)

	switch s.Mode {
	case ModeBefore:
		st.Before = ResolveBefore(s.Kind, int(s.Param("events", 10000)), p)
		st.Status = st.Before.Status
	case ModeAfter, ModeObs:
		sc := pipeline.Scenario(s.Kind)
		if sc == "" {
			sc = pipeline.Baseline
		}
		st.After = pipeline.Resolve(sc, p, s.Param("lag_target", 0))
		st.Status = afterStatus[sc]
	}
	return st
}
