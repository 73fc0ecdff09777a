// Package pipeline models the buffered ingestion pipeline
// (Source → Kafka → Consumers → Elasticsearch → Dashboards) shared by the
// consumer-lag and scaling explainers.
package pipeline

import (
	"github.com/ivlev/scene2video/internal/interp"
)

// Partitions is the number of Kafka partitions and consumers drawn
const Partitions = 6

// Scenario selects how the pipeline misbehaves in a scene
type Scenario string

const (
	Baseline       Scenario = "baseline"
	Peak           Scenario = "peak"
	HotPartition   Scenario = "hot_partition"
	SlowDownstream Scenario = "slow_downstream"
	HeavyLogic     Scenario = "heavy_logic"
	RetryStorm     Scenario = "retry_storm"
)

// HotIndex is the partition that receives the skewed keys
const HotIndex = 2

// ConsumerState is the health of a single consumer
type ConsumerState int

const (
	Steady ConsumerState = iota
	Waiting
	Blocked
)

func (c ConsumerState) String() string {
	switch c {
	case Waiting:
		return "wait"
	case Blocked:
		return "block"
	}
	return "steady"
}

// Severity of the status line
type Severity int

const (
	SevSteady Severity = iota
	SevWarn
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarn:
		return "WARN"
	case SevError:
		return "ERROR"
	}
	return "STEADY"
}

// State is everything the pipeline widgets need for one frame
type State struct {
	SourceRate  int // events/sec
	PartFill    [Partitions]float64
	PartHot     [Partitions]bool
	Consumers   [Partitions]ConsumerState
	ConsumerBar [Partitions]float64
	ESMeter     float64 // Indexing pressure in [0,1]
	DashStale   bool
	DashDelay   float64 // Seconds
	Lag         int
	Severity    Severity
}

// IndexingLatency is the displayed latency for the current ES pressure, ms
func (s State) IndexingLatency() int {
	return int(40 + 80*s.ESMeter)
}

// ESOverloaded reports whether the ES box gets an error outline
func (s State) ESOverloaded() bool {
	return s.ESMeter > 0.85
}

func baseline() State {
	st := State{
		SourceRate: 1000,
		ESMeter:    0.20,
		Severity:   SevSteady,
	}
	for i := 0; i < Partitions; i++ {
		st.PartFill[i] = 0.10
		st.Consumers[i] = Steady
		st.ConsumerBar[i] = 0.25
	}
	return st
}

// Resolve computes the pipeline state for a scenario at progress p in [0,1].
// lagTarget is the consumer lag reached at the end of the scene.
func Resolve(sc Scenario, p, lagTarget float64) State {
	p = interp.Clamp01(p)
	st := baseline()
	lag := func() int { return interp.LerpInt(0, int(lagTarget), p) }

	switch sc {
	case Peak:
		st.SourceRate = 8000
		for i := range st.PartFill {
			st.PartFill[i] = interp.Lerp(0.1, 0.6, p)
		}
		st.DashStale = true
		st.Severity = SevWarn
		st.Lag = lag()

	case HotPartition:
		st.SourceRate = 5000
		for i := range st.PartFill {
			st.PartFill[i] = 0.15
		}
		st.PartFill[HotIndex] = interp.Lerp(0.2, 0.95, p)
		st.PartHot[HotIndex] = true
		st.Consumers[HotIndex] = Blocked
		st.ConsumerBar[HotIndex] = 0.05
		st.Severity = SevError
		st.Lag = lag()

	case SlowDownstream:
		for i := range st.Consumers {
			st.Consumers[i] = Waiting
			st.ConsumerBar[i] = 0.10
		}
		st.ESMeter = interp.Lerp(0.2, 0.95, p)
		st.DashStale = true
		st.DashDelay = interp.Lerp(0, 45, p)
		st.Severity = SevError
		st.Lag = lag()

	case HeavyLogic:
		for i := range st.Consumers {
			st.Consumers[i] = Blocked
			st.ConsumerBar[i] = interp.Lerp(0.25, 0.08, p)
		}
		st.Severity = SevWarn
		st.Lag = lag()

	case RetryStorm:
		// Чётные консьюмеры блокируются на ретраях, нечётные ждут их
		for i := range st.Consumers {
			if i%2 == 0 {
				st.Consumers[i] = Blocked
				st.ConsumerBar[i] = interp.Lerp(0.25, 0.05, p)
			} else {
				st.Consumers[i] = Waiting
				st.ConsumerBar[i] = interp.Lerp(0.25, 0.12, p)
			}
		}
		st.Severity = SevError
		st.Lag = lag()
	}

	return st
}
