package timeline

import (
	"fmt"
	"math"
	"sort"
)

// frameEpsilon protects floor(total*fps) from float noise (2.0*10 must stay 20).
const frameEpsilon = 1e-9

// Scene represents a named, time-bounded segment of an animation
type Scene struct {
	Name     string             `yaml:"name"`
	Duration float64            `yaml:"duration"`       // Seconds
	Mode     string             `yaml:"mode,omitempty"` // Layout group, e.g. "before"/"after"
	Kind     string             `yaml:"kind,omitempty"` // Variant inside the group, e.g. "hot_partition"
	Params   map[string]float64 `yaml:"params,omitempty"`
}

// Param returns a scene parameter or def if it is not declared
func (s Scene) Param(key string, def float64) float64 {
	if v, ok := s.Params[key]; ok {
		return v
	}
	return def
}

// clone returns s with its own Params map
func (s Scene) clone() Scene {
	if s.Params != nil {
		params := make(map[string]float64, len(s.Params))
		for k, v := range s.Params {
			params[k] = v
		}
		s.Params = params
	}
	return s
}

// Position is the resolved location of a moment inside a timeline
type Position struct {
	Scene    Scene
	Index    int     // Index of the scene in declaration order
	Time     float64 // Global elapsed time
	Local    float64 // Elapsed time inside the scene
	Progress float64 // Local / Duration, clamped to [0,1]
}

// Timeline is an ordered, immutable list of scenes with cumulative offsets
type Timeline struct {
	scenes []Scene
	starts []float64
	ends   []float64
	active []int // indexes of scenes with non-zero duration
	total  float64
}

// New builds a timeline. Zero-duration scenes are kept as instantaneous
// boundaries and never become active.
func New(scenes ...Scene) (*Timeline, error) {
	tl := &Timeline{
		scenes: make([]Scene, len(scenes)),
		starts: make([]float64, len(scenes)),
		ends:   make([]float64, len(scenes)),
	}

	seen := make(map[string]bool, len(scenes))
	acc := 0.0
	for i, s := range scenes {
		if s.Duration < 0 || math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) {
			return nil, fmt.Errorf("scene %q: invalid duration %v", s.Name, s.Duration)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate scene name %q", s.Name)
		}
		seen[s.Name] = true

		tl.scenes[i] = s.clone()
		tl.starts[i] = acc
		acc += s.Duration
		tl.ends[i] = acc
		if s.Duration > 0 {
			tl.active = append(tl.active, i)
		}
	}
	tl.total = acc

	return tl, nil
}

// MustNew is New for statically declared timelines
func MustNew(scenes ...Scene) *Timeline {
	tl, err := New(scenes...)
	if err != nil {
		panic(err)
	}
	return tl
}

// Total returns the sum of all scene durations
func (tl *Timeline) Total() float64 {
	return tl.total
}

// Len returns the number of declared scenes (including zero-duration ones)
func (tl *Timeline) Len() int {
	return len(tl.scenes)
}

// Scenes returns a copy of the declared scenes
func (tl *Timeline) Scenes() []Scene {
	out := make([]Scene, len(tl.scenes))
	for i, s := range tl.scenes {
		out[i] = s.clone()
	}
	return out
}

// Start returns the global start offset of the named scene
func (tl *Timeline) Start(name string) (float64, bool) {
	for i, s := range tl.scenes {
		if s.Name == name {
			return tl.starts[i], true
		}
	}
	return 0, false
}

// At resolves the active scene at global time t.
// t < 0 clamps to the beginning, t >= Total() resolves to the end of the
// last active scene. ok is false only for an empty timeline.
func (tl *Timeline) At(t float64) (Position, bool) {
	if len(tl.active) == 0 {
		return Position{}, false
	}
	if t < 0 || math.IsNaN(t) {
		t = 0
	}

	// Первая активная сцена, которая заканчивается строго после t
	k := sort.Search(len(tl.active), func(k int) bool {
		return tl.ends[tl.active[k]] > t
	})

	if k == len(tl.active) {
		idx := tl.active[len(tl.active)-1]
		s := tl.scenes[idx].clone()
		return Position{Scene: s, Index: idx, Time: t, Local: s.Duration, Progress: 1}, true
	}

	idx := tl.active[k]
	s := tl.scenes[idx].clone()
	local := t - tl.starts[idx]
	if local < 0 {
		local = 0
	}
	progress := local / s.Duration
	if progress > 1 {
		progress = 1
	}

	return Position{Scene: s, Index: idx, Time: t, Local: local, Progress: progress}, true
}

// FrameCount returns floor(Total() * fps)
func (tl *Timeline) FrameCount(fps int) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Floor(tl.total*float64(fps) + frameEpsilon))
}

// TimeAt converts a frame index to elapsed seconds
func TimeAt(frame, fps int) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frame) / float64(fps)
}

// Frame resolves the position for a frame index
func (tl *Timeline) Frame(frame, fps int) (Position, bool) {
	return tl.At(TimeAt(frame, fps))
}
