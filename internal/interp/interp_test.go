package interp

import (
	"math"
	"math/rand"
	"testing"
)

func TestLerpEndpointsAndMonotonic(t *testing.T) {
	pairs := [][2]float64{{0, 1}, {-5, 5}, {120000, 500000}, {3, 3}}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if Lerp(a, b, 0) != a {
			t.Errorf("Lerp(%v,%v,0) != a", a, b)
		}
		if Lerp(a, b, 1) != b {
			t.Errorf("Lerp(%v,%v,1) != b", a, b)
		}
		prev := Lerp(a, b, 0)
		for i := 1; i <= 100; i++ {
			v := Lerp(a, b, float64(i)/100)
			if v < prev {
				t.Fatalf("Lerp(%v,%v) not monotonic at %d", a, b, i)
			}
			prev = v
		}
	}
}

func TestEasings(t *testing.T) {
	easings := map[string]Easing{
		"linear":    Linear,
		"smooth":    Smoothstep,
		"in":        EaseIn,
		"out":       EaseOut,
		"inOut":     EaseInOut,
		"inOutCube": EaseInOutCubic,
	}

	for name, fn := range easings {
		t.Run(name, func(t *testing.T) {
			if math.Abs(fn(0)) > 1e-9 || math.Abs(fn(1)-1) > 1e-9 {
				t.Errorf("%s: endpoints %f %f", name, fn(0), fn(1))
			}
			if fn(-1) != fn(0) || fn(2) != fn(1) {
				t.Errorf("%s: input not clamped", name)
			}
			prev := fn(0)
			for i := 1; i <= 50; i++ {
				v := fn(float64(i) / 50)
				if v+1e-12 < prev {
					t.Fatalf("%s: not monotonic at %d", name, i)
				}
				prev = v
			}
		})
	}

	if math.Abs(EaseOut(0.5)-0.75) > 1e-9 {
		t.Errorf("EaseOut(0.5) expected 0.75, got %f", EaseOut(0.5))
	}
	if math.Abs(EaseIn(0.5)-0.25) > 1e-9 {
		t.Errorf("EaseIn(0.5) expected 0.25, got %f", EaseIn(0.5))
	}
}

func TestTrack(t *testing.T) {
	tr := Track{Keys: []Key{{0, 1.0}, {2, 1.5}, {4, 2.0}}}

	tests := []struct {
		time     float64
		expected float64
	}{
		{-1, 1.0},
		{0, 1.0},
		{1, 1.25},
		{2, 1.5},
		{3, 1.75},
		{5, 2.0},
	}
	for _, tt := range tests {
		if got := tr.At(tt.time); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("At %.1f: expected %.2f, got %.2f", tt.time, tt.expected, got)
		}
	}

	if (Track{}).At(1) != 0 {
		t.Error("Empty track should be zero")
	}
}

func TestStaggerScenario(t *testing.T) {
	s := Schedule{Spacing: 0.5, Processing: 0.2, Result: 0}

	got := []Phase{
		s.PhaseAt(0, 0.6, false),
		s.PhaseAt(1, 0.6, false),
		s.PhaseAt(2, 0.6, false),
	}
	want := []Phase{PhaseDone, PhaseProcessing, PhasePending}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPhaseMonotonic(t *testing.T) {
	s := Schedule{Spacing: 0.75, Processing: 0.95, Result: 0.45}
	for item := 0; item < 10; item++ {
		for _, failed := range []bool{false, true} {
			prev := PhasePending
			for ti := 0.0; ti < 10; ti += 0.01 {
				ph := s.PhaseAt(item, ti, failed)
				if ph.Rank() < prev.Rank() {
					t.Fatalf("item %d: %s after %s at t=%.2f", item, ph, prev, ti)
				}
				if ph != s.PhaseAt(item, ti, failed) {
					t.Fatalf("item %d: phase not idempotent at t=%.2f", item, ti)
				}
				if failed && ph == PhaseSuccess || !failed && ph == PhaseError {
					t.Fatalf("item %d: wrong result phase %s", item, ph)
				}
				prev = ph
			}
		}
	}
}

func TestErrorPatternSeeded(t *testing.T) {
	a := NewErrorPattern(rand.New(rand.NewSource(7)), 10, 0.2)
	b := NewErrorPattern(rand.New(rand.NewSource(7)), 10, 0.2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed produced different patterns: %v vs %v", a, b)
		}
	}
	if a.Failed(-1) || a.Failed(10) {
		t.Error("Out of range items must not fail")
	}

	all := NewErrorPattern(rand.New(rand.NewSource(1)), 5, 1.0)
	if all.Count() != 5 {
		t.Errorf("p=1 expected 5 failures, got %d", all.Count())
	}
}

func TestRiseIn(t *testing.T) {
	if RiseIn(0, 0, 28, 0.6) != 28 {
		t.Error("Before start should be fully offset")
	}
	if RiseIn(1, 0, 28, 0.6) != 0 {
		t.Error("After settle should be zero")
	}
	mid := RiseIn(0.3, 0, 28, 0.6)
	if mid <= 0 || mid >= 28 {
		t.Errorf("Midway offset out of range: %f", mid)
	}
}
