package catalog

import (
	"testing"

	"github.com/ivlev/scene2video/internal/explainers"
)

func TestNew(t *testing.T) {
	for _, name := range Names() {
		e, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if e.Name() != name {
			t.Errorf("New(%q) returned %q", name, e.Name())
		}

		tl, err := explainers.Timeline(e)
		if err != nil {
			t.Fatalf("%s: timeline: %v", name, err)
		}
		d := e.Defaults()
		t.Logf("%s: %.1fs, %d frames at %d fps", name, tl.Total(), tl.FrameCount(d.FPS), d.FPS)
		if tl.FrameCount(d.FPS) == 0 {
			t.Errorf("%s: empty timeline", name)
		}
	}

	if _, err := New("kafka"); err == nil {
		t.Error("Expected error for unknown explainer")
	}
}

func TestSelect(t *testing.T) {
	all, err := Select(All)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(Names()) {
		t.Errorf("Select(all) returned %d explainers", len(all))
	}

	one, err := Select("dlq")
	if err != nil || len(one) != 1 || one[0].Name() != "dlq" {
		t.Errorf("Select(dlq) = %v, %v", one, err)
	}
}
