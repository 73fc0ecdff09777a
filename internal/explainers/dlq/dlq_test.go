package dlq

import (
	"bytes"
	"image"
	"reflect"
	"testing"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/interp"
	"github.com/ivlev/scene2video/internal/timeline"
)

func runScene(mode string, params map[string]float64) timeline.Scene {
	return timeline.Scene{Name: mode, Duration: 7.8, Mode: mode, Params: params}
}

func TestDeadLettersAppearAfterResult(t *testing.T) {
	m := Model{Errors: interp.ErrorPattern{false, true, false}, Messages: 3, MaxRows: MaxRows}
	s := runScene(ModeDLQ, nil)

	// Сообщение #2 стартует в 0.75, результат виден до 0.75+0.95+0.45
	settled := DefaultSpacing + DefaultProcessing + DefaultResult

	before := m.Resolve(s, settled-0.05)
	if len(before.DLQ) != 0 {
		t.Errorf("DLQ before settle = %v", before.DLQ)
	}
	if got := m.Phase(Schedule(s), 2, settled-0.05); got != interp.PhaseError {
		t.Errorf("Message 2 phase = %v, want error", got)
	}

	after := m.Resolve(s, settled+0.01)
	if !reflect.DeepEqual(after.DLQ, []int{2}) {
		t.Errorf("DLQ after settle = %v, want [2]", after.DLQ)
	}
	if after.Lost != 0 {
		t.Errorf("Nothing is lost with a DLQ, got %d", after.Lost)
	}

	lost := m.Resolve(runScene(ModeNoDLQ, nil), settled+0.01)
	if lost.Lost != 1 || len(lost.DLQ) != 0 {
		t.Errorf("Without DLQ: lost=%d dlq=%v", lost.Lost, lost.DLQ)
	}
}

func TestPipelineShowsLastRows(t *testing.T) {
	m := Model{Errors: make(interp.ErrorPattern, 10), Messages: 10, MaxRows: 6}
	s := runScene(ModeDLQ, map[string]float64{"spacing": 0.1, "processing": 2, "result": 1})

	st := m.Resolve(s, 1.0)
	if len(st.Pipeline) != 6 {
		t.Fatalf("Expected 6 visible rows, got %d", len(st.Pipeline))
	}
	if st.Pipeline[0].ID != 5 || st.Pipeline[5].ID != 10 {
		t.Errorf("Expected messages 5..10, got %v", st.Pipeline)
	}
	for _, msg := range st.Pipeline {
		if !msg.Phase.Active() {
			t.Errorf("Inactive message %d in list", msg.ID)
		}
	}
}

func TestMessagePhasesAreMonotonic(t *testing.T) {
	m := NewModel(7)
	sch := Schedule(runScene(ModeDLQ, nil))

	for id := 1; id <= Messages; id++ {
		prev := interp.PhasePending
		for step := 0; step <= 100; step++ {
			ph := m.Phase(sch, id, float64(step)/10)
			if ph.Rank() < prev.Rank() {
				t.Fatalf("Message %d went from %v to %v", id, prev, ph)
			}
			prev = ph
		}
		if prev != interp.PhaseDone {
			t.Errorf("Message %d did not finish: %v", id, prev)
		}
	}
}

func TestIntroFadesIn(t *testing.T) {
	m := NewModel(7)
	intro := timeline.Scene{Name: "intro", Duration: 0.9, Mode: ModeIntro}

	if a := m.Resolve(intro, 0).HeaderAlpha; a != 0 {
		t.Errorf("Alpha at start = %f", a)
	}
	if a := m.Resolve(intro, 0.45).HeaderAlpha; a < 0.49 || a > 0.51 {
		t.Errorf("Alpha at half = %f", a)
	}
	if a := m.Resolve(timeline.Scene{Mode: ModeOutro, Duration: 1}, 0).HeaderAlpha; a != 1 {
		t.Errorf("Alpha outside intro = %f", a)
	}
}

func TestSeededPatternIsStable(t *testing.T) {
	a, b := NewModel(7), NewModel(7)
	if !reflect.DeepEqual(a.Errors, b.Errors) {
		t.Errorf("Same seed produced different patterns: %v vs %v", a.Errors, b.Errors)
	}
	t.Logf("Seed 7 fails %d of %d messages", a.Errors.Count(), len(a.Errors))
}

func TestRenderIsDeterministic(t *testing.T) {
	e := New()
	cfg := e.Defaults().Apply(config.Config{Seed: 7})
	theme := e.Theme()
	theme.CreditURL = "https://example.com/dlq"

	r, err := e.NewRenderer(cfg, theme)
	if err != nil {
		t.Fatal(err)
	}
	tl := timeline.MustNew(e.Scenes()...)

	render := func(frame int) []byte {
		img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
		pos, ok := tl.Frame(frame, cfg.FPS)
		if !ok {
			t.Fatalf("Frame %d did not resolve", frame)
		}
		if err := r.Render(canvas.New(img, nil), pos); err != nil {
			t.Fatalf("Render frame %d: %v", frame, err)
		}
		return img.Pix
	}

	// По кадру из каждой сцены плюс последний
	for _, frame := range []int{5, 60, 135, 200, tl.FrameCount(cfg.FPS) - 1} {
		if !bytes.Equal(render(frame), render(frame)) {
			t.Errorf("Frame %d differs between renders", frame)
		}
	}
}
