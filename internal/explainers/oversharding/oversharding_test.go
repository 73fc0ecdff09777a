package oversharding

import (
	"bytes"
	"image"
	"testing"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/timeline"
)

func TestEverySceneHasSlide(t *testing.T) {
	e := New()
	theme := e.Theme()
	for _, s := range e.Scenes() {
		if _, ok := Slides[s.Name]; !ok {
			t.Errorf("Scene %q has no slide text", s.Name)
		}
		if _, ok := theme.Colors[s.Name]; !ok {
			t.Errorf("Scene %q has no text color", s.Name)
		}
		if _, ok := theme.Colors[s.Kind]; !ok {
			t.Errorf("Icon %q has no color", s.Kind)
		}
	}

	tl := timeline.MustNew(e.Scenes()...)
	if tl.Total() != 27 || tl.FrameCount(24) != 648 {
		t.Errorf("Total %f, frames %d", tl.Total(), tl.FrameCount(24))
	}
}

func TestRiseIn(t *testing.T) {
	s := timeline.Scene{Name: "myth", Duration: 4, Mode: EffectBounce, Kind: IconRocket}

	tests := []struct {
		t          float64
		mainOffset float64
		subVisible bool
	}{
		{0, 36, false},
		{0.1, -1, false},
		{0.2, -1, true},
		{0.7, 0, true},
		{3, 0, true},
	}
	for _, tt := range tests {
		st := Resolve(s, tt.t)
		if st.SubVisible != tt.subVisible {
			t.Errorf("t=%.1f: sub visible %v, want %v", tt.t, st.SubVisible, tt.subVisible)
		}
		if tt.mainOffset >= 0 && st.MainOffset != tt.mainOffset {
			t.Errorf("t=%.1f: main offset %f, want %f", tt.t, st.MainOffset, tt.mainOffset)
		}
		if tt.mainOffset < 0 && (st.MainOffset <= 0 || st.MainOffset >= 36) {
			t.Errorf("t=%.1f: main text must be moving, offset %f", tt.t, st.MainOffset)
		}
	}

	// Подзаголовок стартует в 0.2 и ещё 0.2 стоит на месте
	if st := Resolve(s, 0.3); st.SubOffset != 26 {
		t.Errorf("Sub offset at 0.3 = %f, want 26", st.SubOffset)
	}
	if st := Resolve(s, 1.2); st.SubOffset != 0 {
		t.Errorf("Sub offset at 1.2 = %f, want 0", st.SubOffset)
	}
}

func TestEffects(t *testing.T) {
	tests := []struct {
		mode string
		t    float64
		wash float64
	}{
		{EffectFlash, 0, 0},
		{EffectFlash, 0.1, flashAlpha},
		{EffectFlash, 0.3, 0},
		{EffectGlow, 2, glowAlpha},
		{EffectPulse, 2, 0},
	}
	for _, tt := range tests {
		st := Resolve(timeline.Scene{Name: "overhead", Duration: 5, Mode: tt.mode}, tt.t)
		if st.Wash != tt.wash {
			t.Errorf("%s at %.2f: wash %f, want %f", tt.mode, tt.t, st.Wash, tt.wash)
		}
	}

	// Пустой подзаголовок не показывается
	if st := Resolve(timeline.Scene{Name: "management", Duration: 5, Mode: EffectPulse}, 3); st.SubVisible {
		t.Error("Slide without subtext must not show it")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	e := New()
	cfg := e.Defaults().Apply(config.Config{})
	r, err := e.NewRenderer(cfg, e.Theme())
	if err != nil {
		t.Fatal(err)
	}
	tl := timeline.MustNew(e.Scenes()...)

	render := func(frame int) []byte {
		img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
		pos, _ := tl.Frame(frame, cfg.FPS)
		if err := r.Render(canvas.New(img, nil), pos); err != nil {
			t.Fatalf("Render frame %d: %v", frame, err)
		}
		return img.Pix
	}

	// По одному кадру на слайд
	for _, frame := range []int{5, 110, 250, 315, 400, 600} {
		if !bytes.Equal(render(frame), render(frame)) {
			t.Errorf("Frame %d differs between renders", frame)
		}
	}
}
