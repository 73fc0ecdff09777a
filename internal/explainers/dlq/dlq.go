// Package dlq renders "Dead Letter Queues Are Not Optional": the same ten
// messages run through a pipeline with a DLQ and then without one.
package dlq

import (
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/timeline"
)

// Name is the CLI name of the explainer
const Name = "dlq"

// Explainer describes the DLQ video
type Explainer struct{}

// New creates the explainer
func New() *Explainer {
	return &Explainer{}
}

func (e *Explainer) Name() string  { return Name }
func (e *Explainer) Title() string { return "Dead Letter Queues Are Not Optional" }

func (e *Explainer) Defaults() config.Defaults {
	return config.Defaults{Width: 1280, Height: 720, FPS: 15, FallbackFPS: 12}
}

func (e *Explainer) Theme() config.Theme {
	return config.Theme{
		Colors: map[string]string{
			"bg_edge":     "#0f172a",
			"bg_mid":      "#3c145a",
			"title":       "#ffffff",
			"accent":      "#f59e0b",
			"subtitle":    "#d1d5db",
			"credit":      "#e5e7eb",
			"blue":        "#60a5fa",
			"blue_fill":   "#3b82f6",
			"blue_text":   "#bfdbfe",
			"green":       "#22c55e",
			"green_light": "#4ade80",
			"green_text":  "#bbf7d0",
			"red":         "#ef4444",
			"red_light":   "#f87171",
			"red_soft":    "#fca5a5",
			"red_text":    "#fecaca",
			"gray":        "#9ca3af",
			"amber_light": "#fde68a",
			"outro_quote": "#e5e7eb",
		},
		Credit: "Chaitanya Pothuraju",
	}
}

// Scenes declares the timeline. Run scenes carry the message lifecycle
// thresholds as params so they can be tuned from a timeline file.
func (e *Explainer) Scenes() []timeline.Scene {
	run := func() map[string]float64 {
		return map[string]float64{
			"spacing":    DefaultSpacing,
			"processing": DefaultProcessing,
			"result":     DefaultResult,
		}
	}
	return []timeline.Scene{
		{Name: "intro", Duration: 0.9, Mode: ModeIntro},
		{Name: "dlq_run", Duration: 7.8, Mode: ModeDLQ, Params: run()},
		{Name: "transition", Duration: 0.6, Mode: ModeTransition},
		{Name: "no_dlq_run", Duration: 7.8, Mode: ModeNoDLQ, Params: run()},
		{Name: "outro", Duration: 1.6, Mode: ModeOutro},
	}
}

func (e *Explainer) NewRenderer(cfg config.Config, theme config.Theme) (explainers.Renderer, error) {
	return NewRenderer(cfg, theme), nil
}
