// Package indexdesign renders "Designing Elasticsearch Indexes for High Write
// Throughput": a healthy pipeline, the write-pressure collapse, the wrong
// reaction, the four index settings to fix and the optimized setup.
package indexdesign

import (
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/timeline"
)

const Name = "index-design"

type Explainer struct{}

func New() *Explainer {
	return &Explainer{}
}

func (e *Explainer) Name() string  { return Name }
func (e *Explainer) Title() string { return "Designing Elasticsearch Indexes for High Write Throughput" }

func (e *Explainer) Defaults() config.Defaults {
	return config.Defaults{Width: 1280, Height: 720, FPS: 30, FallbackFPS: 12}
}

func (e *Explainer) Theme() config.Theme {
	return config.Theme{
		Colors: map[string]string{
			"bg":                 "#ffffff",
			"panel":              "#f5f5f5",
			"panel_alt":          "#ebebeb",
			"outline":            "#b4b4b4",
			"text":               "#0c0c0c",
			"muted":              "#505050",
			"green":              "#00cfad",
			"red":                "#ff5866",
			"amber":              "#ffbb48",
			"blue":               "#78b4ff",
			"badge":              "#f8f8f8",
			"meter_track":        "#e6e6e6",
			"calm_arrow":         "#5a6e96",
			"icon_bg":            "#0a1020",
			"icon_track":         "#080e1c",
			"icon_track_outline": "#283656",
		},
		Credit: "video credits: Chaitanya Pothuraju",
	}
}

func (e *Explainer) Scenes() []timeline.Scene {
	return []timeline.Scene{
		{Name: "setup", Duration: 4, Mode: ModeSetup},
		{Name: "traffic_growth", Duration: 5, Mode: ModeTraffic,
			Params: map[string]float64{"popups_at": 2}},
		{Name: "misconception", Duration: 4, Mode: ModeMisconception},
		{Name: "factors", Duration: 10, Mode: ModeFactors,
			Params: map[string]float64{"per_factor": 2.5}},
		{Name: "optimized", Duration: 5, Mode: ModeOptimized},
	}
}

func (e *Explainer) NewRenderer(cfg config.Config, theme config.Theme) (explainers.Renderer, error) {
	return newRenderer(cfg, theme), nil
}
