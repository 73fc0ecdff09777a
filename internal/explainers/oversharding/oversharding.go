// Package oversharding renders "Oversharding: The Elasticsearch Mistake
// Everyone Makes (Once)" as a deck of six animated text slides.
package oversharding

import (
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/timeline"
)

const Name = "oversharding"

// Slide effects, stored in Scene.Mode
const (
	EffectGlow   = "glow"
	EffectBounce = "bounce"
	EffectPulse  = "pulse"
	EffectFlash  = "flash"
)

// Slide icons, stored in Scene.Kind
const (
	IconWarning   = "warning"
	IconRocket    = "rocket"
	IconBricks    = "bricks"
	IconFire      = "fire"
	IconStopwatch = "stopwatch"
	IconCheck     = "check"
)

// Slide is the text of one scene. The text color is the theme color named
// after the scene, the icon color is the one named after Scene.Kind.
type Slide struct {
	Text string
	Sub  string
}

// Slides maps scene names to their text
var Slides = map[string]Slide{
	"title":      {"OVERSHARDING", "The Elasticsearch mistake everyone makes (once)"},
	"myth":       {"“We need more shards to scale”", "More shards = more parallelism"},
	"math":       {"1 index × 20 shards × 30 days", "= 600 Lucene indexes"},
	"overhead":   {"More shards ≠ more throughput", "More shards = more overhead"},
	"management": {"Elasticsearch spends more time\nmanaging shards\nthan indexing data", ""},
	"target":     {"TARGET 20–50 GB PER SHARD", "Fewer shards win"},
}

type Explainer struct{}

func New() *Explainer {
	return &Explainer{}
}

func (e *Explainer) Name() string  { return Name }
func (e *Explainer) Title() string { return "Oversharding: The Elasticsearch Mistake Everyone Makes (Once)" }

func (e *Explainer) Defaults() config.Defaults {
	return config.Defaults{Width: 1280, Height: 720, FPS: 24, FallbackFPS: 12}
}

func (e *Explainer) Theme() config.Theme {
	return config.Theme{
		Colors: map[string]string{
			"bg":         "#ffffff",
			"sub":        "#555555",
			"copyright":  "#777777",
			"title":      "#0a3d62",
			"myth":       "#1e6091",
			"math":       "#b45309",
			"overhead":   "#c1121f",
			"management": "#6c5ce7",
			"target":     "#2a9d8f",

			// Иконки
			"warning":   "#f4b400",
			"rocket":    "#2e86c1",
			"bricks":    "#8d5524",
			"fire":      "#e63946",
			"stopwatch": "#6c5ce7",
			"check":     "#2e7d32",
		},
		Credit: "Copyright © Chaitanya Pothuraju",
	}
}

func (e *Explainer) Scenes() []timeline.Scene {
	return []timeline.Scene{
		{Name: "title", Duration: 4, Mode: EffectGlow, Kind: IconWarning},
		{Name: "myth", Duration: 4, Mode: EffectBounce, Kind: IconRocket},
		{Name: "math", Duration: 5, Mode: EffectPulse, Kind: IconBricks},
		{Name: "overhead", Duration: 5, Mode: EffectFlash, Kind: IconFire},
		{Name: "management", Duration: 5, Mode: EffectPulse, Kind: IconStopwatch},
		{Name: "target", Duration: 4, Mode: EffectGlow, Kind: IconCheck},
	}
}

func (e *Explainer) NewRenderer(cfg config.Config, theme config.Theme) (explainers.Renderer, error) {
	return newRenderer(cfg, theme), nil
}
