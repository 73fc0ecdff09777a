package explainers

import (
	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/timeline"
)

// Renderer draws single frames of an explainer. A Renderer is built once per
// run and is read-only afterwards, so render workers share it. All mutable
// drawing state lives in the canvas handed to Render.
type Renderer interface {
	Render(c *canvas.Canvas, pos timeline.Position) error
}

// Explainer is one animated video: its scenes, look and renderer
type Explainer interface {
	Name() string
	Title() string
	Defaults() config.Defaults
	Theme() config.Theme
	Scenes() []timeline.Scene
	NewRenderer(cfg config.Config, theme config.Theme) (Renderer, error)
}

// Timeline builds the explainer's declared timeline
func Timeline(e Explainer) (*timeline.Timeline, error) {
	return timeline.New(e.Scenes()...)
}

// RendererFunc adapts a plain function to Renderer
type RendererFunc func(c *canvas.Canvas, pos timeline.Position) error

func (f RendererFunc) Render(c *canvas.Canvas, pos timeline.Position) error {
	return f(c, pos)
}
