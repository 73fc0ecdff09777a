package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Theme holds the presentation choices of an explainer: palette and credits
type Theme struct {
	Colors    map[string]string `yaml:"colors"` // name -> "#rrggbb"
	Credit    string            `yaml:"credit"`
	CreditURL string            `yaml:"credit_url"` // Если задан, в финальной сцене рисуется QR-код
}

// Color returns the named color. Unknown or malformed names render magenta so
// they stand out in a preview instead of failing a long render.
func (t Theme) Color(name string) color.RGBA {
	c, err := t.Colorful(name)
	if err != nil {
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Colorful returns the named color for blending
func (t Theme) Colorful(name string) (colorful.Color, error) {
	hex, ok := t.Colors[name]
	if !ok {
		return colorful.Color{}, fmt.Errorf("color %q is not defined", name)
	}
	return colorful.Hex(hex)
}

// Merge returns a copy of t with values from o taking precedence
func (t Theme) Merge(o Theme) Theme {
	out := Theme{
		Colors:    make(map[string]string, len(t.Colors)+len(o.Colors)),
		Credit:    t.Credit,
		CreditURL: t.CreditURL,
	}
	for k, v := range t.Colors {
		out.Colors[k] = v
	}
	for k, v := range o.Colors {
		out.Colors[k] = v
	}
	if o.Credit != "" {
		out.Credit = o.Credit
	}
	if o.CreditURL != "" {
		out.CreditURL = o.CreditURL
	}
	return out
}

// Validate checks that every color parses
func (t Theme) Validate() error {
	for name, hex := range t.Colors {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("color %q: %w", name, err)
		}
	}
	return nil
}

// ReadTheme reads a theme override from a YAML file
func ReadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}

	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("%s: %w", path, err)
	}

	return t, t.Validate()
}
