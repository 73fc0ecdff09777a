package canvas

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Style selects a face
type Style struct {
	Size float64
	Bold bool
	Mono bool
}

// Regular, Bold and Mono build styles of the given size
func Regular(size float64) Style { return Style{Size: size} }
func Bold(size float64) Style    { return Style{Size: size, Bold: true} }
func Mono(size float64) Style    { return Style{Size: size, Mono: true} }

var (
	parseOnce sync.Once
	ttfs      [3]*truetype.Font
	parseErr  error
)

// Parsed fonts are read-only and shared; faces are per-Fonts instance.
func parsedFonts() ([3]*truetype.Font, error) {
	parseOnce.Do(func() {
		for i, data := range [][]byte{goregular.TTF, gobold.TTF, gomono.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = err
				return
			}
			ttfs[i] = f
		}
	})
	return ttfs, parseErr
}

// Fonts caches faces for one rendering worker. Faces keep a glyph cache and
// must not be shared between goroutines.
type Fonts struct {
	faces map[Style]font.Face
}

// NewFonts creates an empty face cache
func NewFonts() *Fonts {
	return &Fonts{faces: make(map[Style]font.Face)}
}

// Face returns (and caches) the face for a style
func (f *Fonts) Face(s Style) font.Face {
	if face, ok := f.faces[s]; ok {
		return face
	}

	fonts, err := parsedFonts()
	if err != nil {
		// Встроенные шрифты Go всегда разбираются; сюда попадаем только при битой сборке
		panic(err)
	}

	src := fonts[0]
	switch {
	case s.Mono:
		src = fonts[2]
	case s.Bold:
		src = fonts[1]
	}

	face := truetype.NewFace(src, &truetype.Options{
		Size:    s.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	f.faces[s] = face
	return face
}

// Measure returns the advance width and line height of s
func (c *Canvas) Measure(s string, st Style) (float64, float64) {
	face := c.fonts.Face(st)
	w := font.MeasureString(face, s)
	m := face.Metrics()
	return fix(w), fix(m.Ascent + m.Descent)
}

// Text draws s with its top-left corner at (x, y)
func (c *Canvas) Text(x, y float64, s string, st Style, col color.Color) {
	face := c.fonts.Face(st)
	d := &font.Drawer{
		Dst:  c.Img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFix(x), Y: toFix(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// TextCentered draws s centered on (cx, cy)
func (c *Canvas) TextCentered(cx, cy float64, s string, st Style, col color.Color) {
	w, h := c.Measure(s, st)
	c.Text(cx-w/2, cy-h/2, s, st, col)
}

// TextHCenter draws s horizontally centered on the frame at top y
func (c *Canvas) TextHCenter(y float64, s string, st Style, col color.Color) {
	w, _ := c.Measure(s, st)
	c.Text((float64(c.W)-w)/2, y, s, st, col)
}

// TextRight draws s so that it ends at x
func (c *Canvas) TextRight(x, y float64, s string, st Style, col color.Color) {
	w, _ := c.Measure(s, st)
	c.Text(x-w, y, s, st, col)
}

// Wrap splits text into lines no wider than maxW. Explicit newlines are kept.
// A single word wider than maxW gets its own line.
func (c *Canvas) Wrap(text string, st Style, maxW float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			trial := cur + " " + w
			if tw, _ := c.Measure(trial, st); tw <= maxW {
				cur = trial
			} else {
				lines = append(lines, cur)
				cur = w
			}
		}
		lines = append(lines, cur)
	}
	return lines
}

// TextBlock draws wrapped lines starting at (x, y) and returns the y below the last line.
// maxLines <= 0 means no limit.
func (c *Canvas) TextBlock(x, y float64, text string, st Style, col color.Color, maxW, spacing float64, maxLines int) float64 {
	lines := c.Wrap(text, st, maxW)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for _, ln := range lines {
		c.Text(x, y, ln, st, col)
		_, h := c.Measure(ln, st)
		y += h + spacing
	}
	return y
}

func fix(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFix(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
