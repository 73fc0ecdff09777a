package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// Canvas wraps an RGBA frame together with the font faces of the worker
// that renders it. A Canvas is not safe for concurrent use; frames rendered
// in parallel each get their own.
type Canvas struct {
	Img   *image.RGBA
	W, H  int
	fonts *Fonts
}

// New creates a canvas over img. fonts may be nil, then a private set is created.
func New(img *image.RGBA, fonts *Fonts) *Canvas {
	if fonts == nil {
		fonts = NewFonts()
	}
	b := img.Bounds()
	return &Canvas{Img: img, W: b.Dx(), H: b.Dy(), fonts: fonts}
}

// Fill paints the whole frame with a solid color
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Wash composites a translucent color over the whole frame
func (c *Canvas) Wash(col color.Color) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// Paste copies a prepared background over the frame
func (c *Canvas) Paste(bg *image.RGBA) {
	draw.Draw(c.Img, c.Img.Bounds(), bg, bg.Bounds().Min, draw.Src)
}

// Alpha returns col with a straight (non-premultiplied) alpha
func Alpha(col color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: col.R, G: col.G, B: col.B, A: a}
}

// Scale multiplies the RGB channels, used for pulsing arrows
func Scale(col color.RGBA, k float64) color.RGBA {
	ch := func(v uint8) uint8 {
		f := float64(v) * k
		if f < 0 {
			return 0
		}
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return color.RGBA{R: ch(col.R), G: ch(col.G), B: ch(col.B), A: col.A}
}

// Blend interpolates two colors in RGB space
func Blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

// VerticalGradient builds a top→bottom gradient image
func VerticalGradient(w, h int, top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		row := Blend(top, bottom, t)
		off := y * img.Stride
		for x := 0; x < w; x++ {
			img.Pix[off+x*4+0] = row.R
			img.Pix[off+x*4+1] = row.G
			img.Pix[off+x*4+2] = row.B
			img.Pix[off+x*4+3] = 255
		}
	}
	return img
}

// DiagonalGradient builds a three-stop diagonal gradient on a small canvas
// and upscales it bilinearly, which is much cheaper than per-pixel at full size.
func DiagonalGradient(w, h int, c1, c2, c3 color.RGBA) *image.RGBA {
	sw, sh := w/4, h/4
	if sw < 2 || sh < 2 {
		sw, sh = w, h
	}

	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			t := float64(x+y) / float64(sw+sh)
			var col color.RGBA
			if t < 0.5 {
				col = Blend(c1, c2, t/0.5)
			} else {
				col = Blend(c2, c3, (t-0.5)/0.5)
			}
			small.SetRGBA(x, y, col)
		}
	}

	if sw == w && sh == h {
		return small
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(out, out.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return out
}
