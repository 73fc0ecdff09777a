package video

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// GIFEncoder writes the fallback animation
type GIFEncoder struct{}

func (e *GIFEncoder) Ext() string      { return ".gif" }
func (e *GIFEncoder) Available() error { return nil }

func (e *GIFEncoder) Open(_ context.Context, opts Options) (FrameSink, error) {
	return NewGIFSink(opts), nil
}

// GIFSink keeps a decimated, quantized copy of the frames in memory and
// encodes the whole animation on Close.
type GIFSink struct {
	opts   Options
	anim   gif.GIF
	index  int // Номер входящего кадра
	closed bool
}

// NewGIFSink creates a sink that samples frames from opts.SourceFPS down to opts.FPS
func NewGIFSink(opts Options) *GIFSink {
	if opts.SourceFPS <= 0 {
		opts.SourceFPS = opts.FPS
	}
	if opts.FPS <= 0 || opts.FPS > opts.SourceFPS {
		opts.FPS = opts.SourceFPS
	}
	return &GIFSink{opts: opts, anim: gif.GIF{LoopCount: 0}}
}

func (s *GIFSink) Path() string { return s.opts.Path }

// Frames returns the number of frames kept so far
func (s *GIFSink) Frames() int { return len(s.anim.Image) }

// keep reports whether source frame i starts a new output frame
func (s *GIFSink) keep(i int) bool {
	if i == 0 {
		return true
	}
	return i*s.opts.FPS/s.opts.SourceFPS != (i-1)*s.opts.FPS/s.opts.SourceFPS
}

func (s *GIFSink) WriteFrame(img *image.RGBA) error {
	if s.closed {
		return fmt.Errorf("запись в закрытый GIF")
	}
	i := s.index
	s.index++
	if !s.keep(i) {
		return nil
	}

	b := img.Bounds()
	pal := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(pal, pal.Bounds(), img, b.Min)

	s.anim.Image = append(s.anim.Image, pal)
	s.anim.Delay = append(s.anim.Delay, 100/s.opts.FPS)
	return nil
}

// Abort drops the collected frames without writing a file
func (s *GIFSink) Abort() {
	s.closed = true
	s.anim = gif.GIF{}
}

// Close encodes the animation to Path
func (s *GIFSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	f, err := os.Create(s.opts.Path)
	if err != nil {
		return fmt.Errorf("создание GIF: %w", err)
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		os.Remove(s.opts.Path)
		return fmt.Errorf("кодирование GIF: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.opts.Path)
		return err
	}
	return nil
}

// EstimateGIFMemory returns the bytes held by a GIFSink for the given run
func EstimateGIFMemory(width, height, frames, srcFPS, dstFPS int) uint64 {
	if srcFPS <= 0 {
		return 0
	}
	if dstFPS <= 0 || dstFPS > srcFPS {
		dstFPS = srcFPS
	}
	kept := (frames*dstFPS + srcFPS - 1) / srcFPS
	return uint64(kept) * uint64(width) * uint64(height)
}
