package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strings"
)

// ErrEncoderUnavailable means the ffmpeg binary is not on PATH
var ErrEncoderUnavailable = errors.New("ffmpeg не найден в PATH")

// EncodeError is a failed encoder run with the tail of its diagnostics
type EncodeError struct {
	Err  error
	Tail string
}

func (e *EncodeError) Error() string {
	if e.Tail == "" {
		return fmt.Sprintf("ошибка кодирования: %v", e.Err)
	}
	return fmt.Sprintf("ошибка кодирования: %v\n%s", e.Err, e.Tail)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// FrameSink consumes rendered frames in ascending order. Close finalizes
// the file; Abort discards it after a failed run and leaves nothing at Path.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
	Abort()
	Path() string
}

// Options describe one output file
type Options struct {
	Path      string
	Width     int
	Height    int
	FPS       int // Частота выходного файла
	SourceFPS int // Частота, с которой приходят кадры; 0 = FPS
	Codec     string
	Quality   int
}

// VideoEncoder opens sinks of one output format
type VideoEncoder interface {
	Available() error
	Open(ctx context.Context, opts Options) (FrameSink, error)
	Ext() string
}

// LookupFFmpeg returns the path of the ffmpeg binary
func LookupFFmpeg() (string, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", ErrEncoderUnavailable
	}
	return path, nil
}

// BestH264Encoder picks a hardware H.264 encoder when ffmpeg has one
func BestH264Encoder(ctx context.Context) string {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)
	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality returns a sensible quality value for the encoder
func DefaultQuality(codec string) int {
	switch codec {
	case "h264_videotoolbox":
		return 75 // Битрейт = Q*100 кбит/с
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}

// qualityArgs maps the quality value onto encoder-specific flags
func qualityArgs(codec string, quality int) []string {
	if quality <= 0 {
		quality = DefaultQuality(codec)
	}
	switch codec {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую. Используем битрейт.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}
