package video

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TailSize bounds the encoder diagnostics kept for EncodeError
const TailSize = 2000

// FFmpegEncoder streams raw RGBA frames into an ffmpeg process
type FFmpegEncoder struct{}

func (e *FFmpegEncoder) Ext() string { return ".mp4" }

func (e *FFmpegEncoder) Available() error {
	_, err := LookupFFmpeg()
	return err
}

func (e *FFmpegEncoder) Open(ctx context.Context, opts Options) (FrameSink, error) {
	return NewFFmpegSink(ctx, opts)
}

// FFmpegSink writes frames to ffmpeg's stdin as they arrive
type FFmpegSink struct {
	opts   Options
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	tail   *tailBuffer
	drain  errgroup.Group
	closed bool
	err    error
}

// NewFFmpegSink starts ffmpeg for opts
func NewFFmpegSink(ctx context.Context, opts Options) (*FFmpegSink, error) {
	bin, err := LookupFFmpeg()
	if err != nil {
		return nil, err
	}

	s := &FFmpegSink{opts: opts, tail: newTailBuffer(TailSize)}
	s.cmd = exec.CommandContext(ctx, bin, buildFFmpegArgs(opts)...)

	s.stdin, err = s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}
	stderr, err := s.cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe error: %w", err)
	}

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	// Вычитываем вывод параллельно с записью кадров, иначе ffmpeg упрётся в полный pipe
	s.drain.Go(func() error {
		_, err := io.Copy(s.tail, stdout)
		return err
	})
	s.drain.Go(func() error {
		_, err := io.Copy(s.tail, stderr)
		return err
	})

	return s, nil
}

func buildFFmpegArgs(opts Options) []string {
	codec := opts.Codec
	if codec == "" {
		codec = "libx264"
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-framerate", fmt.Sprintf("%d", opts.FPS),
		"-i", "-",
		"-an",
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
	}
	args = append(args, qualityArgs(codec, opts.Quality)...)
	return append(args, opts.Path)
}

func (s *FFmpegSink) Path() string { return s.opts.Path }

// WriteFrame copies the frame into the pipe; img can be reused once it returns
func (s *FFmpegSink) WriteFrame(img *image.RGBA) error {
	if s.closed {
		return s.err
	}
	if b := img.Bounds(); b.Dx() != s.opts.Width || b.Dy() != s.opts.Height {
		return fmt.Errorf("размер кадра %dx%d, ожидается %dx%d", b.Dx(), b.Dy(), s.opts.Width, s.opts.Height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		// Обычно это значит, что ffmpeg уже завершился: ждём его и забираем диагностику
		s.finish(err)
		return s.err
	}
	return nil
}

// Abort stops ffmpeg and removes the unfinished file
func (s *FFmpegSink) Abort() {
	if !s.closed {
		s.cmd.Process.Kill()
		s.finish(nil)
	}
	os.Remove(s.opts.Path)
}

// Close flushes the stream and waits for ffmpeg to exit
func (s *FFmpegSink) Close() error {
	if !s.closed {
		s.finish(nil)
	}
	return s.err
}

func (s *FFmpegSink) finish(cause error) {
	s.closed = true
	s.stdin.Close()
	drainErr := s.drain.Wait()
	waitErr := s.cmd.Wait()

	// Код выхода ffmpeg информативнее, чем EPIPE при записи
	switch {
	case waitErr != nil:
		s.err = &EncodeError{Err: waitErr, Tail: s.tail.String()}
	case cause != nil:
		s.err = &EncodeError{Err: cause, Tail: s.tail.String()}
	case drainErr != nil:
		s.err = fmt.Errorf("чтение вывода ffmpeg: %w", drainErr)
	}
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	// Непрерывный буфер уходит одной записью
	if img.Stride == rowLen {
		start := img.PixOffset(b.Min.X, b.Min.Y)
		_, err := w.Write(img.Pix[start : start+rowLen*b.Dy()])
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		if _, err := w.Write(img.Pix[off : off+rowLen]); err != nil {
			return err
		}
	}
	return nil
}

// tailBuffer keeps the last n bytes written to it
type tailBuffer struct {
	mu  sync.Mutex
	n   int
	buf []byte
}

func newTailBuffer(n int) *tailBuffer {
	return &tailBuffer{n: n}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.n; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
