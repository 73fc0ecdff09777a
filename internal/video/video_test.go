package video

import (
	"context"
	"errors"
	"image"
	"image/gif"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestEncoderUnavailable(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, err := LookupFFmpeg(); !errors.Is(err, ErrEncoderUnavailable) {
		t.Fatalf("Expected ErrEncoderUnavailable, got %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.mp4")
	if _, err := NewFFmpegSink(context.Background(), Options{Path: out, Width: 4, Height: 4, FPS: 10}); !errors.Is(err, ErrEncoderUnavailable) {
		t.Errorf("NewFFmpegSink must fail with ErrEncoderUnavailable, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No artifact expected without an encoder")
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	args := buildFFmpegArgs(Options{Path: "out/dlq.mp4", Width: 1280, Height: 720, FPS: 15, Codec: "h264_nvenc", Quality: 30})
	joined := strings.Join(args, " ")
	t.Logf("ffmpeg %s", joined)

	for _, want := range []string{
		"-f rawvideo", "-pixel_format rgba", "-video_size 1280x720", "-framerate 15",
		"-i -", "-an", "-c:v h264_nvenc", "-pix_fmt yuv420p", "-movflags +faststart", "-cq 30",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("Missing %q", want)
		}
	}
	if args[len(args)-1] != "out/dlq.mp4" {
		t.Errorf("Output path must be last, got %q", args[len(args)-1])
	}

	def := strings.Join(buildFFmpegArgs(Options{Path: "x.mp4", Width: 2, Height: 2, FPS: 1}), " ")
	if !strings.Contains(def, "-c:v libx264") || !strings.Contains(def, "-crf 23") {
		t.Errorf("Unexpected default args: %s", def)
	}
}

func TestTailBufferBounded(t *testing.T) {
	tb := newTailBuffer(10)
	tb.Write([]byte("hello "))
	tb.Write([]byte("world, this is long"))
	if got := tb.String(); got != "is is long" {
		t.Errorf("Tail must keep the last bytes, got %q", got)
	}
}

func TestEncodeErrorCarriesTail(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for ffmpeg")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\n" +
		"cat > /dev/null\n" +
		"i=0\n" +
		"while [ $i -lt 100 ]; do\n" +
		"  echo 'encoder diagnostics line that keeps going on and on' >&2\n" +
		"  i=$((i+1))\n" +
		"done\n" +
		"exit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	sink, err := NewFFmpegSink(context.Background(), Options{Path: filepath.Join(dir, "out.mp4"), Width: 4, Height: 4, FPS: 10})
	if err != nil {
		t.Fatalf("NewFFmpegSink: %v", err)
	}

	err = sink.WriteFrame(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err == nil {
		err = sink.Close()
	}

	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("Expected *EncodeError, got %v", err)
	}
	if len(encErr.Tail) == 0 || len(encErr.Tail) > TailSize {
		t.Errorf("Tail length %d, want 1..%d", len(encErr.Tail), TailSize)
	}
	if !strings.Contains(encErr.Tail, "encoder diagnostics") {
		t.Errorf("Tail lost the diagnostics: %q", encErr.Tail)
	}
	if sink.Close() == nil {
		t.Error("Repeated Close must keep reporting the failure")
	}
}

func TestFrameSizeMismatch(t *testing.T) {
	s := &FFmpegSink{opts: Options{Width: 4, Height: 4}}
	if err := s.WriteFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err == nil {
		t.Error("Expected size mismatch error")
	}
}

func TestGIFSinkDecimation(t *testing.T) {
	tests := []struct {
		src, dst, frames int
		want             int
	}{
		{15, 12, 30, 24},
		{15, 12, 15, 12},
		{20, 12, 40, 24},
		{12, 12, 7, 7},
		{10, 30, 5, 5}, // Повышать частоту нельзя
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "out.gif")
		sink := NewGIFSink(Options{Path: path, Width: 8, Height: 8, FPS: tt.dst, SourceFPS: tt.src})
		for i := 0; i < tt.frames; i++ {
			if err := sink.WriteFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
				t.Fatal(err)
			}
		}
		if sink.Frames() != tt.want {
			t.Errorf("%d→%d fps, %d frames: kept %d, want %d", tt.src, tt.dst, tt.frames, sink.Frames(), tt.want)
		}
		if est := EstimateGIFMemory(8, 8, tt.frames, tt.src, tt.dst); est != uint64(tt.want*64) {
			t.Errorf("Memory estimate %d, want %d", est, tt.want*64)
		}

		if err := sink.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		g, err := gif.DecodeAll(f)
		f.Close()
		if err != nil {
			t.Fatalf("DecodeAll: %v", err)
		}
		if len(g.Image) != tt.want {
			t.Errorf("File has %d frames, want %d", len(g.Image), tt.want)
		}
	}
}

func TestParseProbe(t *testing.T) {
	d, err := parseProbe(`{"streams":[],"format":{"filename":"dlq.mp4","duration":"18.700000"}}`)
	if err != nil || d != 18.7 {
		t.Errorf("parseProbe = %f, %v", d, err)
	}
	if _, err := parseProbe(`{"format":{}}`); err == nil {
		t.Error("Expected error for missing duration")
	}
	if _, err := parseProbe("not json"); err == nil {
		t.Error("Expected error for malformed output")
	}
}

func TestDefaultQuality(t *testing.T) {
	tests := map[string]int{"h264_videotoolbox": 75, "h264_nvenc": 28, "libx264": 23, "": 23}
	for codec, want := range tests {
		if got := DefaultQuality(codec); got != want {
			t.Errorf("DefaultQuality(%q) = %d, want %d", codec, got, want)
		}
	}
}

// fakeFFmpeg puts a shell script named ffmpeg first on PATH
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for ffmpeg")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}

func TestWriteFailureKeepsExitStatus(t *testing.T) {
	dir := fakeFFmpeg(t, "echo 'unknown encoder' >&2\nexit 3\n")

	opts := Options{Path: filepath.Join(dir, "out.mp4"), Width: 256, Height: 256, FPS: 10}
	sink, err := NewFFmpegSink(context.Background(), opts)
	if err != nil {
		t.Fatalf("NewFFmpegSink: %v", err)
	}

	// Кадр больше буфера pipe: запись упирается в завершившийся процесс
	frame := image.NewRGBA(image.Rect(0, 0, 256, 256))
	for i := 0; i < 10 && err == nil; i++ {
		err = sink.WriteFrame(frame)
	}
	if err == nil {
		err = sink.Close()
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("Expected exit status 3, got %v", err)
	}
	var encErr *EncodeError
	if !errors.As(err, &encErr) || !strings.Contains(encErr.Tail, "unknown encoder") {
		t.Errorf("Tail lost: %v", err)
	}
}

func TestFFmpegAbortRemovesFile(t *testing.T) {
	dir := fakeFFmpeg(t, "for a; do out=$a; done\n: > \"$out\"\ncat > /dev/null\n")

	out := filepath.Join(dir, "out.mp4")
	sink, err := NewFFmpegSink(context.Background(), Options{Path: out, Width: 4, Height: 4, FPS: 10})
	if err != nil {
		t.Fatalf("NewFFmpegSink: %v", err)
	}
	if err := sink.WriteFrame(image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	sink.Abort()

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("Aborted encode left a file")
	}
}

func TestGIFAbortWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	sink := NewGIFSink(Options{Path: path, Width: 8, Height: 8, FPS: 12, SourceFPS: 12})
	for i := 0; i < 5; i++ {
		if err := sink.WriteFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
			t.Fatal(err)
		}
	}
	sink.Abort()

	if err := sink.Close(); err != nil {
		t.Errorf("Close after Abort: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Aborted GIF must not be written")
	}
}
