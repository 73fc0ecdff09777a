package system

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output", "nested")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("Directory not created: %v", err)
	}
	// Повторный вызов не ошибка
	if err := EnsureDir(dir); err != nil {
		t.Errorf("Second EnsureDir: %v", err)
	}
}

func TestClampWorkers(t *testing.T) {
	tests := []struct {
		workers, frames, want int
	}{
		{4, 100, 4},
		{8, 3, 3},
		{1, 0, 1},
		{-2, 1, 1},
	}
	for _, tt := range tests {
		if got := ClampWorkers(tt.workers, tt.frames); got != tt.want {
			t.Errorf("ClampWorkers(%d, %d) = %d, want %d", tt.workers, tt.frames, got, tt.want)
		}
	}
	if DefaultWorkers() < 1 {
		t.Error("DefaultWorkers must be positive")
	}
}

func TestCheckMemory(t *testing.T) {
	if err := checkMemory(100, 1000); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := checkMemory(900, 1000); !errors.Is(err, ErrInsufficientMemory) {
		t.Errorf("Expected ErrInsufficientMemory, got %v", err)
	}
	if err := CheckMemory(1); err != nil {
		t.Errorf("One byte must always fit: %v", err)
	}
}

func TestImagePool(t *testing.T) {
	rect := image.Rect(0, 0, 16, 9)
	p := NewImagePool(rect)

	img := p.Get()
	if img.Rect != rect {
		t.Fatalf("Unexpected buffer size %v", img.Rect)
	}
	p.Put(img)
	p.Put(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	p.Put(nil)

	for i := 0; i < 3; i++ {
		if got := p.Get(); got.Rect != rect {
			t.Errorf("Pool returned a foreign buffer %v", got.Rect)
		}
	}
	t.Logf("allocated %d buffers", p.Allocated())
	if p.Allocated() < 1 {
		t.Error("Allocated must count new buffers")
	}
}
