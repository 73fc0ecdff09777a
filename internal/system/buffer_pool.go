package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool reuses frame buffers of one size between render workers.
// Buffers come back dirty: every renderer paints the full frame first.
type ImagePool struct {
	rect  image.Rectangle
	pool  sync.Pool
	fresh atomic.Int64
}

// NewImagePool creates a pool of rect-sized RGBA buffers
func NewImagePool(rect image.Rectangle) *ImagePool {
	p := &ImagePool{rect: rect}
	p.pool.New = func() any {
		p.fresh.Add(1)
		return image.NewRGBA(p.rect)
	}
	return p
}

// Get returns a buffer from the pool or allocates one
func (p *ImagePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

// Put hands a buffer back. Buffers of another size are dropped.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}

// Allocated returns how many buffers the pool had to create
func (p *ImagePool) Allocated() int64 {
	return p.fresh.Load()
}
