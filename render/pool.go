package render

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// FramebufferPool manages reusable offscreen *ebiten.Image targets keyed by
// power-of-two dimensions, so acquiring a framebuffer at a size the pool has
// already seen is an allocation-free map lookup.
type FramebufferPool struct {
	buckets map[uint64][]*ebiten.Image
}

func poolKey(w, h int) uint64 { return uint64(w)<<32 | uint64(h) }

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Requested dimensions are rounded up to the next power of two to keep the
// bucket count small across resizes.
func (p *FramebufferPool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}
	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns img to the pool. The image is cleared on next Acquire,
// not here, to avoid redundant GPU work if released then immediately
// reacquired.
func (p *FramebufferPool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// Destroy deallocates every pooled image. Called from Context.Destroy.
func (p *FramebufferPool) Destroy() {
	for _, stack := range p.buckets {
		for _, img := range stack {
			img.Deallocate()
		}
	}
	p.buckets = nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}
