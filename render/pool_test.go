package render

import "testing"

func TestFramebufferPoolReusesReleasedImage(t *testing.T) {
	var p FramebufferPool
	img1 := p.Acquire(100, 100)
	p.Release(img1)
	img2 := p.Acquire(100, 100)
	if img1 != img2 {
		t.Error("expected Acquire after Release to reuse the same image")
	}
}

func TestFramebufferPoolRoundsToPowerOfTwo(t *testing.T) {
	var p FramebufferPool
	img := p.Acquire(100, 60)
	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("bounds = %v, want 128x64", b)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {64, 64}, {65, 128}, {1000, 1024},
	}
	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
