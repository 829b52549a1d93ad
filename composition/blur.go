package composition

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// blurRadius is the fixed Kawase radius used for the TRANSITION program's
// blur transition type. transitionShaderSrc documents this pre-pass as the
// Go-level responsibility of the composition package.
const blurRadius = 24

// kawaseBlur renders an iterative downscale/upscale blur from src into dst,
// adapted from BlurFilter.Apply (filter.go): bilinear filtering during the
// scaled DrawImage passes does the blurring, no Kage shader needed. Unlike
// that version this allocates its temporary images from the Context's
// framebuffer pool rather than caching them on a long-lived struct, since
// the transition pre-pass runs at most once per frame rather than
// continuously on a persistent filter node.
func (p *Pipeline) kawaseBlur(src, dst *ebiten.Image) {
	passes := int(math.Ceil(math.Log2(float64(blurRadius))))
	if passes < 1 {
		passes = 1
	}

	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	temps := make([]*ebiten.Image, passes)
	defer func() {
		for _, t := range temps {
			if t != nil {
				p.ctx.ReleaseFramebuffer(t)
			}
		}
	}()

	current := src
	for i := 0; i < passes; i++ {
		w = maxInt(w/2, 1)
		h = maxInt(h/2, 1)
		temps[i] = p.ctx.AcquireFramebuffer(w, h)
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(float64(w)/float64(current.Bounds().Dx()), float64(h)/float64(current.Bounds().Dy()))
		temps[i].DrawImage(current, op)
		current = temps[i]
	}

	for i := passes - 2; i >= 0; i-- {
		temps[i].Clear()
		tw, th := temps[i].Bounds().Dx(), temps[i].Bounds().Dy()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(float64(tw)/float64(current.Bounds().Dx()), float64(th)/float64(current.Bounds().Dy()))
		temps[i].DrawImage(current, op)
		current = temps[i]
	}

	dw, dh := dst.Bounds().Dx(), dst.Bounds().Dy()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(dw)/float64(current.Bounds().Dx()), float64(dh)/float64(current.Bounds().Dy()))
	dst.DrawImage(current, op)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
