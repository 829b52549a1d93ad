package effects

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kaelstudio/motif/timeline"
)

var quadIndices = []uint16{0, 1, 2, 1, 3, 2}

// geometryFor returns the quad vertices and indices for one effect draw
// pass. EffectShake perturbs the quad's vertex positions using a
// time-driven jitter (spec.md 4.3 "shake uses a time-driven vertex
// perturbation"); every other effect draws an unperturbed full-canvas quad,
// grounded on render.OverlayQuad's corner-computation shape.
func (c *Chain) geometryFor(kind timeline.EffectKind, globalTime, intensity float64) ([]ebiten.Vertex, []uint16) {
	var dx, dy float64
	if kind == timeline.EffectShake {
		dx = math.Sin(globalTime*53.0) * intensity * 10
		dy = math.Cos(globalTime*41.0) * intensity * 10
	}

	w, h := float64(c.width), float64(c.height)
	if cap(c.vertices) < 4 {
		c.vertices = make([]ebiten.Vertex, 4)
	}
	c.vertices = c.vertices[:4]

	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, p := range corners {
		c.vertices[i] = ebiten.Vertex{
			DstX: float32(p[0] + dx), DstY: float32(p[1] + dy),
			SrcX: uvs[i][0] * float32(w), SrcY: uvs[i][1] * float32(h),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	return c.vertices, quadIndices
}
