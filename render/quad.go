package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kaelstudio/motif"
)

// staticQuadIndices is the static index buffer for a two-triangle quad, shared by
// every DrawTrianglesShader call in the Context (overlay geometry). It never
// changes, so it is built once and reused.
var staticQuadIndices = []uint16{0, 1, 2, 1, 3, 2}

// ensureQuadVertices grows c.quadVertices to exactly 4 entries (a
// high-water-mark buffer, mirroring ensureTransformedVerts in mesh.go) and
// returns it for the caller to fill in place.
func (c *Context) ensureQuadVertices() []ebiten.Vertex {
	if cap(c.quadVertices) < 4 {
		c.quadVertices = make([]ebiten.Vertex, 4)
	}
	c.quadVertices = c.quadVertices[:4]
	return c.quadVertices
}

// OverlayQuad builds the 4-vertex triangle-strip-equivalent quad (as two
// indexed triangles) for an overlay/sticker draw: translation and scale are
// in normalized 0..1 screen space, rotation in radians around the quad's
// center.
func (c *Context) OverlayQuad(translation motif.Vec2, scale motif.Vec2, rotationRadians float64, imgW, imgH float64) ([]ebiten.Vertex, []uint16) {
	verts := c.ensureQuadVertices()

	halfW := imgW * scale.X / 2
	halfH := imgH * scale.Y / 2
	cx := translation.X * float64(c.Width)
	cy := translation.Y * float64(c.Height)

	corners := [4][2]float64{
		{-halfW, -halfH},
		{halfW, -halfH},
		{-halfW, halfH},
		{halfW, halfH},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	sin, cos := math.Sincos(rotationRadians)
	for i, p := range corners {
		rx := p[0]*cos - p[1]*sin
		ry := p[0]*sin + p[1]*cos
		verts[i] = ebiten.Vertex{
			DstX:   float32(cx + rx),
			DstY:   float32(cy + ry),
			SrcX:   uvs[i][0] * float32(imgW),
			SrcY:   uvs[i][1] * float32(imgH),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	return verts, staticQuadIndices
}
