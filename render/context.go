package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// Options mirrors spec.md 4.2's init(surface, options{...}) contract.
// Ebitengine negotiates most of these (antialiasing, power preference) at
// the ebiten.RunGame level rather than per-Context, so they are recorded
// here for parity with the source design and used where ebiten exposes an
// equivalent knob.
type Options struct {
	PreserveBackbuffer bool
	Antialias          bool
}

// Context owns the program cache, the framebuffer pool, and the reusable
// scratch buffers every pipeline entry point draws through. Exactly one
// pipeline instance owns a Context (spec.md 5 "shared-resource policy");
// export constructs its own, isolated Context.
type Context struct {
	Logger *logrus.Logger
	Opts   Options

	Width, Height int

	programs map[ProgramKind]Program
	pool     FramebufferPool

	// Scratch buffers reused across frames to avoid per-frame allocation
	// (spec.md 4.2 "two preallocated scratch arrays"), grown with a
	// high-water-mark strategy mirroring ensureTransformedVerts (mesh.go).
	quadVertices []ebiten.Vertex
	quadIndices  []uint16

	basicOp      ebiten.DrawRectShaderOptions
	animatedOp   ebiten.DrawRectShaderOptions
	transitionOp ebiten.DrawRectShaderOptions
	overlayOp    ebiten.DrawTrianglesShaderOptions
}

// NewContext constructs a Context and pre-compiles the four core programs
// (spec.md 4.2 init). logger must not be nil; callers without their own
// sink should pass logrus.New().
func NewContext(width, height int, opts Options, logger *logrus.Logger) *Context {
	c := &Context{
		Logger:   logger,
		Opts:     opts,
		Width:    width,
		Height:   height,
		programs: make(map[ProgramKind]Program, 8),
	}
	c.Basic()
	c.Animated()
	c.Transition()
	c.Overlay()
	return c
}

// ResetState is the state sandbox: restores every reusable Options struct
// to its zero value so the next pipeline entry point starts from a known-
// clean state (spec.md 4.2 resetState). Ebitengine has no persistent GPU
// state to leak between draw calls -- each takes its own Options -- so
// this only needs to reset the Context's own struct fields, not a live
// device.
func (c *Context) ResetState() {
	c.basicOp = ebiten.DrawRectShaderOptions{}
	c.animatedOp = ebiten.DrawRectShaderOptions{}
	c.transitionOp = ebiten.DrawRectShaderOptions{}
	c.overlayOp = ebiten.DrawTrianglesShaderOptions{}
}

// EnableBlend configures op for standard SRC_ALPHA-over-ONE_MINUS_SRC_ALPHA
// compositing, ebiten's default; present for parity with spec.md 4.2's
// explicit enableBlend/disableBlend pair.
func EnableBlend(op *ebiten.DrawRectShaderOptions) {
	op.Blend = ebiten.BlendSourceOver
}

// DisableBlend configures op to overwrite destination pixels (used when
// compositing into a freshly-cleared, fully transparent FBO where blending
// against garbage is unnecessary).
func DisableBlend(op *ebiten.DrawRectShaderOptions) {
	op.Blend = ebiten.BlendCopy
}

// Resize updates the Context's viewport dimensions. Pooled framebuffers are
// not destroyed here -- the effects package's Chain owns the two FBOs whose
// resize (spec.md 4.3) matters and recreates them itself.
func (c *Context) Resize(width, height int) {
	c.Width, c.Height = width, height
}

// AcquireFramebuffer pulls a cleared offscreen image from the pool.
func (c *Context) AcquireFramebuffer(w, h int) *ebiten.Image {
	return c.pool.Acquire(w, h)
}

// ReleaseFramebuffer returns an offscreen image to the pool.
func (c *Context) ReleaseFramebuffer(img *ebiten.Image) {
	c.pool.Release(img)
}

// CreateTexture allocates a new GPU-backed image of the given size, with
// CLAMP_TO_EDGE/LINEAR sampling semantics (ebiten images already clamp at
// their edges and default to linear filtering on DrawImage; the distinct
// setupTextureParams step the source performs is a no-op here).
func (c *Context) CreateTexture(w, h int) *ebiten.Image {
	return ebiten.NewImage(w, h)
}

// UploadTexture copies src's pixels into an existing texture-backed image.
func (c *Context) UploadTexture(tex *ebiten.Image, src image.Image) {
	tex.Clear()
	tex.DrawImage(ebiten.NewImageFromImage(src), nil)
}

// Destroy releases every compiled program and pooled framebuffer.
func (c *Context) Destroy() {
	c.programs = make(map[ProgramKind]Program)
	c.pool.Destroy()
}
