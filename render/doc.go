// Package render owns the GPU device: the shader program cache, the
// pooled offscreen framebuffers, reusable vertex/uv scratch buffers, and
// the state-sandbox contract every higher-level pass relies on.
//
// It is built on Ebitengine (github.com/hajimehoshi/ebiten/v2): "programs"
// are compiled Kage shaders, "framebuffers" are unmanaged *ebiten.Image
// offscreen targets, and draw calls go through DrawRectShader /
// DrawTriangles. Ebitengine has no persistent global GL state to leak
// between draw calls the way raw GL/WebGL does -- every draw call takes
// its own Options value -- so the state sandbox here narrows to resetting
// the Context's own reusable Options structs and guaranteeing pooled
// offscreen images are cleared before reuse. The contract a caller sees
// (known-clean state in, known-clean state out of every pipeline entry
// point) is unchanged.
package render
