// Package subtitle implements the Subtitle Renderer: the 2D raster layer
// composited over the Composition Pipeline's GPU output (spec.md 4.4 step
// 8), left loosely specified beyond that contract.
//
// Cue data (timeline.Subtitle) lives in the timeline package alongside every
// other entity; this package only turns active cues into pixels, using
// grapheme-cluster-aware line wrapping (github.com/rivo/uniseg) and CPU-side
// raster compositing (golang.org/x/image/draw, golang.org/x/image/font)
// before handing the result to ebiten as a regular texture.
package subtitle
