package render

import "github.com/hajimehoshi/ebiten/v2"

// TextureSource is the tagged union of everything the Composition Pipeline
// can upload as a texture. A duck-typed TexImageSource (video frame, image,
// canvas, decoded bitmap) becomes one sum type with strongly-typed variants
// instead.
type TextureSource struct {
	kind sourceKind
	img  *ebiten.Image // Image, Canvas, Frame
}

type sourceKind uint8

const (
	sourceImage sourceKind = iota
	sourceCanvas
	sourceFrame
)

// VideoFrameSource wraps a single already-decoded video frame as a texture
// source. Decoding itself is a host-application concern (spec.md names
// media decoding as an external collaborator).
func VideoFrameSource(frame *ebiten.Image) TextureSource {
	return TextureSource{kind: sourceFrame, img: frame}
}

// ImageSource wraps a static decoded image (material kind MaterialImage).
func ImageSource(img *ebiten.Image) TextureSource {
	return TextureSource{kind: sourceImage, img: img}
}

// CanvasSource wraps an offscreen render result being fed back in as input
// (e.g. the Subtitle Renderer's raster layer).
func CanvasSource(canvas *ebiten.Image) TextureSource {
	return TextureSource{kind: sourceCanvas, img: canvas}
}

// Image returns the underlying *ebiten.Image regardless of variant. Callers
// that need to distinguish kinds (e.g. for logging) can still do so before
// calling this.
func (s TextureSource) Image() *ebiten.Image { return s.img }

// Valid reports whether the source carries a non-nil image.
func (s TextureSource) Valid() bool { return s.img != nil }
