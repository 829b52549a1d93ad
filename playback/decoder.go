package playback

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kaelstudio/motif/timeline"
)

// Handle is an opaque reference to a Decoder's media element, mirroring
// spec.md 4.5's "each slot owns a media element (opaque handle)". motif
// never inspects it; it is only ever passed back to the Decoder that
// issued it.
type Handle interface{}

// Decoder resolves a Material's source into a playable element and
// exposes the operations the Controller and VideoPool need to drive it.
// A host application supplies the implementation (spec.md names demuxing/
// decoding as an external collaborator, not part of this engine's core).
type Decoder interface {
	// Open begins loading source asynchronously and returns a handle
	// immediately. The returned channel receives exactly one value (nil
	// on success, an error otherwise) and is then closed; it is the Go
	// analogue of spec.md 4.5's "attaches canplay/error listeners".
	Open(ctx context.Context, source timeline.MaterialSource) (Handle, <-chan error)

	// Seek moves the element to sourceTime (source-media seconds).
	// Implementations may block until the seek completes; the Controller
	// applies its own deadline around the call (spec.md 4.5
	// "Cancellation").
	Seek(h Handle, sourceTime float64) error

	// CurrentTime reports the element's current playback position in
	// source-media seconds.
	CurrentTime(h Handle) float64

	// Frame returns the element's most recently decoded surface, or false
	// if nothing has been decoded yet.
	Frame(h Handle) (*ebiten.Image, bool)

	// SetPlaying starts or stops playback on the element.
	SetPlaying(h Handle, playing bool)

	// Close releases the element and any resources it holds. Called once
	// per Open, even on load failure.
	Close(h Handle)
}
