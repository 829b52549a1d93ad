package export

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kaelstudio/motif/playback"
	"github.com/kaelstudio/motif/timeline"
)

// exportFrameSource implements composition.FrameSource over an export
// run's own VideoPool. Unlike playback.Controller's implementation, it
// never drift-corrects: Exporter.seekActiveElements already seeks every
// element to the exact frame time before Compose runs, so FrameAt only
// needs to hand back whatever the pool currently holds.
type exportFrameSource struct {
	pool *playback.VideoPool
}

func (f *exportFrameSource) FrameAt(materialID timeline.MaterialID, sourceTime float64) (*ebiten.Image, bool) {
	h, ok := f.pool.Get(materialID)
	if !ok {
		return nil, false
	}
	return f.pool.Decoder.Frame(h)
}
