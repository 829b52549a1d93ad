package subtitle

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/kaelstudio/motif/timeline"
)

func TestRenderEmptyCuesDoesNothing(t *testing.T) {
	r := NewRenderer(320, 240)
	dst := ebiten.NewImage(320, 240)
	r.Render(dst, nil) // must not panic
}

func TestRenderSingleCueDoesNotPanic(t *testing.T) {
	r := NewRenderer(320, 240)
	dst := ebiten.NewImage(320, 240)
	cues := []timeline.Subtitle{
		{Text: "hello world", Style: timeline.DefaultSubtitleStyle()},
	}
	r.Render(dst, cues)
}

func TestRenderResizeReallocatesScratch(t *testing.T) {
	r := NewRenderer(100, 100)
	r.Resize(200, 150)
	if r.scratch.Bounds().Dx() != 200 || r.scratch.Bounds().Dy() != 150 {
		t.Errorf("scratch bounds = %v, want 200x150", r.scratch.Bounds())
	}
}

func TestRenderMultipleCuesStackBottomUp(t *testing.T) {
	r := NewRenderer(320, 240)
	dst := ebiten.NewImage(320, 240)
	cues := []timeline.Subtitle{
		{Text: "first", Style: timeline.DefaultSubtitleStyle()},
		{Text: "second", Style: timeline.DefaultSubtitleStyle()},
	}
	r.Render(dst, cues) // must not panic with more than one active cue
}
