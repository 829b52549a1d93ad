package effects

import (
	"io"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/timeline"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

var _ io.Writer = discardWriter{}

func TestChainApplyEmptyListReturnsFalse(t *testing.T) {
	c := NewChain(64, 64, newTestLogger())
	input := ebiten.NewImage(64, 64)
	dst := ebiten.NewImage(64, 64)

	if c.Apply(dst, input, nil, 0, 0) {
		t.Error("expected Apply with no active effects to return false")
	}
}

func TestChainApplyInactiveEffectIsSkipped(t *testing.T) {
	c := NewChain(64, 64, newTestLogger())
	input := ebiten.NewImage(64, 64)
	dst := ebiten.NewImage(64, 64)

	list := []timeline.EffectInstance{
		{Kind: timeline.EffectInvert, StartTime: 5, Duration: 1, Enabled: true, Intensity: 1},
	}
	if c.Apply(dst, input, list, 0, 0) {
		t.Error("expected Apply with only an out-of-window effect to return false")
	}
}

func TestChainApplySingleActiveEffectReturnsTrue(t *testing.T) {
	c := NewChain(64, 64, newTestLogger())
	input := ebiten.NewImage(64, 64)
	dst := ebiten.NewImage(64, 64)

	list := []timeline.EffectInstance{
		{Kind: timeline.EffectInvert, StartTime: 0, Duration: 2, Enabled: true, Intensity: 1},
	}
	if !c.Apply(dst, input, list, 1.0, 0) {
		t.Error("expected Apply with one active effect to return true")
	}
}

func TestChainApplyOrdersByOrderField(t *testing.T) {
	list := []timeline.EffectInstance{
		{Kind: timeline.EffectVignette, StartTime: 0, Duration: 2, Enabled: true, Order: 2},
		{Kind: timeline.EffectFlash, StartTime: 0, Duration: 2, Enabled: true, Order: 0},
		{Kind: timeline.EffectGlitch, StartTime: 0, Duration: 2, Enabled: true, Order: 1},
	}
	active := activeSorted(list, 1.0)
	if len(active) != 3 {
		t.Fatalf("len(active) = %d, want 3", len(active))
	}
	if active[0].Kind != timeline.EffectFlash || active[1].Kind != timeline.EffectGlitch || active[2].Kind != timeline.EffectVignette {
		t.Errorf("active order = %v, %v, %v; want flash, glitch, vignette", active[0].Kind, active[1].Kind, active[2].Kind)
	}
}

func TestChainApplyDisabledEffectExcluded(t *testing.T) {
	list := []timeline.EffectInstance{
		{Kind: timeline.EffectFlash, StartTime: 0, Duration: 2, Enabled: false},
	}
	if active := activeSorted(list, 1.0); len(active) != 0 {
		t.Errorf("len(active) = %d, want 0 for a disabled effect", len(active))
	}
}

func TestChainResizeRecreatesFBOs(t *testing.T) {
	c := NewChain(64, 64, newTestLogger())
	oldPing := c.ping
	c.Resize(128, 96)
	if c.ping == oldPing {
		t.Error("expected Resize to allocate a new ping FBO")
	}
	if b := c.ping.Bounds(); b.Dx() != 128 || b.Dy() != 96 {
		t.Errorf("ping bounds = %v, want 128x96", b)
	}
}

func TestAllEffectProgramsCompile(t *testing.T) {
	c := NewChain(16, 16, newTestLogger())
	for kind := range shaderSources {
		if _, ok := c.programFor(kind); !ok {
			t.Errorf("program for %s failed to compile", effectName(kind))
		}
	}
}
