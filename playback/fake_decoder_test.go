package playback

import (
	"context"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/timeline"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

var _ io.Writer = discardWriter{}

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

// fakeElement is the opaque Handle a fakeDecoder hands out.
type fakeElement struct {
	mu      sync.Mutex
	current float64
	playing bool
	frame   *ebiten.Image
	closed  bool
}

// fakeDecoder is a synchronous, in-memory stand-in for a real media
// decoder: Open resolves immediately (or with a forced failure/hang,
// depending on configuration) so pool/controller tests stay deterministic.
type fakeDecoder struct {
	mu        sync.Mutex
	opens     int
	closes    int
	failOpen  bool
	neverOpen bool // if true, Open's channel is never sent to (simulates a hang)
}

func (d *fakeDecoder) Open(ctx context.Context, source timeline.MaterialSource) (Handle, <-chan error) {
	d.mu.Lock()
	d.opens++
	d.mu.Unlock()

	ch := make(chan error, 1)
	el := &fakeElement{frame: ebiten.NewImage(4, 4)}
	if d.neverOpen {
		return el, ch
	}
	if d.failOpen {
		ch <- context.DeadlineExceeded
		close(ch)
		return el, ch
	}
	ch <- nil
	close(ch)
	return el, ch
}

func (d *fakeDecoder) Seek(h Handle, sourceTime float64) error {
	el := h.(*fakeElement)
	el.mu.Lock()
	defer el.mu.Unlock()
	el.current = sourceTime
	return nil
}

func (d *fakeDecoder) CurrentTime(h Handle) float64 {
	el := h.(*fakeElement)
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.current
}

func (d *fakeDecoder) Frame(h Handle) (*ebiten.Image, bool) {
	el := h.(*fakeElement)
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.frame, el.frame != nil
}

func (d *fakeDecoder) SetPlaying(h Handle, playing bool) {
	el := h.(*fakeElement)
	el.mu.Lock()
	defer el.mu.Unlock()
	el.playing = playing
}

func (d *fakeDecoder) Close(h Handle) {
	d.mu.Lock()
	d.closes++
	d.mu.Unlock()
	el := h.(*fakeElement)
	el.mu.Lock()
	defer el.mu.Unlock()
	el.closed = true
}
