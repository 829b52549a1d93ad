package export

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/playback"
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

type fakeElement struct {
	mu      sync.Mutex
	current float64
}

type fakeDecoder struct {
	mu    sync.Mutex
	seeks int
}

func (d *fakeDecoder) Open(ctx context.Context, source timeline.MaterialSource) (playback.Handle, <-chan error) {
	ch := make(chan error, 1)
	ch <- nil
	close(ch)
	return &fakeElement{}, ch
}

func (d *fakeDecoder) Seek(h playback.Handle, sourceTime float64) error {
	d.mu.Lock()
	d.seeks++
	d.mu.Unlock()
	el := h.(*fakeElement)
	el.mu.Lock()
	defer el.mu.Unlock()
	el.current = sourceTime
	return nil
}

func (d *fakeDecoder) CurrentTime(h playback.Handle) float64 {
	el := h.(*fakeElement)
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.current
}

func (d *fakeDecoder) Frame(h playback.Handle) (*ebiten.Image, bool) {
	return ebiten.NewImage(4, 4), true
}

func (d *fakeDecoder) SetPlaying(h playback.Handle, playing bool) {}
func (d *fakeDecoder) Close(h playback.Handle)                    {}

type fakeEncoder struct {
	mu     sync.Mutex
	frames int
}

func (e *fakeEncoder) AddFrame(frame *ebiten.Image) error {
	e.mu.Lock()
	e.frames++
	e.mu.Unlock()
	return nil
}

func (e *fakeEncoder) Finalize() ([]byte, error) { return []byte("fake-video"), nil }

type fakeMixer struct{ called bool }

func (m *fakeMixer) MixAudio(ctx context.Context, world *timeline.World) ([]byte, error) {
	m.called = true
	return []byte("fake-audio"), nil
}

func newTestWorld() (*timeline.World, timeline.MaterialID) {
	w := timeline.NewWorld(64, 64, 10)
	mat := w.AddMaterial(timeline.Material{Kind: timeline.MaterialVideo, Duration: 10})
	track := w.AddTrackDirect(timeline.TrackVideo, "v1")
	if _, err := w.AddClipDirect(track, timeline.ClipDraft{
		MaterialID: mat, HasMaterial: true, StartTime: 0, Duration: 1,
	}); err != nil {
		panic(err)
	}
	return w, mat
}

func TestExporterRunEncodesEveryFrame(t *testing.T) {
	w, _ := newTestWorld()
	dec := &fakeDecoder{}
	exp := NewExporter(Options{Width: 64, Height: 64, FrameRate: 10}, dec, newTestLogger())
	defer exp.Destroy()

	enc := &fakeEncoder{}
	var lastProgress float64
	result, err := exp.Run(context.Background(), w, 10, 10, enc, nil, func(f float64) { lastProgress = f })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if enc.frames != 10 {
		t.Errorf("frames encoded = %d, want 10", enc.frames)
	}
	if result.Aborted {
		t.Error("expected Aborted false on a completed run")
	}
	if string(result.Video) != "fake-video" {
		t.Errorf("Video = %q, want fake-video", result.Video)
	}
	if lastProgress != 1.0 {
		t.Errorf("final progress = %v, want 1.0", lastProgress)
	}
	if dec.seeks == 0 {
		t.Error("expected every frame to seek the active element")
	}
}

func TestExporterRunMixesAudioWhenMixerProvided(t *testing.T) {
	w, _ := newTestWorld()
	dec := &fakeDecoder{}
	exp := NewExporter(Options{Width: 64, Height: 64, FrameRate: 10}, dec, newTestLogger())
	defer exp.Destroy()

	mixer := &fakeMixer{}
	result, err := exp.Run(context.Background(), w, 10, 5, &fakeEncoder{}, mixer, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !mixer.called {
		t.Error("expected MixAudio to be called")
	}
	if string(result.Audio) != "fake-audio" {
		t.Errorf("Audio = %q, want fake-audio", result.Audio)
	}
}

func TestExporterRunAbortsOnContextCancellation(t *testing.T) {
	w, _ := newTestWorld()
	dec := &fakeDecoder{}
	exp := NewExporter(Options{Width: 64, Height: 64, FrameRate: 10}, dec, newTestLogger())
	defer exp.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already done before Run starts

	enc := &fakeEncoder{}
	mixer := &fakeMixer{}
	result, err := exp.Run(ctx, w, 10, 100, enc, mixer, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Aborted {
		t.Error("expected Aborted true")
	}
	if enc.frames != 0 {
		t.Errorf("frames encoded before abort = %d, want 0", enc.frames)
	}
	if mixer.called {
		t.Error("expected audio mixing to be skipped on an aborted run")
	}
	if string(result.Video) != "fake-video" {
		t.Error("expected Finalize still called on an aborted run, returning the partial buffer")
	}
}
