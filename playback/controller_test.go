package playback

import (
	"context"
	"testing"
	"time"

	"github.com/kaelstudio/motif/timeline"
)

func newTestControllerWorld() (*timeline.World, timeline.MaterialID, timeline.MaterialID) {
	w := timeline.NewWorld(320, 240, 30)
	a := w.AddMaterial(timeline.Material{Kind: timeline.MaterialVideo, Duration: 30})
	b := w.AddMaterial(timeline.Material{Kind: timeline.MaterialVideo, Duration: 30})
	return w, a, b
}

func TestControllerTickRebindsOnClipChange(t *testing.T) {
	w, matA, matB := newTestControllerWorld()
	track := w.AddTrackDirect(timeline.TrackVideo, "v1")
	if _, err := w.AddClipDirect(track, timeline.ClipDraft{MaterialID: matA, HasMaterial: true, StartTime: 0, Duration: 5}); err != nil {
		t.Fatalf("AddClipDirect a: %v", err)
	}
	if _, err := w.AddClipDirect(track, timeline.ClipDraft{MaterialID: matB, HasMaterial: true, StartTime: 5, Duration: 5}); err != nil {
		t.Fatalf("AddClipDirect b: %v", err)
	}

	dec := &fakeDecoder{}
	pool := NewVideoPool(4, dec, newTestLogger())
	ctrl := NewController(w, pool, newTestLogger())

	now := time.Unix(0, 0)
	ctrl.Clock.now = fixedNow(&now)
	ctrl.Clock.Play()

	ctrl.Tick(context.Background())
	if !pool.Has(matA) {
		t.Error("expected clip A's material to be preloaded after the first tick")
	}

	now = now.Add(6 * time.Second)
	ctrl.Tick(context.Background())
	if !pool.Has(matB) {
		t.Error("expected clip B's material to be preloaded once the playhead crosses into it")
	}
}

func TestControllerTickSeeksOnDrift(t *testing.T) {
	w, matA, _ := newTestControllerWorld()
	track := w.AddTrackDirect(timeline.TrackVideo, "v1")
	clip, err := w.AddClipDirect(track, timeline.ClipDraft{MaterialID: matA, HasMaterial: true, StartTime: 0, Duration: 10, InPoint: 2})
	if err != nil {
		t.Fatalf("AddClipDirect: %v", err)
	}
	_ = clip

	dec := &fakeDecoder{}
	pool := NewVideoPool(4, dec, newTestLogger())
	ctrl := NewController(w, pool, newTestLogger())

	now := time.Unix(0, 0)
	ctrl.Clock.now = fixedNow(&now)
	ctrl.Clock.Play()

	ctrl.Tick(context.Background()) // binds + seeks to InPoint (2.0) for t=0

	h, ok := pool.Get(matA)
	if !ok {
		t.Fatal("expected matA to be bound after Tick")
	}
	if got := dec.CurrentTime(h); got != 2 {
		t.Errorf("element current time = %v, want 2 (InPoint at t=0)", got)
	}
}

func TestControllerTickReportsEnded(t *testing.T) {
	w, matA, _ := newTestControllerWorld()
	w.SetFrameRateDirect(30)
	track := w.AddTrackDirect(timeline.TrackVideo, "v1")
	if _, err := w.AddClipDirect(track, timeline.ClipDraft{MaterialID: matA, HasMaterial: true, StartTime: 0, Duration: 3}); err != nil {
		t.Fatalf("AddClipDirect: %v", err)
	}

	dec := &fakeDecoder{}
	pool := NewVideoPool(4, dec, newTestLogger())
	ctrl := NewController(w, pool, newTestLogger())
	ctrl.Clock.SetDuration(3)

	now := time.Unix(0, 0)
	ctrl.Clock.now = fixedNow(&now)
	ctrl.Clock.Play()
	now = now.Add(3 * time.Second)

	result := ctrl.Tick(context.Background())
	if !result.Ended {
		t.Error("expected Tick to report Ended once the clock reaches duration")
	}
}

func TestControllerFrameAtReturnsBoundElementFrame(t *testing.T) {
	w, matA, _ := newTestControllerWorld()
	track := w.AddTrackDirect(timeline.TrackVideo, "v1")
	if _, err := w.AddClipDirect(track, timeline.ClipDraft{MaterialID: matA, HasMaterial: true, StartTime: 0, Duration: 5}); err != nil {
		t.Fatalf("AddClipDirect: %v", err)
	}

	dec := &fakeDecoder{}
	pool := NewVideoPool(4, dec, newTestLogger())
	ctrl := NewController(w, pool, newTestLogger())
	ctrl.Clock.Play()

	ctrl.Tick(context.Background())

	if _, ok := ctrl.FrameAt(matA, 0); !ok {
		t.Error("expected FrameAt to return a frame for the bound material")
	}
}

func TestControllerWarmupPrioritizesTransitionAdjacentClips(t *testing.T) {
	w, matA, matB := newTestControllerWorld()
	track := w.AddTrackDirect(timeline.TrackVideo, "v1")
	clipA, err := w.AddClipDirect(track, timeline.ClipDraft{MaterialID: matA, HasMaterial: true, StartTime: 0, Duration: 5})
	if err != nil {
		t.Fatalf("AddClipDirect a: %v", err)
	}
	clipB, err := w.AddClipDirect(track, timeline.ClipDraft{MaterialID: matB, HasMaterial: true, StartTime: 5, Duration: 5})
	if err != nil {
		t.Fatalf("AddClipDirect b: %v", err)
	}
	if _, err := w.AddTransitionDirect(clipA.ID, clipB.ID, timeline.TransitionFade, 1); err != nil {
		t.Fatalf("AddTransitionDirect: %v", err)
	}

	dec := &fakeDecoder{}
	pool := NewVideoPool(4, dec, newTestLogger())
	ctrl := NewController(w, pool, newTestLogger())

	items := ctrl.buildWarmupPriority(WarmupContext{CurrentTime: 0})
	if len(items) == 0 {
		t.Fatal("expected at least one warmup candidate")
	}
	if items[0].materialID != matB && items[0].priority != 0 {
		t.Errorf("expected a transition-adjacent clip to rank first, got priority %d", items[0].priority)
	}
}

func TestControllerCancelWarmupBumpsToken(t *testing.T) {
	w, _, _ := newTestControllerWorld()
	dec := &fakeDecoder{}
	pool := NewVideoPool(4, dec, newTestLogger())
	ctrl := NewController(w, pool, newTestLogger())

	ctrl.Warmup(context.Background(), WarmupContext{CurrentTime: 0})
	before := ctrl.warmup.token
	ctrl.CancelWarmup()
	if ctrl.warmup.token == before {
		t.Error("expected CancelWarmup to bump the token")
	}
	if len(ctrl.warmup.items) != 0 {
		t.Error("expected CancelWarmup to clear the pending queue")
	}
}
