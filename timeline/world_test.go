package timeline

import (
	"errors"
	"testing"
)

func newTestWorld() *World {
	return NewWorld(1920, 1080, 30)
}

func TestAddClipOverlapPrevention(t *testing.T) {
	// spec.md 8 scenario 5: track has clip at [2,5); adding a new clip
	// requested at startTime=3, duration=2 must land at startTime=5.
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")

	if _, err := w.AddClipDirect(track, ClipDraft{StartTime: 2, Duration: 3}); err != nil {
		t.Fatalf("first AddClipDirect: %v", err)
	}
	second, err := w.AddClipDirect(track, ClipDraft{StartTime: 3, Duration: 2})
	if err != nil {
		t.Fatalf("second AddClipDirect: %v", err)
	}
	if second.StartTime != 5 {
		t.Errorf("StartTime = %v, want 5", second.StartTime)
	}
	assertNoOverlap(t, w, track)
}

func assertNoOverlap(t *testing.T, w *World, track TrackID) {
	t.Helper()
	tr, ok := w.Track(track)
	if !ok {
		t.Fatalf("track %v not found", track)
	}
	clips := w.clipsOf(&tr)
	for i := 0; i < len(clips); i++ {
		for j := i + 1; j < len(clips); j++ {
			if clips[i].Overlaps(clips[j].StartTime, clips[j].Duration) {
				t.Errorf("clips overlap: %+v and %+v", clips[i], clips[j])
			}
		}
	}
}

func TestMoveClipOverlapPrevention(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	a, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 2})
	b, _ := w.AddClipDirect(track, ClipDraft{StartTime: 10, Duration: 2})

	newStart, err := w.MoveClipDirect(b.ID, 1)
	if err != nil {
		t.Fatalf("MoveClipDirect: %v", err)
	}
	if newStart != a.End() {
		t.Errorf("newStart = %v, want %v (pushed past clip a)", newStart, a.End())
	}
	assertNoOverlap(t, w, track)
}

func TestSplitClipContiguousCoverage(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 10, InPoint: 0, OutPoint: 10})

	left, right, err := w.SplitClipDirect(c.ID, 4)
	if err != nil {
		t.Fatalf("SplitClipDirect: %v", err)
	}
	if left.StartTime != 0 || left.Duration != 4 {
		t.Errorf("left = %+v, want StartTime=0 Duration=4", left)
	}
	if right.StartTime != 4 || right.Duration != 6 {
		t.Errorf("right = %+v, want StartTime=4 Duration=6", right)
	}
	if left.End() != right.StartTime {
		t.Errorf("coverage not contiguous: left.End()=%v right.StartTime=%v", left.End(), right.StartTime)
	}
	if left.OutPoint != right.InPoint {
		t.Errorf("source-time split point mismatch: left.OutPoint=%v right.InPoint=%v", left.OutPoint, right.InPoint)
	}
	if _, ok := w.Clip(c.ID); ok {
		t.Error("original clip should no longer exist after split")
	}
}

func TestSplitClipRejectsOutOfRangeTime(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 10})

	if _, _, err := w.SplitClipDirect(c.ID, 0); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("split at 0: err = %v, want ErrInvalidRange", err)
	}
	if _, _, err := w.SplitClipDirect(c.ID, 10); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("split at duration: err = %v, want ErrInvalidRange", err)
	}
}

func TestRemoveTrackCascadesToClipsAndEffects(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 5})
	eff, _ := w.AddEffectDirect(c.ID, EffectFlash, 0, 1)

	if err := w.RemoveTrackDirect(track); err != nil {
		t.Fatalf("RemoveTrackDirect: %v", err)
	}
	if _, ok := w.Clip(c.ID); ok {
		t.Error("clip should be gone after its track is removed")
	}
	if _, ok := w.Track(track); ok {
		t.Error("track should be gone")
	}
	if _, ok := w.effects.get(eff.ID.h.index, eff.ID.h.generation); ok {
		t.Error("effect should be gone after its clip's track is removed")
	}
}

func TestTransitionRequiresSameTrack(t *testing.T) {
	w := newTestWorld()
	t1 := w.AddTrackDirect(TrackVideo, "v1")
	t2 := w.AddTrackDirect(TrackVideo, "v2")
	a, _ := w.AddClipDirect(t1, ClipDraft{StartTime: 0, Duration: 4})
	b, _ := w.AddClipDirect(t2, ClipDraft{StartTime: 4, Duration: 4})

	if _, err := w.AddTransitionDirect(a.ID, b.ID, TransitionDissolve, 1); !errors.Is(err, ErrCrossTrack) {
		t.Errorf("err = %v, want ErrCrossTrack", err)
	}
}

func TestTransitionDuplicateRejected(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	a, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 4})
	b, _ := w.AddClipDirect(track, ClipDraft{StartTime: 4, Duration: 4})

	if _, err := w.AddTransitionDirect(a.ID, b.ID, TransitionDissolve, 1); err != nil {
		t.Fatalf("first AddTransitionDirect: %v", err)
	}
	if _, err := w.AddTransitionDirect(a.ID, b.ID, TransitionDissolve, 1); !errors.Is(err, ErrDuplicateEdge) {
		t.Errorf("err = %v, want ErrDuplicateEdge", err)
	}
}

// TestTransitionAtDissolveProgress is spec.md 8 scenario 2: Clip A [0..4],
// Clip B [4..8], dissolve transition duration 1.0; at t=4.0 progress=0.5.
func TestTransitionAtDissolveProgress(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	a, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 4})
	b, _ := w.AddClipDirect(track, ClipDraft{StartTime: 4, Duration: 4})
	if _, err := w.AddTransitionDirect(a.ID, b.ID, TransitionDissolve, 1.0); err != nil {
		t.Fatalf("AddTransitionDirect: %v", err)
	}

	tr, progress, ok := w.TransitionAt(4.0)
	if !ok {
		t.Fatal("expected an active transition at t=4.0")
	}
	if tr.Type != TransitionDissolve {
		t.Errorf("Type = %v, want TransitionDissolve", tr.Type)
	}
	if progress < 0.499 || progress > 0.501 {
		t.Errorf("progress = %v, want ~0.5", progress)
	}
}

func TestActiveClipsSingleClipPassthrough(t *testing.T) {
	// spec.md 8 scenario 1.
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 10, InPoint: 0, OutPoint: 10})

	active := w.ActiveClips(5.0)
	if len(active) != 1 {
		t.Fatalf("len(ActiveClips(5.0)) = %v, want 1", len(active))
	}
	if got := active[0].SourceTime(5.0); got < 4.9 || got > 5.1 {
		t.Errorf("SourceTime(5.0) = %v, want ~5.0", got)
	}
}

func TestEffectOrderUniqueAndReorder(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 10})

	e1, _ := w.AddEffectDirect(c.ID, EffectFlash, 0, 1)
	e2, _ := w.AddEffectDirect(c.ID, EffectShake, 0, 1)
	if e1.Order == e2.Order {
		t.Fatalf("effect orders collide: %v", e1.Order)
	}

	if err := w.ReorderEffectsDirect(c.ID, []EffectID{e2.ID, e1.ID}); err != nil {
		t.Fatalf("ReorderEffectsDirect: %v", err)
	}
	clip, _ := w.Clip(c.ID)
	if clip.Effects[0].ID != e2.ID || clip.Effects[1].ID != e1.ID {
		t.Errorf("unexpected effect order after reorder: %+v", clip.Effects)
	}
}

func TestUpdateEffectParam(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 10})
	eff, _ := w.AddEffectDirect(c.ID, EffectGlitch, 0, 1)

	if err := w.UpdateEffectParamDirect(c.ID, eff.ID, "intensity", 0.75); err != nil {
		t.Fatalf("UpdateEffectParamDirect: %v", err)
	}
	clip, _ := w.Clip(c.ID)
	if clip.Effects[0].Params["intensity"] != 0.75 {
		t.Errorf("param not applied: %+v", clip.Effects[0].Params)
	}
}

func TestToggleEffect(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 10})
	eff, _ := w.AddEffectDirect(c.ID, EffectVignette, 0, 1)

	enabled, err := w.ToggleEffectDirect(c.ID, eff.ID)
	if err != nil {
		t.Fatalf("ToggleEffectDirect: %v", err)
	}
	if enabled {
		t.Error("toggling a freshly-added (enabled) effect should disable it")
	}
}

func TestUnknownIDsReturnErrors(t *testing.T) {
	w := newTestWorld()
	var zeroClip ClipID
	if _, ok := w.Clip(zeroClip); ok {
		t.Error("zero-value ClipID should never resolve")
	}
	if err := w.RemoveClipDirect(zeroClip); !errors.Is(err, ErrUnknownID) {
		t.Errorf("RemoveClipDirect(zero id) = %v, want ErrUnknownID", err)
	}
}

func TestHandleGenerationRejectsStaleID(t *testing.T) {
	w := newTestWorld()
	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 5})
	staleID := c.ID

	if err := w.RemoveClipDirect(staleID); err != nil {
		t.Fatalf("RemoveClipDirect: %v", err)
	}

	// Insert enough clips that the freed slot is likely reused.
	for i := 0; i < 4; i++ {
		w.AddClipDirect(track, ClipDraft{StartTime: float64(10 + i*5), Duration: 2})
	}

	if _, ok := w.Clip(staleID); ok {
		t.Error("stale handle resolved to a live entity after slot reuse")
	}
}

func TestEventBusDeliversClipAdded(t *testing.T) {
	w := newTestWorld()
	var received []Event
	w.Subscribe(EventClipAdded, func(e Event) { received = append(received, e) })

	track := w.AddTrackDirect(TrackVideo, "v1")
	c, _ := w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 5})
	w.Flush()

	if len(received) != 1 {
		t.Fatalf("len(received) = %v, want 1", len(received))
	}
	if received[0].ID.(ClipID) != c.ID {
		t.Errorf("event ID = %v, want %v", received[0].ID, c.ID)
	}
}

func TestEventBusFiltersByKind(t *testing.T) {
	w := newTestWorld()
	var clipAdds, trackAdds int
	w.Subscribe(EventClipAdded, func(Event) { clipAdds++ })
	w.Subscribe(EventTrackAdded, func(Event) { trackAdds++ })

	track := w.AddTrackDirect(TrackVideo, "v1")
	w.AddClipDirect(track, ClipDraft{StartTime: 0, Duration: 5})
	w.Flush()

	if trackAdds != 1 {
		t.Errorf("trackAdds = %v, want 1", trackAdds)
	}
	if clipAdds != 1 {
		t.Errorf("clipAdds = %v, want 1", clipAdds)
	}
}
