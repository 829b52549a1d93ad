package timeline

import (
	"fmt"
	"sort"

	"github.com/kaelstudio/motif/anim"
)

// World is the central timeline arena: one contiguous, reusable store per
// entity kind, addressed by generation-counted handles (spec.md 9 "object
// graph with shared lifetimes -> arena + indices"). It also owns the
// change-notification bus.
//
// World's exported methods are all "direct mutators": they never record
// history. The history package's commands call these directly; a
// higher-level, undo-recording edit API can be layered on top by wrapping
// each mutator in a Command (spec.md 4.6).
type World struct {
	CanvasWidth, CanvasHeight int
	FrameRate                 float64
	Name                      string

	materials   arena[Material]
	tracks      arena[Track]
	clips       arena[Clip]
	transitions arena[Transition]
	effects     arena[EffectInstance]
	subtitles   arena[Subtitle]

	bus *bus
}

// NewWorld constructs an empty timeline at the given canvas size and frame
// rate.
func NewWorld(width, height int, frameRate float64) *World {
	return &World{
		CanvasWidth:  width,
		CanvasHeight: height,
		FrameRate:    frameRate,
		bus:          newBus(),
	}
}

// Subscribe registers fn to run on every future event of kind. Call
// Flush (typically once per scheduler tick) to deliver queued events.
func (w *World) Subscribe(kind EventKind, fn func(Event)) {
	w.bus.subscribe(kind, fn)
}

// Flush delivers queued events to subscribers.
func (w *World) Flush() {
	w.bus.flush()
}

func mkTrackID(index, gen uint32) TrackID { return TrackID{handle{index, gen}} }
func mkClipID(index, gen uint32) ClipID   { return ClipID{handle{index, gen}} }
func mkTransitionID(index, gen uint32) TransitionID {
	return TransitionID{handle{index, gen}}
}
func mkEffectID(index, gen uint32) EffectID     { return EffectID{handle{index, gen}} }
func mkMaterialID(index, gen uint32) MaterialID { return MaterialID{handle{index, gen}} }
func mkSubtitleID(index, gen uint32) SubtitleID { return SubtitleID{handle{index, gen}} }

// --- Materials ---

// AddMaterial inserts m and returns its assigned ID.
func (w *World) AddMaterial(m Material) MaterialID {
	index, gen := w.materials.insert(m)
	id := mkMaterialID(index, gen)
	if mat, ok := w.materials.get(index, gen); ok {
		mat.ID = id
	}
	return id
}

// RemoveMaterial deletes a material. Callers are responsible for ensuring
// no clip still references it (spec.md 3 "Materials are shared; lifetime is
// max(external store retention, any live clip's reference)").
func (w *World) RemoveMaterial(id MaterialID) bool {
	return w.materials.remove(id.h.index, id.h.generation)
}

// Material looks up a material by ID.
func (w *World) Material(id MaterialID) (Material, bool) {
	m, ok := w.materials.get(id.h.index, id.h.generation)
	if !ok {
		return Material{}, false
	}
	return *m, true
}

// --- Tracks ---

// AddTrackDirect inserts a new, empty track without recording history.
func (w *World) AddTrackDirect(kind TrackKind, name string) TrackID {
	index, gen := w.tracks.insert(Track{Kind: kind, Name: name})
	id := mkTrackID(index, gen)
	t, _ := w.tracks.get(index, gen)
	t.ID = id
	w.bus.publish(EventTrackAdded, id)
	return id
}

// RemoveTrackDirect deletes a track and everything it owns: its clips and
// each clip's effects (spec.md 3 "deleting a Track destroys its Clips and
// associated Effects/Animations").
func (w *World) RemoveTrackDirect(id TrackID) error {
	track, ok := w.tracks.get(id.h.index, id.h.generation)
	if !ok {
		return fmt.Errorf("remove track %s: %w", id, ErrUnknownID)
	}
	for _, cid := range append([]ClipID(nil), track.ClipIDs...) {
		w.removeClipEntity(cid)
	}
	w.tracks.remove(id.h.index, id.h.generation)
	w.bus.publish(EventTrackRemoved, id)
	return nil
}

// ToggleTrackMuteDirect flips a track's Muted flag and returns the new
// value.
func (w *World) ToggleTrackMuteDirect(id TrackID) (bool, error) {
	t, ok := w.tracks.get(id.h.index, id.h.generation)
	if !ok {
		return false, fmt.Errorf("toggle mute %s: %w", id, ErrUnknownID)
	}
	t.Muted = !t.Muted
	w.bus.publish(EventTrackToggled, id)
	return t.Muted, nil
}

// ToggleTrackLockDirect flips a track's Locked flag and returns the new
// value.
func (w *World) ToggleTrackLockDirect(id TrackID) (bool, error) {
	t, ok := w.tracks.get(id.h.index, id.h.generation)
	if !ok {
		return false, fmt.Errorf("toggle lock %s: %w", id, ErrUnknownID)
	}
	t.Locked = !t.Locked
	w.bus.publish(EventTrackToggled, id)
	return t.Locked, nil
}

// Track looks up a track by ID.
func (w *World) Track(id TrackID) (Track, bool) {
	t, ok := w.tracks.get(id.h.index, id.h.generation)
	if !ok {
		return Track{}, false
	}
	return *t, true
}

// Tracks returns every live track, in arena order.
func (w *World) Tracks() []Track {
	var out []Track
	w.tracks.forEach(func(_, _ uint32, t *Track) { out = append(out, *t) })
	return out
}

// --- Clips ---

// ClipDraft is the caller-supplied data for a new clip; ID fields are
// assigned by the World.
type ClipDraft struct {
	MaterialID  MaterialID
	HasMaterial bool
	StartTime   float64
	Duration    float64
	InPoint     float64
	OutPoint    float64
	Transform   StaticTransform
	Text        string
}

// AddClipDirect inserts draft onto track, resolving an overlap by shifting
// the requested start forward to the end of the conflicting clip, repeated
// until no conflict remains (spec.md 8 scenario 5). Returns the inserted
// clip.
func (w *World) AddClipDirect(trackID TrackID, draft ClipDraft) (Clip, error) {
	track, ok := w.tracks.get(trackID.h.index, trackID.h.generation)
	if !ok {
		return Clip{}, fmt.Errorf("add clip on %s: %w", trackID, ErrUnknownID)
	}
	if draft.Duration <= 0 {
		return Clip{}, fmt.Errorf("add clip: duration %v: %w", draft.Duration, ErrInvalidRange)
	}
	if draft.StartTime < 0 {
		draft.StartTime = 0
	}

	start := resolveOverlap(w.clipsOf(track), draft.StartTime, draft.Duration)

	transform := draft.Transform
	if transform.ScaleX == 0 && transform.ScaleY == 0 {
		transform = DefaultStaticTransform()
	}

	c := Clip{
		TrackID:     trackID,
		MaterialID:  draft.MaterialID,
		HasMaterial: draft.HasMaterial,
		StartTime:   start,
		Duration:    draft.Duration,
		InPoint:     draft.InPoint,
		OutPoint:    draft.OutPoint,
		Transform:   transform,
		Filter:      DefaultClipFilter(),
		Text:        draft.Text,
	}
	index, gen := w.clips.insert(c)
	id := mkClipID(index, gen)
	stored, _ := w.clips.get(index, gen)
	stored.ID = id
	stored.Animation = anim.ClipAnimation{ClipID: id.String()}

	track.ClipIDs = append(track.ClipIDs, id)
	sortClipIDs(track.ClipIDs, w)

	w.bus.publish(EventClipAdded, id)
	return *stored, nil
}

// clipsOf resolves a track's clip IDs to Clip values.
func (w *World) clipsOf(t *Track) []Clip {
	out := make([]Clip, 0, len(t.ClipIDs))
	for _, cid := range t.ClipIDs {
		if c, ok := w.clips.get(cid.h.index, cid.h.generation); ok {
			out = append(out, *c)
		}
	}
	return out
}

// resolveOverlap returns the earliest start >= requested that does not
// overlap any existing clip, by repeatedly sliding past whichever clip it
// collides with.
func resolveOverlap(existing []Clip, requestedStart, duration float64) float64 {
	sort.Slice(existing, func(i, j int) bool { return existing[i].StartTime < existing[j].StartTime })
	start := requestedStart
	for {
		moved := false
		for _, c := range existing {
			if c.Overlaps(start, duration) {
				start = c.End()
				moved = true
			}
		}
		if !moved {
			return start
		}
	}
}

func sortClipIDs(ids []ClipID, w *World) {
	sort.Slice(ids, func(i, j int) bool {
		ci, _ := w.clips.get(ids[i].h.index, ids[i].h.generation)
		cj, _ := w.clips.get(ids[j].h.index, ids[j].h.generation)
		if ci == nil || cj == nil {
			return false
		}
		return ci.StartTime < cj.StartTime
	})
}

// removeClipEntity deletes a clip, its effects, and any transition that
// references it, without touching the owning track's ClipIDs slice (the
// caller is expected to do that, or be deleting the whole track).
func (w *World) removeClipEntity(id ClipID) {
	c, ok := w.clips.get(id.h.index, id.h.generation)
	if !ok {
		return
	}
	for _, eff := range c.Effects {
		w.effects.remove(eff.ID.h.index, eff.ID.h.generation)
	}
	for _, sub := range c.Subtitles {
		w.subtitles.remove(sub.ID.h.index, sub.ID.h.generation)
	}
	w.transitions.forEach(func(idx, gen uint32, tr *Transition) {
		if tr.ClipA == id || tr.ClipB == id {
			w.transitions.remove(idx, gen)
		}
	})
	w.clips.remove(id.h.index, id.h.generation)
}

// RemoveClipDirect deletes a clip (and its effects/transitions) and detaches
// it from its track.
func (w *World) RemoveClipDirect(id ClipID) error {
	c, ok := w.clips.get(id.h.index, id.h.generation)
	if !ok {
		return fmt.Errorf("remove clip %s: %w", id, ErrUnknownID)
	}
	track, ok := w.tracks.get(c.TrackID.h.index, c.TrackID.h.generation)
	if ok {
		track.ClipIDs = removeClipID(track.ClipIDs, id)
	}
	w.removeClipEntity(id)
	w.bus.publish(EventClipRemoved, id)
	return nil
}

func removeClipID(ids []ClipID, target ClipID) []ClipID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Clip looks up a clip by ID.
func (w *World) Clip(id ClipID) (Clip, bool) {
	c, ok := w.clips.get(id.h.index, id.h.generation)
	if !ok {
		return Clip{}, false
	}
	return *c, true
}

// UpdateClipDirect applies fn to the clip's live value in place. fn must
// not change TrackID or ID (use MoveClipToTrackDirect for that).
func (w *World) UpdateClipDirect(id ClipID, fn func(*Clip)) error {
	c, ok := w.clips.get(id.h.index, id.h.generation)
	if !ok {
		return fmt.Errorf("update clip %s: %w", id, ErrUnknownID)
	}
	fn(c)
	w.bus.publish(EventClipUpdated, id)
	return nil
}

// MoveClipDirect relocates a clip within its own track, resolving overlap
// the same way AddClipDirect does.
func (w *World) MoveClipDirect(id ClipID, newStart float64) (float64, error) {
	c, ok := w.clips.get(id.h.index, id.h.generation)
	if !ok {
		return 0, fmt.Errorf("move clip %s: %w", id, ErrUnknownID)
	}
	track, _ := w.tracks.get(c.TrackID.h.index, c.TrackID.h.generation)
	others := excludeClip(w.clipsOf(track), id)
	if newStart < 0 {
		newStart = 0
	}
	start := resolveOverlap(others, newStart, c.Duration)
	c.StartTime = start
	sortClipIDs(track.ClipIDs, w)
	w.bus.publish(EventClipMoved, id)
	return start, nil
}

func excludeClip(clips []Clip, id ClipID) []Clip {
	out := make([]Clip, 0, len(clips))
	for _, c := range clips {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// MoveClipToTrackDirect moves a clip to a different track, optionally with
// a new start time (nil keeps the current start, subject to overlap
// resolution on the destination track).
func (w *World) MoveClipToTrackDirect(id ClipID, destTrack TrackID, newStart *float64) error {
	c, ok := w.clips.get(id.h.index, id.h.generation)
	if !ok {
		return fmt.Errorf("move clip %s: %w", id, ErrUnknownID)
	}
	dest, ok := w.tracks.get(destTrack.h.index, destTrack.h.generation)
	if !ok {
		return fmt.Errorf("move clip %s to track %s: %w", id, destTrack, ErrUnknownID)
	}
	src, _ := w.tracks.get(c.TrackID.h.index, c.TrackID.h.generation)
	if src != nil {
		src.ClipIDs = removeClipID(src.ClipIDs, id)
	}

	start := c.StartTime
	if newStart != nil {
		start = *newStart
	}
	start = resolveOverlap(w.clipsOf(dest), start, c.Duration)

	c.TrackID = destTrack
	c.StartTime = start
	dest.ClipIDs = append(dest.ClipIDs, id)
	sortClipIDs(dest.ClipIDs, w)
	w.bus.publish(EventClipMoved, id)
	return nil
}

// SplitClipDirect splits the clip at splitTime (clip-relative, so absolute
// time is clip.StartTime+splitTime if the caller passes an absolute time
// through clip.TimeInClip first). splitTime must lie strictly inside
// (0, clip.Duration). Returns the two resulting clips with contiguous time
// coverage equal to the original (spec.md 8).
func (w *World) SplitClipDirect(id ClipID, splitTime float64) (Clip, Clip, error) {
	c, ok := w.clips.get(id.h.index, id.h.generation)
	if !ok {
		return Clip{}, Clip{}, fmt.Errorf("split clip %s: %w", id, ErrUnknownID)
	}
	if splitTime <= 0 || splitTime >= c.Duration {
		return Clip{}, Clip{}, fmt.Errorf("split clip %s at %v: %w", id, splitTime, ErrInvalidRange)
	}

	original := *c
	track, _ := w.tracks.get(original.TrackID.h.index, original.TrackID.h.generation)
	track.ClipIDs = removeClipID(track.ClipIDs, id)
	w.removeClipEntity(id)

	left, err := w.AddClipDirect(original.TrackID, ClipDraft{
		MaterialID:  original.MaterialID,
		HasMaterial: original.HasMaterial,
		StartTime:   original.StartTime,
		Duration:    splitTime,
		InPoint:     original.InPoint,
		OutPoint:    original.InPoint + splitTime,
		Transform:   original.Transform,
		Text:        original.Text,
	})
	if err != nil {
		return Clip{}, Clip{}, err
	}
	right, err := w.AddClipDirect(original.TrackID, ClipDraft{
		MaterialID:  original.MaterialID,
		HasMaterial: original.HasMaterial,
		StartTime:   original.StartTime + splitTime,
		Duration:    original.Duration - splitTime,
		InPoint:     original.InPoint + splitTime,
		OutPoint:    original.OutPoint,
		Transform:   original.Transform,
		Text:        original.Text,
	})
	if err != nil {
		w.RemoveClipDirect(left.ID)
		return Clip{}, Clip{}, err
	}

	w.bus.publish(EventClipSplit, id)
	return left, right, nil
}

// --- Effects ---

// AddEffectDirect attaches a new effect instance to clipID, assigning it
// the next unique Order within that clip.
func (w *World) AddEffectDirect(clipID ClipID, kind EffectKind, startTime, duration float64) (EffectInstance, error) {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return EffectInstance{}, fmt.Errorf("add effect on %s: %w", clipID, ErrUnknownID)
	}
	if duration < 0 {
		duration = 0
	}
	if startTime < 0 {
		startTime = 0
	}
	if startTime+duration > c.Duration {
		duration = c.Duration - startTime
	}

	order := 0
	for _, e := range c.Effects {
		if e.Order >= order {
			order = e.Order + 1
		}
	}

	eff := EffectInstance{
		Kind:      kind,
		StartTime: startTime,
		Duration:  duration,
		Intensity: 1.0,
		Params:    map[string]float64{},
		Enabled:   true,
		Order:     order,
	}
	index, gen := w.effects.insert(eff)
	id := mkEffectID(index, gen)
	stored, _ := w.effects.get(index, gen)
	stored.ID = id

	c.Effects = append(c.Effects, *stored)
	w.bus.publish(EventEffectAdded, id)
	return *stored, nil
}

// RemoveEffectDirect detaches and deletes an effect instance from clipID.
func (w *World) RemoveEffectDirect(clipID ClipID, effectID EffectID) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("remove effect: clip %s: %w", clipID, ErrUnknownID)
	}
	found := false
	for i, e := range c.Effects {
		if e.ID == effectID {
			c.Effects = append(c.Effects[:i], c.Effects[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("remove effect %s: %w", effectID, ErrUnknownID)
	}
	w.effects.remove(effectID.h.index, effectID.h.generation)
	w.bus.publish(EventEffectRemoved, effectID)
	return nil
}

// UpdateEffectDirect applies fn to the effect instance in place, on both
// the clip's own copy and the effects arena's copy (kept in sync since
// Clip.Effects stores values, not handles, for cache-friendly iteration
// during rendering).
func (w *World) UpdateEffectDirect(clipID ClipID, effectID EffectID, fn func(*EffectInstance)) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("update effect: clip %s: %w", clipID, ErrUnknownID)
	}
	for i := range c.Effects {
		if c.Effects[i].ID == effectID {
			fn(&c.Effects[i])
			if stored, ok := w.effects.get(effectID.h.index, effectID.h.generation); ok {
				*stored = c.Effects[i]
			}
			w.bus.publish(EventEffectUpdated, effectID)
			return nil
		}
	}
	return fmt.Errorf("update effect %s: %w", effectID, ErrUnknownID)
}

// UpdateEffectParamDirect sets a single named parameter on an effect
// instance.
func (w *World) UpdateEffectParamDirect(clipID ClipID, effectID EffectID, name string, value float64) error {
	return w.UpdateEffectDirect(clipID, effectID, func(e *EffectInstance) {
		if e.Params == nil {
			e.Params = map[string]float64{}
		}
		e.Params[name] = value
	})
}

// ToggleEffectDirect flips an effect instance's Enabled flag.
func (w *World) ToggleEffectDirect(clipID ClipID, effectID EffectID) (bool, error) {
	var result bool
	err := w.UpdateEffectDirect(clipID, effectID, func(e *EffectInstance) {
		e.Enabled = !e.Enabled
		result = e.Enabled
	})
	return result, err
}

// ReorderEffectsDirect assigns Order to each effect in ids' order (must be
// exactly the set of effect IDs already on the clip).
func (w *World) ReorderEffectsDirect(clipID ClipID, ids []EffectID) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("reorder effects: clip %s: %w", clipID, ErrUnknownID)
	}
	if len(ids) != len(c.Effects) {
		return fmt.Errorf("reorder effects %s: wrong id count: %w", clipID, ErrInvalidRange)
	}
	order := make(map[EffectID]int, len(ids))
	for i, id := range ids {
		order[id] = i
	}
	for i := range c.Effects {
		o, ok := order[c.Effects[i].ID]
		if !ok {
			return fmt.Errorf("reorder effects %s: unknown effect id: %w", clipID, ErrUnknownID)
		}
		c.Effects[i].Order = o
		if stored, ok := w.effects.get(c.Effects[i].ID.h.index, c.Effects[i].ID.h.generation); ok {
			stored.Order = o
		}
	}
	sort.Slice(c.Effects, func(i, j int) bool { return c.Effects[i].Order < c.Effects[j].Order })
	return nil
}

// --- Subtitles ---

// AddSubtitleDirect attaches a new caption cue to clipID.
func (w *World) AddSubtitleDirect(clipID ClipID, text string, startTime, duration float64, style SubtitleStyle) (Subtitle, error) {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return Subtitle{}, fmt.Errorf("add subtitle on %s: %w", clipID, ErrUnknownID)
	}
	if duration < 0 {
		duration = 0
	}
	if startTime < 0 {
		startTime = 0
	}
	if startTime+duration > c.Duration {
		duration = c.Duration - startTime
	}

	sub := Subtitle{
		ClipID:    clipID,
		Text:      text,
		StartTime: startTime,
		Duration:  duration,
		Style:     style,
	}
	index, gen := w.subtitles.insert(sub)
	id := mkSubtitleID(index, gen)
	stored, _ := w.subtitles.get(index, gen)
	stored.ID = id

	c.Subtitles = append(c.Subtitles, *stored)
	w.bus.publish(EventSubtitleAdded, id)
	return *stored, nil
}

// RemoveSubtitleDirect detaches and deletes a caption cue from clipID.
func (w *World) RemoveSubtitleDirect(clipID ClipID, subtitleID SubtitleID) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("remove subtitle: clip %s: %w", clipID, ErrUnknownID)
	}
	found := false
	for i, s := range c.Subtitles {
		if s.ID == subtitleID {
			c.Subtitles = append(c.Subtitles[:i], c.Subtitles[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("remove subtitle %s: %w", subtitleID, ErrUnknownID)
	}
	w.subtitles.remove(subtitleID.h.index, subtitleID.h.generation)
	w.bus.publish(EventSubtitleRemoved, subtitleID)
	return nil
}

// UpdateSubtitleDirect applies fn to the cue in place, on both the clip's
// own copy and the subtitles arena's copy (same dual-write discipline as
// UpdateEffectDirect).
func (w *World) UpdateSubtitleDirect(clipID ClipID, subtitleID SubtitleID, fn func(*Subtitle)) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("update subtitle: clip %s: %w", clipID, ErrUnknownID)
	}
	for i := range c.Subtitles {
		if c.Subtitles[i].ID == subtitleID {
			fn(&c.Subtitles[i])
			if stored, ok := w.subtitles.get(subtitleID.h.index, subtitleID.h.generation); ok {
				*stored = c.Subtitles[i]
			}
			w.bus.publish(EventSubtitleUpdated, subtitleID)
			return nil
		}
	}
	return fmt.Errorf("update subtitle %s: %w", subtitleID, ErrUnknownID)
}

// --- Animation ---

// AddKeyframeDirect inserts (or, at an existing time, replaces) a keyframe
// on clipID's track for prop, creating the track if this is its first
// keyframe.
func (w *World) AddKeyframeDirect(clipID ClipID, prop anim.Property, kf anim.Keyframe) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("add keyframe: clip %s: %w", clipID, ErrUnknownID)
	}
	track := c.Animation.Track(prop)
	if track == nil {
		c.Animation.Tracks = append(c.Animation.Tracks, anim.AnimationTrack{
			Property: prop,
			Enabled:  true,
		})
		track = &c.Animation.Tracks[len(c.Animation.Tracks)-1]
	}
	track.UpsertKeyframe(kf)
	w.bus.publish(EventKeyframeAdded, clipID)
	return nil
}

// RemoveKeyframeDirect removes the keyframe with keyframeID from clipID's
// track for prop.
func (w *World) RemoveKeyframeDirect(clipID ClipID, prop anim.Property, keyframeID string) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("remove keyframe: clip %s: %w", clipID, ErrUnknownID)
	}
	track := c.Animation.Track(prop)
	if track == nil || !track.RemoveKeyframe(keyframeID) {
		return fmt.Errorf("remove keyframe %s: %w", keyframeID, ErrUnknownID)
	}
	w.bus.publish(EventKeyframeRemoved, clipID)
	return nil
}

// UpdateKeyframeDirect applies fn to the live keyframe with keyframeID on
// clipID's track for prop. fn may change Time; the track is re-sorted
// afterward to preserve the strictly-time-ordered invariant.
func (w *World) UpdateKeyframeDirect(clipID ClipID, prop anim.Property, keyframeID string, fn func(*anim.Keyframe)) error {
	c, ok := w.clips.get(clipID.h.index, clipID.h.generation)
	if !ok {
		return fmt.Errorf("update keyframe: clip %s: %w", clipID, ErrUnknownID)
	}
	track := c.Animation.Track(prop)
	if track == nil {
		return fmt.Errorf("update keyframe %s: %w", keyframeID, ErrUnknownID)
	}
	for i := range track.Keyframes {
		if track.Keyframes[i].ID == keyframeID {
			updated := track.Keyframes[i]
			fn(&updated)
			track.RemoveKeyframe(keyframeID)
			track.UpsertKeyframe(updated)
			w.bus.publish(EventKeyframeUpdated, clipID)
			return nil
		}
	}
	return fmt.Errorf("update keyframe %s: %w", keyframeID, ErrUnknownID)
}

// --- Transitions ---

// AddTransitionDirect creates a transition between clipA and clipB. Both
// clips must be on the same track (cross-track transitions are left
// undefined by spec.md 9 and refused here), and at most one transition may
// exist per ordered pair.
func (w *World) AddTransitionDirect(clipA, clipB ClipID, typ TransitionType, duration float64) (Transition, error) {
	a, ok := w.clips.get(clipA.h.index, clipA.h.generation)
	if !ok {
		return Transition{}, fmt.Errorf("add transition: clip %s: %w", clipA, ErrUnknownID)
	}
	b, ok := w.clips.get(clipB.h.index, clipB.h.generation)
	if !ok {
		return Transition{}, fmt.Errorf("add transition: clip %s: %w", clipB, ErrUnknownID)
	}
	if a.TrackID != b.TrackID {
		return Transition{}, fmt.Errorf("add transition %s->%s: %w", clipA, clipB, ErrCrossTrack)
	}
	if duration > a.Duration || duration > b.Duration {
		return Transition{}, fmt.Errorf("add transition %s->%s: duration %v exceeds a clip's own duration: %w", clipA, clipB, duration, ErrInvalidRange)
	}

	var conflict bool
	w.transitions.forEach(func(_, _ uint32, tr *Transition) {
		if tr.ClipA == clipA && tr.ClipB == clipB {
			conflict = true
		}
	})
	if conflict {
		return Transition{}, fmt.Errorf("add transition %s->%s: %w", clipA, clipB, ErrDuplicateEdge)
	}

	tr := Transition{ClipA: clipA, ClipB: clipB, Type: typ, Duration: duration}
	index, gen := w.transitions.insert(tr)
	id := mkTransitionID(index, gen)
	stored, _ := w.transitions.get(index, gen)
	stored.ID = id
	w.bus.publish(EventTransitionAdded, id)
	return *stored, nil
}

// RemoveTransitionDirect deletes a transition by ID.
func (w *World) RemoveTransitionDirect(id TransitionID) error {
	if !w.transitions.remove(id.h.index, id.h.generation) {
		return fmt.Errorf("remove transition %s: %w", id, ErrUnknownID)
	}
	w.bus.publish(EventTransitionRemoved, id)
	return nil
}

// Transition looks up a transition by ID.
func (w *World) Transition(id TransitionID) (Transition, bool) {
	tr, ok := w.transitions.get(id.h.index, id.h.generation)
	if !ok {
		return Transition{}, false
	}
	return *tr, true
}

// Transitions returns every live transition, for callers that need to scan
// all of them (the Playback Scheduler's warmup priority pass ranks
// transition-adjacent clips above ordinary lookahead/lookbehind clips,
// spec.md 4.5 "Warmup" step 1).
func (w *World) Transitions() []Transition {
	var out []Transition
	w.transitions.forEach(func(_, _ uint32, tr *Transition) {
		out = append(out, *tr)
	})
	return out
}

// --- Project-level direct mutators ---

// SetCanvasSizeDirect updates the project's canvas dimensions.
func (w *World) SetCanvasSizeDirect(width, height int) { w.CanvasWidth, w.CanvasHeight = width, height }

// SetFrameRateDirect updates the project's frame rate.
func (w *World) SetFrameRateDirect(rate float64) { w.FrameRate = rate }

// RenameDirect updates the project's display name.
func (w *World) RenameDirect(name string) { w.Name = name }
