package anim

import "sort"

// Property identifies which transform component an AnimationTrack drives.
type Property uint8

const (
	PositionX Property = iota
	PositionY
	Scale // overrides ScaleX/ScaleY uniformly when present and enabled
	ScaleX
	ScaleY
	Rotation // degrees; converted to radians at the final evaluation step
	Opacity
	AnchorX
	AnchorY
)

// defaultValue returns the property's rest value when no keyframes exist.
func (p Property) defaultValue() float64 {
	switch p {
	case Scale, ScaleX, ScaleY:
		return 1
	case Opacity:
		return 1
	default:
		return 0
	}
}

// Keyframe is a single (time, value, easing) sample. Time is relative to
// clip start, in seconds.
type Keyframe struct {
	ID     string
	Time   float64
	Value  float64
	Easing Easing
}

// AnimationTrack is the ordered set of keyframes driving one property of
// one clip. Keyframes are kept strictly time-sorted; a keyframe inserted
// at an existing time replaces that keyframe rather than duplicating it.
type AnimationTrack struct {
	ID         string
	Property   Property
	Keyframes  []Keyframe
	Enabled    bool
}

// ClipAnimation groups all animation tracks attached to one clip.
type ClipAnimation struct {
	ClipID string
	Tracks []AnimationTrack
}

// HasActiveTracks reports whether any track is enabled and has at least
// one keyframe (the condition the Composition Pipeline checks to decide
// between the ANIMATED and BASIC/TRANSITION dispatch paths).
func (c *ClipAnimation) HasActiveTracks() bool {
	for _, t := range c.Tracks {
		if t.Enabled && len(t.Keyframes) > 0 {
			return true
		}
	}
	return false
}

// Track returns the track for prop, or nil if none exists.
func (c *ClipAnimation) Track(prop Property) *AnimationTrack {
	for i := range c.Tracks {
		if c.Tracks[i].Property == prop {
			return &c.Tracks[i]
		}
	}
	return nil
}

// UpsertKeyframe inserts kf in time order, or replaces the keyframe at the
// same time if one already exists (spec invariant: identical time replaces,
// never duplicates).
func (t *AnimationTrack) UpsertKeyframe(kf Keyframe) {
	idx := sort.Search(len(t.Keyframes), func(i int) bool {
		return t.Keyframes[i].Time >= kf.Time
	})
	if idx < len(t.Keyframes) && t.Keyframes[idx].Time == kf.Time {
		t.Keyframes[idx] = kf
		return
	}
	t.Keyframes = append(t.Keyframes, Keyframe{})
	copy(t.Keyframes[idx+1:], t.Keyframes[idx:])
	t.Keyframes[idx] = kf
}

// RemoveKeyframe removes the keyframe with the given id, if present, and
// reports whether anything was removed.
func (t *AnimationTrack) RemoveKeyframe(id string) bool {
	for i, kf := range t.Keyframes {
		if kf.ID == id {
			t.Keyframes = append(t.Keyframes[:i], t.Keyframes[i+1:]...)
			return true
		}
	}
	return false
}

// binarySearchKeyframe returns the index of the largest keyframe with
// Time <= t, or -1 if every keyframe's time is greater than t (or the
// track is empty). O(log n).
func binarySearchKeyframe(kfs []Keyframe, t float64) int {
	if len(kfs) == 0 {
		return -1
	}
	// sort.Search finds the first index for which kfs[i].Time > t; the
	// answer is one less than that.
	idx := sort.Search(len(kfs), func(i int) bool {
		return kfs[i].Time > t
	})
	return idx - 1
}
