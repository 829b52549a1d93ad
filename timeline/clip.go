package timeline

import "github.com/kaelstudio/motif/anim"

// Clip is one instance of a Material placed on a Track.
//
// Invariants (enforced by the World's insert/move/drop operations, never by
// the zero value alone): Duration > 0; 0 <= InPoint <= OutPoint <=
// material.Duration; StartTime >= 0; within a track, no two clips overlap
// in [StartTime, StartTime+Duration).
type Clip struct {
	ID         ClipID
	TrackID    TrackID
	MaterialID MaterialID // zero value means materialless (text/sticker clip)
	HasMaterial bool

	StartTime float64 // timeline seconds
	Duration  float64
	InPoint   float64 // source seconds
	OutPoint  float64

	Effects   []EffectInstance
	Subtitles []Subtitle
	Transform StaticTransform // static fallback when Animation has no active tracks
	Filter    ClipFilter      // brightness/contrast/saturation/hue/blur, applied by the BASIC and ANIMATED programs
	Animation anim.ClipAnimation

	Text string // materialless text-clip content; empty otherwise
}

// End returns StartTime + Duration, the clip's exclusive end time.
func (c Clip) End() float64 { return c.StartTime + c.Duration }

// Overlaps reports whether c's time range intersects [start, start+duration).
func (c Clip) Overlaps(start, duration float64) bool {
	end := start + duration
	return c.StartTime < end && start < c.End()
}

// TimeInClip converts a timeline time into the clip-relative time used by
// the Animation Evaluator and effect windows.
func (c Clip) TimeInClip(timelineTime float64) float64 {
	return timelineTime - c.StartTime
}

// SourceTime converts a timeline time into source media seconds.
func (c Clip) SourceTime(timelineTime float64) float64 {
	return c.InPoint + c.TimeInClip(timelineTime)
}
