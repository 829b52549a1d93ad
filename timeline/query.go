package timeline

// ActiveClips returns every clip across every track whose
// [StartTime, StartTime+Duration) window contains t, in clip arena order.
// Because tracks enforce non-overlap, at most one of the returned clips
// belongs to any given video track; multiple sticker/text/audio tracks may
// each contribute one.
func (w *World) ActiveClips(t float64) []Clip {
	var out []Clip
	w.clips.forEach(func(_, _ uint32, c *Clip) {
		if t >= c.StartTime && t < c.End() {
			out = append(out, *c)
		}
	})
	return out
}

// ActiveClipOnTrack returns the single clip active at t on track, if any.
func (w *World) ActiveClipOnTrack(track TrackID, t float64) (Clip, bool) {
	tr, ok := w.tracks.get(track.h.index, track.h.generation)
	if !ok {
		return Clip{}, false
	}
	for _, cid := range tr.ClipIDs {
		if c, ok := w.clips.get(cid.h.index, cid.h.generation); ok {
			if t >= c.StartTime && t < c.End() {
				return *c, true
			}
		}
	}
	return Clip{}, false
}

// ActiveClipsByKind returns every clip active at t whose track is of the
// given kind.
func (w *World) ActiveClipsByKind(kind TrackKind, t float64) []Clip {
	var out []Clip
	w.tracks.forEach(func(_, _ uint32, tr *Track) {
		if tr.Kind != kind {
			return
		}
		for _, cid := range tr.ClipIDs {
			if c, ok := w.clips.get(cid.h.index, cid.h.generation); ok {
				if t >= c.StartTime && t < c.End() {
					out = append(out, *c)
				}
			}
		}
	})
	return out
}

// TransitionAt returns the transition active at timeline time t, if any,
// along with its current progress in [0,1]. A transition (A,B) is active
// over [B.StartTime-Duration/2, B.StartTime+Duration/2) (spec.md 4.4
// step 2).
func (w *World) TransitionAt(t float64) (Transition, float64, bool) {
	var found Transition
	var progress float64
	var ok bool
	w.transitions.forEach(func(_, _ uint32, tr *Transition) {
		if ok {
			return
		}
		b, exists := w.clips.get(tr.ClipB.h.index, tr.ClipB.h.generation)
		if !exists {
			return
		}
		start, end := tr.ActiveRegion(b.StartTime)
		if t >= start && t < end {
			found = *tr
			progress = tr.Progress(t, b.StartTime)
			ok = true
		}
	})
	return found, progress, ok
}

// ActiveSubtitles returns every subtitle cue active at timeline time t,
// resolved against the owning clip's own window and the cue's clip-relative
// StartTime/Duration (spec.md 4.4 step 8 "Subtitle Renderer").
func (w *World) ActiveSubtitles(t float64) []Subtitle {
	var out []Subtitle
	w.clips.forEach(func(_, _ uint32, c *Clip) {
		if t < c.StartTime || t >= c.End() {
			return
		}
		timeInClip := c.TimeInClip(t)
		for _, s := range c.Subtitles {
			if s.ActiveAt(timeInClip) {
				out = append(out, s)
			}
		}
	})
	return out
}

// Duration returns the timeline's overall duration: the maximum End() over
// every live clip.
func (w *World) Duration() float64 {
	var max float64
	w.clips.forEach(func(_, _ uint32, c *Clip) {
		if e := c.End(); e > max {
			max = e
		}
	})
	return max
}
