package anim

import "math"

// AnimatedTransform is the fully resolved per-frame transform the
// Composition Pipeline feeds to the ANIMATED program.
type AnimatedTransform struct {
	X, Y             float64
	ScaleX, ScaleY   float64
	RotationRadians  float64
	Opacity          float64
	AnchorX, AnchorY float64
}

// defaultTransform is the rest pose when no animation tracks apply at all.
func defaultTransform() AnimatedTransform {
	return AnimatedTransform{
		ScaleX: 1, ScaleY: 1,
		Opacity: 1,
	}
}

// Evaluator evaluates animation tracks. It holds no fields and no state:
// every method is a pure function of its arguments, safe to call from any
// goroutine and any number of times per frame.
type Evaluator struct{}

// Evaluate resolves every track in tracks at timeInClip into a single
// AnimatedTransform. Disabled tracks and tracks with zero keyframes fall
// back to their property default.
func (Evaluator) Evaluate(tracks []AnimationTrack, timeInClip float64) AnimatedTransform {
	return Evaluate(tracks, timeInClip)
}

// Evaluate is the free-function form of Evaluator.Evaluate.
func Evaluate(tracks []AnimationTrack, timeInClip float64) AnimatedTransform {
	out := defaultTransform()

	var scaleTrack *AnimationTrack
	var scaleXSet, scaleYSet bool

	for i := range tracks {
		t := &tracks[i]
		if !t.Enabled {
			continue
		}
		if t.Property == Scale && len(t.Keyframes) > 0 {
			scaleTrack = t
			continue
		}
		v := evalTrack(t, timeInClip)
		switch t.Property {
		case PositionX:
			out.X = v
		case PositionY:
			out.Y = v
		case ScaleX:
			out.ScaleX = math.Max(0, v)
			scaleXSet = true
		case ScaleY:
			out.ScaleY = math.Max(0, v)
			scaleYSet = true
		case Rotation:
			out.RotationRadians = v * math.Pi / 180
		case Opacity:
			out.Opacity = Clamp01(v)
		case AnchorX:
			out.AnchorX = v
		case AnchorY:
			out.AnchorY = v
		}
	}

	// A non-empty, enabled `scale` track overrides scale.x/scale.y uniformly.
	if scaleTrack != nil {
		v := math.Max(0, evalTrack(scaleTrack, timeInClip))
		out.ScaleX = v
		out.ScaleY = v
	} else {
		_ = scaleXSet
		_ = scaleYSet
	}

	return out
}

// evalTrack resolves a single track's value at t using spec.md 4.1's
// lookup rule: hold before the first keyframe and after the last,
// binary-search and lerp-with-easing in between.
func evalTrack(t *AnimationTrack, timeAt float64) float64 {
	kfs := t.Keyframes
	if len(kfs) == 0 {
		return t.Property.defaultValue()
	}
	if timeAt <= kfs[0].Time {
		return kfs[0].Value
	}
	last := kfs[len(kfs)-1]
	if timeAt >= last.Time {
		return last.Value
	}

	i := binarySearchKeyframe(kfs, timeAt)
	if i < 0 || i >= len(kfs)-1 {
		// binarySearchKeyframe guarantees this is unreachable given the
		// hold checks above, but fail safe to the last known value.
		return last.Value
	}
	prev, next := kfs[i], kfs[i+1]

	denom := next.Time - prev.Time
	p := 0.0
	if denom > 0 {
		p = (timeAt - prev.Time) / denom
	}
	easedP := prev.Easing.Apply(p)
	return prev.Value + (next.Value-prev.Value)*easedP
}
