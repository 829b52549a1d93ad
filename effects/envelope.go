package effects

import (
	"github.com/tanema/gween/ease"

	"github.com/kaelstudio/motif/timeline"
)

// envelopeCurve maps a normalized progress p in [0,1] to an eased progress,
// per the five named shapes in spec.md 4.3. EnvelopeNone means "no ramp":
// the side contributes no attenuation regardless of progress.
func envelopeCurve(kind timeline.EnvelopeKind, p float64) float64 {
	if kind == timeline.EnvelopeNone {
		return 1
	}
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	switch kind {
	case timeline.EnvelopeFade:
		return p
	case timeline.EnvelopeEaseIn:
		return p * p
	case timeline.EnvelopeEaseOut:
		return 1 - (1-p)*(1-p)
	case timeline.EnvelopeEaseInOut:
		return float64(ease.InOutCubic(float32(p), 0, 1, 1))
	case timeline.EnvelopeBounce:
		return float64(ease.OutBounce(float32(p), 0, 1, 1))
	default:
		return p
	}
}

// intensityAt computes an effect's final intensity multiplier at timeInClip,
// per spec.md 4.3: base intensity times the product of the enter and exit
// envelopes. The caller is responsible for having already checked
// e.ActiveAt(timeInClip).
func intensityAt(e timeline.EffectInstance, timeInClip float64) float64 {
	enterProgress := 1.0
	if e.Enter.Duration > 0 {
		enterProgress = (timeInClip - e.StartTime) / e.Enter.Duration
	}
	exitProgress := 1.0
	if e.Exit.Duration > 0 {
		timeToEnd := (e.StartTime + e.Duration) - timeInClip
		exitProgress = timeToEnd / e.Exit.Duration
	}

	enter := envelopeCurve(e.Enter.Kind, enterProgress)
	exit := envelopeCurve(e.Exit.Kind, exitProgress)
	return e.Intensity * enter * exit
}
