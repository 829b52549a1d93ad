package timeline

// EffectKind enumerates the Effect Chain Engine's built-in programs.
type EffectKind uint8

const (
	EffectFlash EffectKind = iota
	EffectShake
	EffectGlitch
	EffectRadialBlur
	EffectChromatic
	EffectPixelate
	EffectInvert
	EffectFilmGrain
	EffectVignette
	EffectSplitScreen
)

// EnvelopeKind selects the intensity ramp shape for an effect's enter or
// exit transition (spec.md 4.3).
type EnvelopeKind uint8

const (
	EnvelopeNone EnvelopeKind = iota
	EnvelopeFade                // linear
	EnvelopeEaseIn               // t^2
	EnvelopeEaseOut              // 1-(1-t)^2
	EnvelopeEaseInOut            // piecewise cubic
	EnvelopeBounce                // 4-piece quadratic
)

// EffectTransition configures one side (enter or exit) of an effect's
// intensity envelope.
type EffectTransition struct {
	Kind     EnvelopeKind
	Duration float64 // seconds
}

// EffectInstance is one effect attached to a clip, active over a sub-range
// of the clip's own timeline.
type EffectInstance struct {
	ID        EffectID
	Kind      EffectKind
	StartTime float64 // relative to clip start
	Duration  float64
	Intensity float64 // base_intensity, multiplied by the enter/exit envelope
	Params    map[string]float64
	Enter     EffectTransition
	Exit      EffectTransition
	Enabled   bool
	Order     int
}

// ActiveAt reports whether the effect is enabled and timeInClip falls
// within its [StartTime, StartTime+Duration] window (spec.md 4.3 step 1).
func (e EffectInstance) ActiveAt(timeInClip float64) bool {
	return e.Enabled && timeInClip >= e.StartTime && timeInClip <= e.StartTime+e.Duration
}
