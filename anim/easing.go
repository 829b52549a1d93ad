package anim

import "github.com/tanema/gween/ease"

// EasingKind selects a closed-form preset or the cubicBezier variant.
type EasingKind uint8

const (
	EaseLinear EasingKind = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseInQuad
	EaseOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInBack
	EaseOutBack
	EaseOutElastic
	EaseCubicBezier
)

// Easing is a tagged variant: a named preset, or a cubicBezier with four
// control coordinates in [0,1]x R (the y coordinates are allowed to
// overshoot [0,1], as with easeOutElastic/easeOutBack-style curves).
type Easing struct {
	Kind EasingKind
	// X1, Y1, X2, Y2 are the bezier control points; only meaningful when
	// Kind == EaseCubicBezier.
	X1, Y1, X2, Y2 float64
}

// Linear is the zero-value easing: no asymptote, p maps to p.
var Linear = Easing{Kind: EaseLinear}

// presetFuncs maps a preset kind to the closed-form gween/ease TweenFunc
// that implements it. gween's TweenFunc signature is (t, b, c, d) -> value;
// calling fn(p, 0, 1, 1) evaluates the normalized curve at progress p.
var presetFuncs = map[EasingKind]ease.TweenFunc{
	EaseIn:         ease.InQuad,
	EaseOut:        ease.OutQuad,
	EaseInOut:      ease.InOutQuad,
	EaseInQuad:     ease.InQuad,
	EaseOutQuad:    ease.OutQuad,
	EaseInCubic:    ease.InCubic,
	EaseOutCubic:   ease.OutCubic,
	EaseInOutCubic: ease.InOutCubic,
	EaseInBack:     ease.InBack,
	EaseOutBack:    ease.OutBack,
	EaseOutElastic: ease.OutElastic,
}

// Apply maps progress p in [0,1] to an eased progress value. p <= 0 always
// yields 0, p >= 1 always yields 1 (spec invariant, holds for every preset
// and for cubicBezier regardless of control-point placement).
func (e Easing) Apply(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	if e.Kind == EaseCubicBezier {
		return evalCubicBezier(e.X1, e.Y1, e.X2, e.Y2, p)
	}
	if e.Kind == EaseLinear {
		return p
	}
	fn, ok := presetFuncs[e.Kind]
	if !ok {
		return p
	}
	return float64(fn(float32(p), 0, 1, 1))
}

// easeInOutCubic is the shared transition-progress curve used by the
// Composition Pipeline for every transition type (spec.md 4.4 step 3).
// It is exposed standalone (not routed through Easing.Apply) because
// transitions always use this one curve regardless of any per-keyframe
// easing configuration.
func easeInOutCubic(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return float64(ease.InOutCubic(float32(p), 0, 1, 1))
}

// EaseInOutCubic applies the cubic-in-out curve shared by every transition
// dispatch in the Composition Pipeline.
func EaseInOutCubic(p float64) float64 { return easeInOutCubic(p) }
