package anim

// evalCubicBezier solves x(t) = p for a cubic bezier easing curve whose
// endpoints are pinned at (0,0) and (1,1) and whose control points are
// (x1,y1) and (x2,y2), then returns y(t). No library in the retrieved
// corpus implements parametric bezier timing curves (gween/ease only
// supplies closed-form presets), so this is solved directly.
//
// The bisection runs to a 1e-6 tolerance on x, per spec. Malformed handles
// (a non-monotone x(t), e.g. x1 or x2 outside [0,1] chosen adversarially)
// still converge: bisection only requires x(t) to be continuous, not
// monotone, and the loop falls back to a clamped-linear result if it can't
// bracket p within the iteration budget.
func evalCubicBezier(x1, y1, x2, y2, p float64) float64 {
	const tolerance = 1e-6
	const maxIterations = 64

	bezierX := func(t float64) float64 { return cubicBezier1D(t, x1, x2) }
	bezierY := func(t float64) float64 { return cubicBezier1D(t, y1, y2) }

	lo, hi := 0.0, 1.0
	t := p // initial guess: bezier easing curves are usually close to linear in t vs x

	for i := 0; i < maxIterations; i++ {
		x := bezierX(t)
		diff := x - p
		if diff < tolerance && diff > -tolerance {
			return Clamp01(bezierY(t))
		}
		if diff > 0 {
			hi = t
		} else {
			lo = t
		}
		t = (lo + hi) / 2
	}
	// Non-monotone or pathological handles: fall back to clamped linear.
	return Clamp01(p)
}

// cubicBezier1D evaluates a single bezier dimension with endpoints pinned
// at 0 and 1: B(t) = 3(1-t)^2 t * c1 + 3(1-t) t^2 * c2 + t^3.
func cubicBezier1D(t, c1, c2 float64) float64 {
	mt := 1 - t
	return 3*mt*mt*t*c1 + 3*mt*t*t*c2 + t*t*t
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
