package anim

import "math"

// mat4 layout is column-major, matching the uniform convention GPU shader
// languages expect: M[col*4+row]. Column 3 (indices 12,13,14) carries the
// translation.
type mat4 = [16]float64

// MakeMatrix synthesizes the 4x4 column-major transform matrix implementing
//
//	T(position) . T(anchor) . R(rotation) . S(scale) . T(-anchor)
//
// This is the sole source of transform math; renderers never reimplement
// it (spec.md 4.1). Derivation: applying the composed transform to a point
// p reduces to
//
//	result = R*S*(p - anchor) + anchor + position
//
// which is expanded directly into the matrix's linear and translation
// terms below rather than performing four real 4x4 multiplications -- the
// teacher's own 2D affine composition (transform.go computeLocalTransform)
// takes the same "expand algebraically, don't multiply matrices at
// runtime" approach for the analogous 2D case.
func MakeMatrix(t AnimatedTransform) [16]float64 {
	sin, cos := math.Sincos(t.RotationRadians)
	sx, sy := t.ScaleX, t.ScaleY
	ax, ay := t.AnchorX, t.AnchorY

	a := cos * sx
	b := sin * sx
	c := -sin * sy
	d := cos * sy

	tx := -a*ax - c*ay + ax + t.X
	ty := -b*ax - d*ay + ay + t.Y

	var m mat4
	m[0], m[1], m[2], m[3] = a, b, 0, 0
	m[4], m[5], m[6], m[7] = c, d, 0, 0
	m[8], m[9], m[10], m[11] = 0, 0, 1, 0
	m[12], m[13], m[14], m[15] = tx, ty, 0, 1
	return m
}
