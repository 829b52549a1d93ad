// Package anim implements the keyframe animation evaluator: a pure,
// stateless function from (animation tracks, time) to a resolved transform
// plus opacity, and the 4x4 matrix synthesis renderers use to turn that
// transform into a GPU uniform.
//
// Nothing in this package holds state across calls: [Evaluate] and
// [MakeMatrix] are safe to call from the render hot path every frame
// without any setup.
package anim
