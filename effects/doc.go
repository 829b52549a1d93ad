// Package effects implements the Effect Chain Engine: a ping-pong framebuffer
// chain that draws a clip's active EffectInstance list, in order, through a
// set of built-in Kage fragment programs (flash, shake, glitch, radialBlur,
// chromatic, pixelate, invert, filmGrain, vignette, splitScreen).
//
// A Chain owns its own program cache and pair of same-size FBOs, kept
// independent of the render.Context's own scratch buffers so the effect
// chain never collides with the main pipeline's dynamic geometry (spec.md
// 4.3 "independent static geometry buffers").
package effects
