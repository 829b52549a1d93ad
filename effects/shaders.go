package effects

// Kage fragment shader sources for the ten built-in effect programs
// (spec.md 4.3). The programs that recolor a pixel in place (flash, invert,
// filmGrain, vignette) follow the colorMatrixShaderSrc style (filter.go):
// un-premultiply alpha before processing, clamp, re-premultiply on the way
// out. The programs that resample other pixels (glitch, radialBlur,
// chromatic, pixelate, splitScreen) combine the premultiplied samples
// directly. Every program returns transparent wherever the source pixel's
// alpha is zero (shake by passing that pixel through unchanged), so effects
// never bleed color into empty regions (spec.md 4.3 "alpha mask discipline").
//
// Every program shares the EFFECT(all) uniform catalog (Time, Resolution,
// Intensity) plus whatever per-effect uniforms are listed alongside its
// source below. Kage has no #include, so each is its own independent
// `package main`, same constraint noted in render/shaders.go for the core
// programs.

const effectCommonUniforms = `
var Time float
var Resolution vec2
var Intensity float
`

const flashShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a <= 0 {
		return vec4(0)
	}
	rgb := c.rgb / c.a
	rgb = mix(rgb, vec3(1, 1, 1), clamp(Intensity, 0, 1))
	return vec4(rgb*c.a, c.a)
}
`

// shake has no fragment-level uniforms of its own: the jitter is applied to
// the quad's vertex positions by the Chain before the draw call (spec.md 4.3
// "shake uses a time-driven vertex perturbation"), so the fragment program
// is a pass-through.
const shakeShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	return imageSrc0At(src)
}
`

const glitchShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	uv := src / Resolution
	sliceY := floor(uv.y*24) / 24
	seed := sliceY*133.7 + floor(Time*12)
	jitter := (fract(sin(seed*78.233)*43758.5453) - 0.5) * Intensity * 0.08
	shiftedUV := vec2(uv.x+jitter, uv.y)
	shiftedSrc := shiftedUV * Resolution

	r := imageSrc0At(vec2(shiftedSrc.x+Intensity*6, shiftedSrc.y)).r
	g := imageSrc0At(shiftedSrc).g
	b := imageSrc0At(vec2(shiftedSrc.x-Intensity*6, shiftedSrc.y)).b
	a := imageSrc0At(src).a
	if a <= 0 {
		return vec4(0)
	}
	return vec4(r, g, b, a)
}
`

const radialBlurShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	if imageSrc0At(src).a <= 0 {
		return vec4(0)
	}
	center := Resolution / 2
	dir := src - center
	sum := vec4(0)
	const samples = 8
	for i := 0; i < samples; i++ {
		t := float(i) / float(samples-1)
		sampleSrc := src - dir*t*Intensity*0.15
		sum += imageSrc0At(sampleSrc)
	}
	c := sum / samples
	if c.a <= 0 {
		return vec4(0)
	}
	return c
}
`

const chromaticShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	center := Resolution / 2
	dir := normalize(src - center + 0.0001)
	offset := dir * Intensity * 6

	r := imageSrc0At(src + offset).r
	g := imageSrc0At(src).g
	b := imageSrc0At(src - offset).b
	a := imageSrc0At(src).a
	if a <= 0 {
		return vec4(0)
	}
	return vec4(r, g, b, a)
}
`

const pixelateShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	if imageSrc0At(src).a <= 0 {
		return vec4(0)
	}
	blockSize := mix(1, 48, clamp(Intensity, 0, 1))
	block := floor(src/blockSize)*blockSize + blockSize*0.5
	return imageSrc0At(block)
}
`

const invertShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a <= 0 {
		return vec4(0)
	}
	rgb := c.rgb / c.a
	inverted := vec3(1, 1, 1) - rgb
	rgb = mix(rgb, inverted, clamp(Intensity, 0, 1))
	return vec4(rgb*c.a, c.a)
}
`

const filmGrainShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a <= 0 {
		return vec4(0)
	}
	seed := dot(src, vec2(12.9898, 78.233)) + Time*60
	noise := fract(sin(seed)*43758.5453) - 0.5
	rgb := c.rgb/c.a + noise*Intensity*0.3
	rgb = clamp(rgb, 0, 1)
	return vec4(rgb*c.a, c.a)
}
`

const vignetteShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a <= 0 {
		return vec4(0)
	}
	uv := src/Resolution - 0.5
	dist := length(uv) * 1.4
	vig := 1 - clamp(dist, 0, 1)*Intensity
	vig = clamp(vig, 0, 1)
	rgb := (c.rgb / c.a) * vig
	return vec4(rgb*c.a, c.a)
}
`

const splitScreenShaderSrc = `//kage:unit pixels
package main
` + effectCommonUniforms + `
func Fragment(dst vec4, src vec2, color vec4) vec4 {
	if imageSrc0At(src).a <= 0 {
		return vec4(0)
	}
	uv := src / Resolution
	splits := 1 + floor(Intensity*3)
	col := floor(uv.x * splits)
	localX := fract(uv.x * splits)
	mirrored := localX
	if int(col)%2 == 1 {
		mirrored = 1 - localX
	}
	sampleUV := vec2(mirrored, uv.y)
	return imageSrc0At(sampleUV * Resolution)
}
`
