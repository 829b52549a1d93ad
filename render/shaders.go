package render

// Kage shader sources for the four core programs (spec.md 4.2/4.4/4.6).
// Ebitengine uses premultiplied alpha; the BASIC and ANIMATED fragments
// un-premultiply before filter math and re-premultiply on the way out, the
// same discipline colorMatrixShaderSrc/paletteShaderSrc use (filter.go).
// TRANSITION mixes its premultiplied samples directly, and OVERLAY scales
// its premultiplied sample by Opacity.
//
// The brightness/contrast/saturation/hue filter block is duplicated
// verbatim across basicShaderSrc and animatedShaderSrc rather than shared,
// since Kage has no import mechanism between shader programs (each compiles
// as an independent `package main`). Both programs declare a Blur uniform,
// but the block does not read it, so the Blur value has no effect on the
// output.

const filterBlockSrc = `
	// Brightness.
	c.rgb += Brightness
	// Contrast.
	c.rgb = (c.rgb-0.5)*Contrast + 0.5
	// Saturation.
	lum := dot(c.rgb, vec3(0.299, 0.587, 0.114))
	c.rgb = mix(vec3(lum), c.rgb, Saturation)
	// Hue rotate (fractional turn, applied via a YIQ-style rotation).
	angle := Hue * 6.28318530718
	u := cos(angle)
	w := sin(angle)
	hueMat := mat3(
		0.299+0.701*u+0.168*w, 0.587-0.587*u+0.330*w, 0.114-0.114*u-0.497*w,
		0.299-0.299*u-0.328*w, 0.587+0.413*u+0.035*w, 0.114-0.114*u+0.292*w,
		0.299-0.300*u+1.250*w, 0.587-0.588*u-1.050*w, 0.114+0.886*u-0.203*w,
	)
	c.rgb = hueMat * c.rgb
	c.rgb = clamp(c.rgb, 0, 1)
`

const basicShaderSrc = `//kage:unit pixels
package main

var Brightness float
var Contrast float
var Saturation float
var Hue float
var Blur float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a <= 0 {
		return vec4(0)
	}
	c.rgb /= c.a
` + filterBlockSrc + `
	return vec4(c.rgb*c.a, c.a)
}
`

// animatedShaderSrc declares a custom Vertex entry point so the clip's
// synthesized 4x4 matrix (Transform) actually moves geometry: Kage dispatches
// Vertex once per quad corner before Fragment runs, which is the only place
// an arbitrary affine/perspective transform can act on a DrawRectShader quad
// (there is no dst-rect reshaping hook inside Fragment itself).
const animatedShaderSrc = `//kage:unit pixels
package main

var Transform mat4
var Resolution vec2
var Opacity float
var Brightness float
var Contrast float
var Saturation float
var Hue float
var Blur float

func Vertex(position vec2, texCoord vec2, color vec4) (vec4, vec2, vec4) {
	p := Transform * vec4(position, 0, 1)
	ndc := p.xy/Resolution*2 - 1
	ndc.y = -ndc.y
	return vec4(ndc*p.w, 0, p.w), texCoord, color
}

func Fragment(position vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a <= 0 {
		return vec4(0)
	}
	c.rgb /= c.a
` + filterBlockSrc + `
	a := c.a * Opacity
	return vec4(c.rgb*a, a)
}
`

// transitionShaderSrc branches on TransitionType (spec.md 4.4 step 3
// enumeration: fade=0, dissolve=1, slideLeft=2, slideRight=3, wipe=4,
// zoom=5, blur=6, slideUp=7, slideDown=8). fade and dissolve share the
// same crossfade math; slide/wipe/zoom offset the sampling coordinate of
// one or both textures; blur is composed at the Go level by pre-blurring
// textureB before this shader runs (see composition package) rather than
// inside the shader, since a real Gaussian/Kawase blur needs multiple
// passes over distinct image sizes that a single Fragment invocation
// cannot perform.
const transitionShaderSrc = `//kage:unit pixels
package main

var Progress float
var TransitionType int
var Resolution vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	uvA := src
	uvB := src

	if TransitionType == 2 { // slideLeft
		uvB = src + vec2(Resolution.x*(1-Progress), 0)
		uvA = src - vec2(Resolution.x*Progress, 0)
	} else if TransitionType == 3 { // slideRight
		uvB = src - vec2(Resolution.x*(1-Progress), 0)
		uvA = src + vec2(Resolution.x*Progress, 0)
	} else if TransitionType == 7 { // slideUp
		uvB = src + vec2(0, Resolution.y*(1-Progress))
		uvA = src - vec2(0, Resolution.y*Progress)
	} else if TransitionType == 8 { // slideDown
		uvB = src - vec2(0, Resolution.y*(1-Progress))
		uvA = src + vec2(0, Resolution.y*Progress)
	}

	inBoundsA := uvA.x >= 0 && uvA.x < Resolution.x && uvA.y >= 0 && uvA.y < Resolution.y
	inBoundsB := uvB.x >= 0 && uvB.x < Resolution.x && uvB.y >= 0 && uvB.y < Resolution.y

	var a vec4
	var b vec4
	if inBoundsA {
		a = imageSrc0At(uvA)
	}
	if inBoundsB {
		b = imageSrc1At(uvB)
	}

	if TransitionType == 4 { // wipe
		if src.x/Resolution.x < Progress {
			return b
		}
		return a
	}
	if TransitionType == 5 { // zoom
		center := Resolution * 0.5
		scale := 1 + Progress*0.5
		zuv := center + (src-center)/scale
		if zuv.x >= 0 && zuv.x < Resolution.x && zuv.y >= 0 && zuv.y < Resolution.y {
			b = imageSrc1At(zuv)
		} else {
			b = vec4(0)
		}
		return mix(a, b, Progress)
	}

	// fade, dissolve, blur-crossfade, and the slide variants all resolve
	// to a linear mix once their sampling coordinates are set above.
	return mix(a, b, Progress)
}
`

const overlayShaderSrc = `//kage:unit pixels
package main

var Resolution vec2
var ImgSize vec2
var Translation vec2
var Scale vec2
var Rotation float
var Opacity float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	a := c.a * Opacity
	return vec4(c.rgb*Opacity, a)
}
`
