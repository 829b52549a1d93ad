package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// ProgramKind identifies one of the four core programs. Effect programs are
// not listed here: the effects package keeps its own compiled programs,
// keyed by timeline.EffectKind.
type ProgramKind int

const (
	ProgramBasic ProgramKind = iota
	ProgramTransition
	ProgramOverlay
	ProgramAnimated
)

func (k ProgramKind) String() string {
	switch k {
	case ProgramBasic:
		return "BASIC"
	case ProgramTransition:
		return "TRANSITION"
	case ProgramOverlay:
		return "OVERLAY"
	case ProgramAnimated:
		return "ANIMATED"
	default:
		return fmt.Sprintf("PROGRAM(%d)", int(k))
	}
}

// Program is a compiled shader bundle: the shader handle plus the uniform
// names the caller is expected to populate. Ebitengine has no separate
// "uniform location" query the way raw GL does -- uniforms are set by name
// directly in the Uniforms map -- so UniformNames exists purely as
// documentation/validation, not a GPU resource.
type Program struct {
	Kind          ProgramKind
	Shader        *ebiten.Shader
	UniformNames  []string
}

// GetOrCreateProgram compiles src on first use and caches it under id.
// Compile failures are logged (program, reason) and return (Program{},
// false); the caller must tolerate a missing program (spec.md 4.2).
func (c *Context) GetOrCreateProgram(id ProgramKind, src string, uniformNames []string) (Program, bool) {
	if p, ok := c.programs[id]; ok {
		return p, true
	}
	shader, err := ebiten.NewShader([]byte(src))
	if err != nil {
		c.Logger.WithFields(logrus.Fields{
			"program": id.String(),
			"reason":  err.Error(),
		}).Error("render: shader compile failed")
		return Program{}, false
	}
	p := Program{Kind: id, Shader: shader, UniformNames: uniformNames}
	c.programs[id] = p
	return p, true
}

var basicUniforms = []string{"Brightness", "Contrast", "Saturation", "Hue", "Blur"}
var animatedUniforms = []string{"Transform", "Resolution", "Opacity", "Brightness", "Contrast", "Saturation", "Hue", "Blur"}
var transitionUniforms = []string{"Progress", "TransitionType", "Resolution"}
var overlayUniforms = []string{"Resolution", "ImgSize", "Translation", "Scale", "Rotation", "Opacity"}

// Basic returns (compiling if needed) the BASIC program.
func (c *Context) Basic() (Program, bool) {
	return c.GetOrCreateProgram(ProgramBasic, basicShaderSrc, basicUniforms)
}

// Animated returns (compiling if needed) the ANIMATED program.
func (c *Context) Animated() (Program, bool) {
	return c.GetOrCreateProgram(ProgramAnimated, animatedShaderSrc, animatedUniforms)
}

// Transition returns (compiling if needed) the TRANSITION program.
func (c *Context) Transition() (Program, bool) {
	return c.GetOrCreateProgram(ProgramTransition, transitionShaderSrc, transitionUniforms)
}

// Overlay returns (compiling if needed) the OVERLAY program.
func (c *Context) Overlay() (Program, bool) {
	return c.GetOrCreateProgram(ProgramOverlay, overlayShaderSrc, overlayUniforms)
}
