package effects

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif/timeline"
)

// Chain is the Effect Chain Engine: a ping-pong FBO pair plus a program
// cache keyed by timeline.EffectKind (spec.md 4.3), grounded directly on the
// teacher's applyFilters/filterChainPadding (filter.go).
type Chain struct {
	Logger *logrus.Logger

	width, height int
	programs      map[timeline.EffectKind]*ebiten.Shader
	ping, pong    *ebiten.Image

	vertices []ebiten.Vertex
}

var shaderSources = map[timeline.EffectKind]string{
	timeline.EffectFlash:       flashShaderSrc,
	timeline.EffectShake:       shakeShaderSrc,
	timeline.EffectGlitch:      glitchShaderSrc,
	timeline.EffectRadialBlur:  radialBlurShaderSrc,
	timeline.EffectChromatic:   chromaticShaderSrc,
	timeline.EffectPixelate:    pixelateShaderSrc,
	timeline.EffectInvert:      invertShaderSrc,
	timeline.EffectFilmGrain:   filmGrainShaderSrc,
	timeline.EffectVignette:    vignetteShaderSrc,
	timeline.EffectSplitScreen: splitScreenShaderSrc,
}

var effectNames = [...]string{
	"flash", "shake", "glitch", "radialBlur", "chromatic",
	"pixelate", "invert", "filmGrain", "vignette", "splitScreen",
}

func effectName(kind timeline.EffectKind) string {
	if int(kind) < len(effectNames) {
		return effectNames[kind]
	}
	return "unknown"
}

// NewChain constructs a Chain sized to the canvas and allocates its ping/pong
// FBOs eagerly (spec.md 4.3: "a pair of same-size color-attachment FBOs
// matching canvas dimensions").
func NewChain(width, height int, logger *logrus.Logger) *Chain {
	c := &Chain{
		Logger:   logger,
		programs: make(map[timeline.EffectKind]*ebiten.Shader, len(shaderSources)),
	}
	c.Resize(width, height)
	return c
}

// Resize destroys and recreates both FBOs at the new dimensions (spec.md 4.3
// "Resize").
func (c *Chain) Resize(width, height int) {
	if c.ping != nil {
		c.ping.Deallocate()
	}
	if c.pong != nil {
		c.pong.Deallocate()
	}
	c.width, c.height = width, height
	c.ping = ebiten.NewImage(width, height)
	c.pong = ebiten.NewImage(width, height)
}

func (c *Chain) programFor(kind timeline.EffectKind) (*ebiten.Shader, bool) {
	if s, ok := c.programs[kind]; ok {
		return s, true
	}
	src, ok := shaderSources[kind]
	if !ok {
		return nil, false
	}
	shader, err := ebiten.NewShader([]byte(src))
	if err != nil {
		c.Logger.WithFields(logrus.Fields{
			"effect": effectName(kind),
			"reason": err.Error(),
		}).Error("effects: shader compile failed")
		return nil, false
	}
	c.programs[kind] = shader
	return shader, true
}

// activeSorted filters list to enabled effects active at timeInClip and
// sorts by Order ascending (spec.md 4.3 step 1).
func activeSorted(list []timeline.EffectInstance, timeInClip float64) []timeline.EffectInstance {
	active := make([]timeline.EffectInstance, 0, len(list))
	for _, e := range list {
		if e.ActiveAt(timeInClip) {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Order < active[j].Order })
	return active
}

// Apply runs the ping-pong chain (spec.md 4.3 algorithm). input is the
// source color texture, dst the final destination (the caller's backbuffer
// or render target). Returns false and draws nothing if no effect is
// active; the caller must then present input itself.
func (c *Chain) Apply(dst, input *ebiten.Image, list []timeline.EffectInstance, timeInClip, globalTime float64) bool {
	active := activeSorted(list, timeInClip)
	if len(active) == 0 {
		return false
	}

	current := input
	dstIndex := 0
	if input == c.ping {
		dstIndex = 1
	}
	targets := [2]*ebiten.Image{c.ping, c.pong}

	for i, e := range active {
		shader, ok := c.programFor(e.Kind)
		if !ok {
			continue
		}
		last := i == len(active)-1

		var target *ebiten.Image
		if last {
			target = dst
		} else {
			target = targets[dstIndex]
			target.Clear()
		}

		intensity := intensityAt(e, timeInClip)
		verts, idx := c.geometryFor(e.Kind, globalTime, intensity)

		op := &ebiten.DrawTrianglesShaderOptions{}
		op.Images[0] = current
		op.Uniforms = map[string]interface{}{
			"Time":       float32(globalTime),
			"Resolution": []float32{float32(c.width), float32(c.height)},
			"Intensity":  float32(intensity),
		}
		target.DrawTrianglesShader(verts, idx, shader, op)

		if !last {
			current = target
			dstIndex = 1 - dstIndex
		}
	}
	return true
}

// Destroy releases the Chain's FBOs and compiled programs.
func (c *Chain) Destroy() {
	if c.ping != nil {
		c.ping.Deallocate()
	}
	if c.pong != nil {
		c.pong.Deallocate()
	}
	c.programs = make(map[timeline.EffectKind]*ebiten.Shader)
}
