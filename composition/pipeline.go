package composition

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/kaelstudio/motif"
	"github.com/kaelstudio/motif/anim"
	"github.com/kaelstudio/motif/effects"
	"github.com/kaelstudio/motif/render"
	"github.com/kaelstudio/motif/subtitle"
	"github.com/kaelstudio/motif/timeline"
)

// FrameSource supplies the decoded media surface for a material at a given
// source-media time. The Playback Scheduler (spec.md 4.5) implements this
// in the running pipeline; tests substitute a fake.
type FrameSource interface {
	FrameAt(materialID timeline.MaterialID, sourceTime float64) (*ebiten.Image, bool)
}

// Pipeline is the Composition Pipeline: one render.Context, one Effect
// Chain Engine, and one Subtitle Renderer, wired together by Compose
// (spec.md 4.4). Exactly one non-export pipeline instance is expected to
// run at a time; export.Exporter constructs its own isolated Pipeline
// (spec.md 5 "shared-resource policy").
type Pipeline struct {
	Logger *logrus.Logger

	ctx    *render.Context
	chain  *effects.Chain
	subs   *subtitle.Renderer
	width  int
	height int
}

// NewPipeline constructs a Pipeline sized to the canvas.
func NewPipeline(width, height int, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		Logger: logger,
		ctx:    render.NewContext(width, height, render.Options{}, logger),
		chain:  effects.NewChain(width, height, logger),
		subs:   subtitle.NewRenderer(width, height),
		width:  width,
		height: height,
	}
}

// Size returns the canvas dimensions the Pipeline currently composites at.
func (p *Pipeline) Size() (width, height int) { return p.width, p.height }

// Resize propagates a canvas size change to every owned subsystem.
func (p *Pipeline) Resize(width, height int) {
	p.width, p.height = width, height
	p.ctx.Resize(width, height)
	p.chain.Resize(width, height)
	p.subs.Resize(width, height)
}

// Destroy releases every GPU resource the Pipeline owns.
func (p *Pipeline) Destroy() {
	p.ctx.Destroy()
	p.chain.Destroy()
}

// Compose renders one fully composited frame for timeline time t onto dst
// (spec.md 4.4 steps 1-9). globalTime feeds the Effect Chain Engine's
// time-driven effects (shake, glitch, film grain); it is independent of t
// since effects animate in wallclock time even while the playhead is
// paused mid-scrub.
func (p *Pipeline) Compose(world *timeline.World, t, globalTime float64, frames FrameSource, dst *ebiten.Image) {
	p.ctx.ResetState()

	if tr, progress, ok := world.TransitionAt(t); ok {
		p.composeTransition(world, tr, progress, t, frames, dst)
	} else {
		p.composeVideoClip(world, t, globalTime, frames, dst)
	}

	p.composeOverlays(world, t, frames, dst)
	p.composeSubtitles(world, t, dst)
}

// composeVideoClip implements steps 4-6: resolve the active video clip,
// dispatch ANIMATED or BASIC, and intercept through the Effect Chain Engine
// when the clip carries effects.
func (p *Pipeline) composeVideoClip(world *timeline.World, t, globalTime float64, frames FrameSource, dst *ebiten.Image) {
	clip, ok := p.activeVideoClip(world, t)
	if !ok {
		return
	}
	frame, ok := frames.FrameAt(clip.MaterialID, clip.SourceTime(t))
	if !ok {
		return
	}

	hasEffects := len(clip.Effects) > 0
	target := dst
	var intermediate *ebiten.Image
	if hasEffects {
		intermediate = p.ctx.AcquireFramebuffer(p.width, p.height)
		target = intermediate
	}

	timeInClip := clip.TimeInClip(t)
	if clip.Animation.HasActiveTracks() {
		transform := anim.Evaluate(clip.Animation.Tracks, timeInClip)
		p.dispatchAnimated(clip, frame, transform, target)
	} else {
		p.dispatchBasic(clip, frame, target)
	}

	if hasEffects {
		defer p.ctx.ReleaseFramebuffer(intermediate)
		if !p.chain.Apply(dst, intermediate, clip.Effects, timeInClip, globalTime) {
			dst.DrawImage(intermediate, nil)
		}
	}
}

// activeVideoClip finds the unique active video-track clip at t (spec.md
// 4.4 step 4); track non-overlap means at most one clip per video track, so
// the first video track with an active clip wins.
func (p *Pipeline) activeVideoClip(world *timeline.World, t float64) (timeline.Clip, bool) {
	for _, c := range world.ActiveClipsByKind(timeline.TrackVideo, t) {
		return c, true
	}
	return timeline.Clip{}, false
}

// dispatchBasic implements step 5: the BASIC program over a letterboxed
// frame, filter uniforms from the clip's ClipFilter.
func (p *Pipeline) dispatchBasic(clip timeline.Clip, frame *ebiten.Image, dst *ebiten.Image) {
	prog, ok := p.ctx.Basic()
	if !ok {
		return
	}
	boxed := p.letterboxedFrame(frame, clip.Transform.Crop)
	defer p.ctx.ReleaseFramebuffer(boxed)

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = boxed
	op.Uniforms = filterUniforms(clip.Filter)
	dst.DrawRectShader(p.width, p.height, prog.Shader, op)
}

// dispatchAnimated implements step 4: letterbox the frame with CropContain
// (the Animation Evaluator has no crop-mode concept of its own), synthesize
// the 4x4 matrix, and dispatch ANIMATED. The matrix is applied on the GPU
// by animatedShaderSrc's custom Vertex entry point, not by pre-transforming
// geometry in Go.
func (p *Pipeline) dispatchAnimated(clip timeline.Clip, frame *ebiten.Image, transform anim.AnimatedTransform, dst *ebiten.Image) {
	prog, ok := p.ctx.Animated()
	if !ok {
		return
	}
	boxed := p.letterboxedFrame(frame, timeline.CropContain)
	defer p.ctx.ReleaseFramebuffer(boxed)

	matrix := anim.MakeMatrix(transform)
	uniforms := filterUniforms(clip.Filter)
	uniforms["Transform"] = matrixToSlice(matrix)
	uniforms["Resolution"] = []float32{float32(p.width), float32(p.height)}
	uniforms["Opacity"] = float32(transform.Opacity)

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = boxed
	op.Uniforms = uniforms
	dst.DrawRectShader(p.width, p.height, prog.Shader, op)
}

// composeTransition implements step 3: sample both clips' frames, contain
// both inside a shared letterbox rectangle sized off the smaller aspect
// ratio, and dispatch TRANSITION with the shared cubic-in-out progress
// curve (anim.EaseInOutCubic).
func (p *Pipeline) composeTransition(world *timeline.World, tr timeline.Transition, progress, t float64, frames FrameSource, dst *ebiten.Image) {
	clipA, ok := world.Clip(tr.ClipA)
	if !ok {
		return
	}
	clipB, ok := world.Clip(tr.ClipB)
	if !ok {
		return
	}

	frameA, okA := frames.FrameAt(clipA.MaterialID, clipA.SourceTime(t))
	frameB, okB := frames.FrameAt(clipB.MaterialID, clipB.SourceTime(t))
	if !okA || !okB {
		return
	}

	prog, ok := p.ctx.Transition()
	if !ok {
		return
	}

	aAspect := float64(frameA.Bounds().Dx()) / float64(frameA.Bounds().Dy())
	bAspect := float64(frameB.Bounds().Dx()) / float64(frameB.Bounds().Dy())
	rect := commonContainRect(aAspect, bAspect, float64(p.width), float64(p.height))

	boxedA := p.letterboxInto(frameA, rect)
	defer p.ctx.ReleaseFramebuffer(boxedA)
	boxedB := p.letterboxInto(frameB, rect)
	defer p.ctx.ReleaseFramebuffer(boxedB)

	if tr.Type == timeline.TransitionBlur {
		blurred := p.ctx.AcquireFramebuffer(p.width, p.height)
		defer p.ctx.ReleaseFramebuffer(blurred)
		p.kawaseBlur(boxedB, blurred)
		boxedB = blurred
	}

	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = boxedA
	op.Images[1] = boxedB
	op.Uniforms = map[string]interface{}{
		"Progress":       float32(anim.EaseInOutCubic(progress)),
		"TransitionType": int(tr.Type),
		"Resolution":     []float32{float32(p.width), float32(p.height)},
	}
	dst.DrawRectShader(p.width, p.height, prog.Shader, op)
}

// composeOverlays implements step 7: dispatch OVERLAY for every active
// sticker clip, in track creation order (the World's Z-order convention).
func (p *Pipeline) composeOverlays(world *timeline.World, t float64, frames FrameSource, dst *ebiten.Image) {
	prog, ok := p.ctx.Overlay()
	if !ok {
		return
	}
	for _, track := range world.Tracks() {
		if track.Kind != timeline.TrackSticker {
			continue
		}
		clip, ok := world.ActiveClipOnTrack(track.ID, t)
		if !ok {
			continue
		}
		img, ok := frames.FrameAt(clip.MaterialID, clip.SourceTime(t))
		if !ok {
			continue
		}

		tf := clip.Transform
		verts, idx := p.ctx.OverlayQuad(
			motif.Vec2{X: tf.X, Y: tf.Y},
			motif.Vec2{X: tf.ScaleX, Y: tf.ScaleY},
			tf.RotationDegrees*degToRad,
			float64(img.Bounds().Dx()), float64(img.Bounds().Dy()),
		)
		op := &ebiten.DrawTrianglesShaderOptions{}
		op.Images[0] = img
		op.Uniforms = map[string]interface{}{
			"Resolution":  []float32{float32(p.width), float32(p.height)},
			"ImgSize":     []float32{float32(img.Bounds().Dx()), float32(img.Bounds().Dy())},
			"Translation": []float32{float32(tf.X), float32(tf.Y)},
			"Scale":       []float32{float32(tf.ScaleX), float32(tf.ScaleY)},
			"Rotation":    float32(tf.RotationDegrees * degToRad),
			"Opacity":     float32(tf.Opacity),
		}
		dst.DrawTrianglesShader(verts, idx, prog.Shader, op)
	}
}

const degToRad = 3.14159265358979323846 / 180

// composeSubtitles implements step 8: composite the Subtitle Renderer's
// output over the GPU-rendered frame.
func (p *Pipeline) composeSubtitles(world *timeline.World, t float64, dst *ebiten.Image) {
	cues := world.ActiveSubtitles(t)
	p.subs.Render(dst, cues)
}

// letterboxedFrame blits frame into a pooled canvas-sized scratch image at
// the rectangle letterboxRect computes for mode, so the subsequent
// DrawRectShader call can assume a 1:1 pixel mapping between its dst rect
// and Images[0] regardless of the source frame's native resolution.
func (p *Pipeline) letterboxedFrame(frame *ebiten.Image, mode timeline.CropMode) *ebiten.Image {
	b := frame.Bounds()
	rect := letterboxRect(mode, float64(b.Dx()), float64(b.Dy()), float64(p.width), float64(p.height))
	return p.letterboxInto(frame, rect)
}

func (p *Pipeline) letterboxInto(frame *ebiten.Image, rect motif.Rect) *ebiten.Image {
	scratch := p.ctx.AcquireFramebuffer(p.width, p.height)
	b := frame.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.Width/float64(b.Dx()), rect.Height/float64(b.Dy()))
	op.GeoM.Translate(rect.X, rect.Y)
	scratch.DrawImage(frame, op)
	return scratch
}

// filterUniforms builds the shared brightness/contrast/saturation/hue/blur
// uniform set the BASIC and ANIMATED programs accept (spec.md 4.4 "Filter
// uniforms").
func filterUniforms(f timeline.ClipFilter) map[string]interface{} {
	return map[string]interface{}{
		"Brightness": float32(f.Brightness),
		"Contrast":   float32(f.Contrast),
		"Saturation": float32(f.Saturation),
		"Hue":        float32(f.Hue),
		"Blur":       float32(f.Blur),
	}
}

// matrixToSlice converts anim's column-major [16]float64 into the []float32
// Ebitengine expects for a mat4 uniform.
func matrixToSlice(m [16]float64) []float32 {
	out := make([]float32, 16)
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
