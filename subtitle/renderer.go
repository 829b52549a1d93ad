package subtitle

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kaelstudio/motif/timeline"
)

const (
	marginBottom = 48
	marginSide   = 40
	lineSpacing  = 4
)

// Renderer rasterizes active subtitle cues onto a scratch image.RGBA buffer
// and composites the result over the GPU-rendered frame. ebiten has no
// built-in text layer, so layout and glyph rasterization happen on the CPU
// side via golang.org/x/image/font, and the scratch buffer is cleared each
// frame via golang.org/x/image/draw before becoming a regular ebiten texture.
type Renderer struct {
	Face          font.Face
	scratch       *image.RGBA
	width, height int
}

// NewRenderer constructs a Renderer sized to the canvas. basicfont.Face7x13
// (x/image/font/basicfont) is the default face -- a fixed-width bitmap glyph
// table, the closest analogue to the BitmapFont path (text.go) rather than
// its TTF path, since motif has no font-asset pipeline of its own to
// source a TTF from.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Face:    basicfont.Face7x13,
		scratch: image.NewRGBA(image.Rect(0, 0, width, height)),
		width:   width, height: height,
	}
}

// Resize reallocates the scratch buffer for a new canvas size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.scratch = image.NewRGBA(image.Rect(0, 0, width, height))
}

type laidOutCue struct {
	lines []string
	style timeline.SubtitleStyle
}

// Render draws every active cue onto dst, bottom-anchored in a safe area
// with the most recently listed cue stacked lowest, grapheme-wrapped to
// each cue's Style.WrapWidth (0 = canvas width minus side margins).
func (r *Renderer) Render(dst *ebiten.Image, cues []timeline.Subtitle) {
	if len(cues) == 0 {
		return
	}
	draw.Draw(r.scratch, r.scratch.Bounds(), image.Transparent, image.Point{}, draw.Src)

	laidOut := make([]laidOutCue, len(cues))
	for i, cue := range cues {
		wrapWidth := cue.Style.WrapWidth
		if wrapWidth <= 0 {
			wrapWidth = float64(r.width) - 2*marginSide
		}
		laidOut[i] = laidOutCue{lines: wrapLines(r.Face, cue.Text, wrapWidth), style: cue.Style}
	}

	lineHeight := r.Face.Metrics().Height.Ceil() + lineSpacing
	y := r.height - marginBottom
	for i := len(laidOut) - 1; i >= 0; i-- {
		lo := laidOut[i]
		y -= lineHeight * len(lo.lines)
		r.drawBlock(lo.lines, lo.style, y, lineHeight)
		y -= lineSpacing
	}

	overlay := ebiten.NewImageFromImage(r.scratch)
	dst.DrawImage(overlay, nil)
}

func (r *Renderer) drawBlock(lines []string, style timeline.SubtitleStyle, top, lineHeight int) {
	col := color.NRGBA{
		R: clampByte(style.ColorR),
		G: clampByte(style.ColorG),
		B: clampByte(style.ColorB),
		A: clampByte(style.ColorA),
	}
	for i, line := range lines {
		width := font.MeasureString(r.Face, line).Ceil()
		x := (r.width - width) / 2
		switch style.Align {
		case timeline.SubtitleAlignLeft:
			x = marginSide
		case timeline.SubtitleAlignRight:
			x = r.width - width - marginSide
		}
		baselineY := top + (i+1)*lineHeight - lineSpacing

		if style.Outline {
			outlineCol := color.NRGBA{A: 255}
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				r.drawString(line, x+d[0], baselineY+d[1], outlineCol)
			}
		}
		r.drawString(line, x, baselineY, col)
	}
}

func (r *Renderer) drawString(s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  r.scratch,
		Src:  image.NewUniform(col),
		Face: r.Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
