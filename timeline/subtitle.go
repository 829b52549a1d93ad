package timeline

// SubtitleAlign mirrors TextAlign (text.go), reused here for a subtitle
// cue's horizontal alignment within its safe area.
type SubtitleAlign uint8

const (
	SubtitleAlignCenter SubtitleAlign = iota
	SubtitleAlignLeft
	SubtitleAlignRight
)

// SubtitleStyle carries the rendering knobs the subtitle package's
// Renderer needs; kept here (not in package subtitle) so a Subtitle cue is a
// plain, render-agnostic timeline value like every other entity.
type SubtitleStyle struct {
	FontSize  float64
	ColorR    float64
	ColorG    float64
	ColorB    float64
	ColorA    float64
	Align     SubtitleAlign
	WrapWidth float64 // 0 = canvas width minus the renderer's side margins
	Outline   bool
}

// DefaultSubtitleStyle matches the default TextBlock look: white fill,
// centered, outlined, wrapped at the renderer's default width.
func DefaultSubtitleStyle() SubtitleStyle {
	return SubtitleStyle{
		FontSize: 32,
		ColorR:   1, ColorG: 1, ColorB: 1, ColorA: 1,
		Align:   SubtitleAlignCenter,
		Outline: true,
	}
}

// Subtitle is one caption cue attached to a clip, active over a sub-range of
// the clip's own timeline (mirrors EffectInstance's StartTime/Duration
// convention, spec.md 3 "[ADDED] Subtitle cue").
type Subtitle struct {
	ID        SubtitleID
	ClipID    ClipID
	StartTime float64 // relative to clip start
	Duration  float64
	Text      string
	Style     SubtitleStyle
}

// ActiveAt reports whether timeInClip falls within the cue's window.
func (s Subtitle) ActiveAt(timeInClip float64) bool {
	return timeInClip >= s.StartTime && timeInClip <= s.StartTime+s.Duration
}
