package subtitle

import (
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
)

// wrapLines splits text into display lines, breaking at a space once the
// next word would push a line past wrapWidth pixels. The space that ends a
// line stays on it, and a single word wider than wrapWidth is kept whole on
// its own line. Text is walked one grapheme cluster at a time (via uniseg),
// so combining marks and multi-rune emoji used in user-authored captions
// are never split mid-cluster. A wrapWidth <= 0 splits only at explicit
// newlines. Word-accumulate-then-flush shape is grounded directly on the
// teacher's TextBlock.layoutBitmap (text.go), generalized from rune-at-a-time
// iteration to grapheme-cluster-at-a-time.
func wrapLines(face font.Face, text string, wrapWidth float64) []string {
	if wrapWidth <= 0 {
		return splitHardLines(text)
	}
	var lines []string
	for _, hard := range splitHardLines(text) {
		lines = append(lines, wrapOneLine(face, hard, wrapWidth)...)
	}
	return lines
}

// splitHardLines splits on explicit newlines authored into the cue text.
func splitHardLines(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			out = append(out, text[start:i])
			start = i + len(string(r))
		}
	}
	out = append(out, text[start:])
	return out
}

func wrapOneLine(face font.Face, line string, wrapWidth float64) []string {
	var lines []string
	var current, word string
	var currentWidth, wordWidth float64

	flushWord := func() {
		if word == "" {
			return
		}
		if current != "" && currentWidth+wordWidth > wrapWidth {
			lines = append(lines, current)
			current, currentWidth = "", 0
		}
		current += word
		currentWidth += wordWidth
		word, wordWidth = "", 0
	}

	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cluster := gr.Str()
		w := measure(face, cluster)
		if cluster == " " {
			flushWord()
			current += cluster
			currentWidth += w
			continue
		}
		word += cluster
		wordWidth += w
	}
	flushWord()
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
