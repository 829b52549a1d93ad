package subtitle

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestWrapLinesNoWrapWhenWidthGenerous(t *testing.T) {
	lines := wrapLines(basicfont.Face7x13, "hello world", 10000)
	if len(lines) != 1 || lines[0] != "hello world" {
		t.Errorf("lines = %v, want one line \"hello world\"", lines)
	}
}

func TestWrapLinesSplitsOnNewline(t *testing.T) {
	lines := wrapLines(basicfont.Face7x13, "line one\nline two", 10000)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0] != "line one" || lines[1] != "line two" {
		t.Errorf("lines = %v, want [\"line one\" \"line two\"]", lines)
	}
}

func TestWrapLinesWrapsLongTextAtNarrowWidth(t *testing.T) {
	lines := wrapLines(basicfont.Face7x13, "the quick brown fox jumps over the lazy dog", measure(basicfont.Face7x13, "the quick"))
	if len(lines) < 2 {
		t.Fatalf("expected wrapping to produce multiple lines, got %v", lines)
	}
	for _, l := range lines {
		if l == "" {
			t.Errorf("unexpected empty line in %v", lines)
		}
	}
}

func TestWrapLinesEmptyInputYieldsOneEmptyLine(t *testing.T) {
	lines := wrapLines(basicfont.Face7x13, "", 100)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("lines = %v, want one empty line", lines)
	}
}

// TestWrapLinesKeepsGraphemeClustersIntact: "e" followed by a combining
// acute accent (U+0301) forms a single grapheme cluster; wrapping must
// never isolate the combining mark on its own line.
func TestWrapLinesKeepsGraphemeClustersIntact(t *testing.T) {
	combiningAcute := "́"
	text := "caf" + "e" + combiningAcute + " time"
	lines := wrapLines(basicfont.Face7x13, text, measure(basicfont.Face7x13, "caf"))
	for _, l := range lines {
		if l == combiningAcute {
			t.Errorf("combining mark split onto its own line: %v", lines)
		}
	}
}
