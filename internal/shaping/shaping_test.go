package shaping

import (
	"strings"
	"testing"
)

func TestMonospaceASCII(t *testing.T) {
	line, err := NewMonospace(1, 1).ShapeLine("abc", 8)
	if err != nil {
		t.Fatalf("ShapeLine() error: %v", err)
	}
	if line.Len() != 3 {
		t.Errorf("Len() = %d, want 3", line.Len())
	}
	if line.Width != 24 {
		t.Errorf("Width = %v, want 24", line.Width)
	}
	for i, want := range []float64{0, 8, 16, 24} {
		if got := line.XForIndex(i); got != want {
			t.Errorf("XForIndex(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestMonospaceWideGlyphs(t *testing.T) {
	// CJK glyphs occupy two cells.
	line, err := NewMonospace(1, 1).ShapeLine("a日b", 8)
	if err != nil {
		t.Fatalf("ShapeLine() error: %v", err)
	}
	if line.Len() != 3 {
		t.Errorf("Len() = %d, want 3", line.Len())
	}
	for i, want := range []float64{0, 8, 24, 32} {
		if got := line.XForIndex(i); got != want {
			t.Errorf("XForIndex(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestMonospaceCombiningMark(t *testing.T) {
	// "e" + U+0301 is one grapheme cluster spanning two runes; the
	// combining mark is a zero-width boundary.
	line, err := NewMonospace(1, 1).ShapeLine("éx", 8)
	if err != nil {
		t.Fatalf("ShapeLine() error: %v", err)
	}
	if line.Len() != 3 {
		t.Errorf("Len() = %d, want 3", line.Len())
	}
	for i, want := range []float64{0, 8, 8, 16} {
		if got := line.XForIndex(i); got != want {
			t.Errorf("XForIndex(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestIndexForX(t *testing.T) {
	line, err := NewMonospace(1, 1).ShapeLine("abcd", 8)
	if err != nil {
		t.Fatalf("ShapeLine() error: %v", err)
	}

	tests := []struct {
		x      float64
		want   int
		wantOK bool
	}{
		{x: -5, want: 0, wantOK: true},
		{x: 0, want: 0, wantOK: true},
		{x: 7.9, want: 0, wantOK: true},
		{x: 8, want: 1, wantOK: true},
		{x: 20, want: 2, wantOK: true},
		{x: 31.9, want: 3, wantOK: true},
		{x: 32, wantOK: false},
		{x: 100, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := line.IndexForX(tt.x)
		if ok != tt.wantOK {
			t.Errorf("IndexForX(%v) ok = %v, want %v", tt.x, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("IndexForX(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestXForIndexClamps(t *testing.T) {
	line, err := NewMonospace(1, 1).ShapeLine("ab", 8)
	if err != nil {
		t.Fatalf("ShapeLine() error: %v", err)
	}
	if got := line.XForIndex(-1); got != 0 {
		t.Errorf("XForIndex(-1) = %v, want 0", got)
	}
	if got := line.XForIndex(99); got != 16 {
		t.Errorf("XForIndex(99) = %v, want line width", got)
	}
}

func TestEmptyLine(t *testing.T) {
	line := EmptyLine()
	if line.Len() != 0 {
		t.Errorf("Len() = %d, want 0", line.Len())
	}
	if line.Width != 0 {
		t.Errorf("Width = %v, want 0", line.Width)
	}
	if got := line.XForIndex(5); got != 0 {
		t.Errorf("XForIndex(5) = %v, want 0", got)
	}
}

func TestMaxLineLen(t *testing.T) {
	shaper := NewMonospace(1, 1).WithMaxLineLen(4)

	if _, err := shaper.ShapeLine("abcd", 8); err != nil {
		t.Errorf("ShapeLine at cap: %v", err)
	}
	if _, err := shaper.ShapeLine(strings.Repeat("a", 5), 8); err == nil {
		t.Error("ShapeLine past cap succeeded, want error")
	}
	// The cap is a clone; the original stays uncapped.
	if _, err := NewMonospace(1, 1).ShapeLine(strings.Repeat("a", 5), 8); err != nil {
		t.Errorf("uncapped shaper: %v", err)
	}
}

func TestMetrics(t *testing.T) {
	m := NewMonospace(0.6, 1.25).Metrics(16)
	if m.EmWidth != 9.6 || m.EmAdvance != 9.6 {
		t.Errorf("EmWidth/EmAdvance = %v/%v, want 9.6", m.EmWidth, m.EmAdvance)
	}
	if m.LineHeight != 20 {
		t.Errorf("LineHeight = %v, want 20", m.LineHeight)
	}
	if m.Descent != 4 {
		t.Errorf("Descent = %v, want 4", m.Descent)
	}
}
