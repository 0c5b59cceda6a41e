package shaping

import (
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Monospace shapes text against a fixed-pitch font model: every
// grapheme cluster advances by its terminal cell width. Cluster
// boundaries and widths come from uniseg, so combining marks, emoji
// sequences, and wide CJK glyphs measure the way a terminal renders
// them.
type Monospace struct {
	cellWidth  float64 // advance of a single-cell glyph at size 1.0
	lineHeight float64 // row height at size 1.0
	maxLineLen int     // shaping refuses longer lines; 0 means no cap
}

// NewMonospace creates a monospace shaper. cellWidth and lineHeight
// scale linearly with font size.
func NewMonospace(cellWidth, lineHeight float64) *Monospace {
	return &Monospace{cellWidth: cellWidth, lineHeight: lineHeight}
}

// WithMaxLineLen returns a shaper that fails on lines longer than n
// runes, for exercising the degraded-line path.
func (m *Monospace) WithMaxLineLen(n int) *Monospace {
	clone := *m
	clone.maxLineLen = n
	return &clone
}

// ShapeLine implements TextShaper.
func (m *Monospace) ShapeLine(text string, fontSize float64) (ShapedLine, error) {
	runeCount := utf8.RuneCountInString(text)
	if m.maxLineLen > 0 && runeCount > m.maxLineLen {
		return ShapedLine{}, fmt.Errorf("shape line: %d runes exceeds cap %d", runeCount, m.maxLineLen)
	}

	cell := m.cellWidth * fontSize
	boundaries := make([]float64, 1, runeCount+1)
	x := 0.0

	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		advance := float64(width) * cell
		clusterRunes := utf8.RuneCountInString(cluster)
		// The cluster's advance lands on its first rune; trailing
		// runes (combining marks) are zero-width boundaries.
		x += advance
		for i := 0; i < clusterRunes; i++ {
			boundaries = append(boundaries, x)
		}
	}
	return NewShapedLine(text, boundaries), nil
}

// Metrics implements TextShaper.
func (m *Monospace) Metrics(fontSize float64) Metrics {
	return Metrics{
		EmWidth:    m.cellWidth * fontSize,
		EmAdvance:  m.cellWidth * fontSize,
		LineHeight: m.lineHeight * fontSize,
		Descent:    m.lineHeight * fontSize * 0.2,
	}
}
