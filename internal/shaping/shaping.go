// Package shaping defines the text-shaping boundary of the layout
// engine. Shaping itself is an external service; the engine only needs
// per-line glyph advances to convert between columns and pixels.
package shaping

// ShapedLine is one shaped display line: its text, total advance
// width, and the x position of every column boundary.
type ShapedLine struct {
	Text  string
	Width float64
	// xs[i] is the x offset of column i; len(xs) == Len()+1 so the
	// final entry is the right edge of the last glyph.
	xs []float64
}

// NewShapedLine builds a shaped line from explicit column boundaries.
// boundaries must hold one more entry than the line has columns.
func NewShapedLine(text string, boundaries []float64) ShapedLine {
	width := 0.0
	if len(boundaries) > 0 {
		width = boundaries[len(boundaries)-1]
	}
	return ShapedLine{Text: text, Width: width, xs: boundaries}
}

// EmptyLine returns a zero-width line, the substitute for a failed
// shaping request.
func EmptyLine() ShapedLine {
	return ShapedLine{xs: []float64{0}}
}

// Len returns the column count of the line.
func (l ShapedLine) Len() int {
	if len(l.xs) == 0 {
		return 0
	}
	return len(l.xs) - 1
}

// XForIndex returns the x offset of the given column boundary. Columns
// past the end report the line width.
func (l ShapedLine) XForIndex(column int) float64 {
	if len(l.xs) == 0 {
		return 0
	}
	if column < 0 {
		column = 0
	}
	if column >= len(l.xs) {
		column = len(l.xs) - 1
	}
	return l.xs[column]
}

// IndexForX returns the column whose glyph spans x, or ok=false when x
// lies past the end of the line.
func (l ShapedLine) IndexForX(x float64) (int, bool) {
	if x < 0 {
		return 0, true
	}
	for i := 0; i+1 < len(l.xs); i++ {
		if x < l.xs[i+1] {
			return i, true
		}
	}
	return 0, false
}

// Metrics are the shaping-derived cell measurements a layout pass
// needs before it shapes anything.
type Metrics struct {
	// EmWidth is the advance of a representative wide glyph, used for
	// gutter padding and horizontal scroll conversion.
	EmWidth float64
	// EmAdvance is the average character advance, used to express
	// column overshoot past end-of-line.
	EmAdvance float64
	// LineHeight is the vertical extent of one display row.
	LineHeight float64
	// Descent is the distance from the baseline to the bottom of the
	// line box.
	Descent float64
}

// TextShaper turns line text into positioned glyph runs. A failed
// request must be reported through the error; callers substitute an
// empty line rather than aborting the frame.
type TextShaper interface {
	// ShapeLine shapes one display line at the given font size.
	ShapeLine(text string, fontSize float64) (ShapedLine, error)
	// Metrics reports cell measurements for the font size.
	Metrics(fontSize float64) Metrics
}
