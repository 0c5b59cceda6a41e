// Package highlight builds the filled, rounded outline paths that
// render multi-row range highlights: selections, fold placeholders,
// and search matches. Adjacent highlighted rows tile without seams or
// overdraw because each range produces a single path rather than one
// rectangle per row.
package highlight

import (
	"github.com/dshills/glint/internal/geo"
	"github.com/dshills/glint/internal/theme"
)

// RangeLine is the horizontal pixel span a highlighted range covers on
// one display row.
type RangeLine struct {
	StartX float64
	EndX   float64
}

// Range is a highlight over a stack of display rows. Rows are
// consecutive: Lines[i] renders at StartY + i*LineHeight.
type Range struct {
	StartY       float64
	LineHeight   float64
	Lines        []RangeLine
	Color        theme.Color
	CornerRadius float64
}

// Paths returns the fillable outline(s) for the range. When the first
// row starts right of where the second row ends, the shapes cannot
// share an outline without self-intersecting, so the first row is
// split into its own path.
func (r *Range) Paths() []*geo.Path {
	if len(r.Lines) == 0 {
		return nil
	}
	if len(r.Lines) >= 2 && r.Lines[0].StartX > r.Lines[1].EndX {
		first := r.tracePath(r.StartY, r.Lines[:1])
		rest := r.tracePath(r.StartY+r.LineHeight, r.Lines[1:])
		return []*geo.Path{first, rest}
	}
	return []*geo.Path{r.tracePath(r.StartY, r.Lines)}
}

// curveWidth bounds the corner radius by half the horizontal delta so
// opposing corners on a narrow step never overlap.
func (r *Range) curveWidth(startX, endX float64) float64 {
	max := (endX - startX) / 2
	if max < r.CornerRadius {
		return max
	}
	return r.CornerRadius
}

// tracePath walks the right edge top to bottom, the bottom, then the
// left edge bottom to top, emitting rounded corner pairs wherever
// consecutive rows differ in extent.
func (r *Range) tracePath(startY float64, lines []RangeLine) *geo.Path {
	first := lines[0]
	last := lines[len(lines)-1]

	firstTopLeft := geo.Pt(first.StartX, startY)
	firstTopRight := geo.Pt(first.EndX, startY)
	curveHeight := geo.Pt(0, r.CornerRadius)

	topCurve := geo.Pt(r.curveWidth(first.StartX, first.EndX), 0)
	path := geo.NewPath(firstTopRight.Sub(topCurve))
	path.CurveTo(firstTopRight.Add(curveHeight), firstTopRight)

	for i, line := range lines {
		bottomRight := geo.Pt(line.EndX, startY+float64(i+1)*r.LineHeight)

		if i+1 < len(lines) {
			next := lines[i+1]
			nextTopRight := geo.Pt(next.EndX, bottomRight.Y)

			switch {
			case nextTopRight.X == bottomRight.X:
				path.LineTo(bottomRight)
			case nextTopRight.X < bottomRight.X:
				// Next row is narrower: step left, then down.
				cw := geo.Pt(r.curveWidth(nextTopRight.X, bottomRight.X), 0)
				path.LineTo(bottomRight.Sub(curveHeight))
				if r.CornerRadius > 0 {
					path.CurveTo(bottomRight.Sub(cw), bottomRight)
				}
				path.LineTo(nextTopRight.Add(cw))
				if r.CornerRadius > 0 {
					path.CurveTo(nextTopRight.Add(curveHeight), nextTopRight)
				}
			default:
				// Next row is wider: step down, then right.
				cw := geo.Pt(r.curveWidth(bottomRight.X, nextTopRight.X), 0)
				path.LineTo(bottomRight.Sub(curveHeight))
				if r.CornerRadius > 0 {
					path.CurveTo(bottomRight.Add(cw), bottomRight)
				}
				path.LineTo(nextTopRight.Sub(cw))
				if r.CornerRadius > 0 {
					path.CurveTo(nextTopRight.Add(curveHeight), nextTopRight)
				}
			}
		} else {
			// Bottom edge of the last row.
			cw := geo.Pt(r.curveWidth(line.StartX, line.EndX), 0)
			path.LineTo(bottomRight.Sub(curveHeight))
			if r.CornerRadius > 0 {
				path.CurveTo(bottomRight.Sub(cw), bottomRight)
			}
			bottomLeft := geo.Pt(line.StartX, bottomRight.Y)
			path.LineTo(bottomLeft.Add(cw))
			if r.CornerRadius > 0 {
				path.CurveTo(bottomLeft.Sub(curveHeight), bottomLeft)
			}
		}
	}

	// The first row starting right of the rows below leaves a notch on
	// the left edge; trace it on the way back up.
	if first.StartX > last.StartX {
		cw := geo.Pt(r.curveWidth(last.StartX, first.StartX), 0)
		secondTopLeft := geo.Pt(last.StartX, startY+r.LineHeight)
		path.LineTo(secondTopLeft.Add(curveHeight))
		if r.CornerRadius > 0 {
			path.CurveTo(secondTopLeft.Add(cw), secondTopLeft)
		}
		firstBottomLeft := geo.Pt(first.StartX, secondTopLeft.Y)
		path.LineTo(firstBottomLeft.Sub(cw))
		if r.CornerRadius > 0 {
			path.CurveTo(firstBottomLeft.Sub(curveHeight), firstBottomLeft)
		}
	}

	path.LineTo(firstTopLeft.Add(curveHeight))
	if r.CornerRadius > 0 {
		path.CurveTo(firstTopLeft.Add(topCurve), firstTopLeft)
	}
	path.LineTo(firstTopRight.Sub(topCurve))

	return path
}
