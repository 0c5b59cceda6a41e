package layout

import (
	"math"

	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/geo"
)

// PositionMap carries everything needed to translate between pixel
// space and display points for one frame: the visible shaped lines,
// the scroll offsets, and the snapshot they were derived from. It is
// built once per frame and shared read-only with interaction handlers.
type PositionMap struct {
	Size           geo.Size
	LineHeight     float64
	EmWidth        float64
	EmAdvance      float64
	ScrollPosition geo.Point // columns (x) and rows (y), fractional
	ScrollPixels   geo.Point // ScrollPosition converted to pixels
	ScrollMax      geo.Point // columns (x) and rows (y)
	Lines          []LineWithInvisibles
	Snapshot       display.Snapshot
}

// PointForPosition is the result of a pixel-to-point lookup. The
// unclipped point may lie past the end of its line or on a row with
// no valid positions; the clipped neighbors are always valid.
type PointForPosition struct {
	PreviousValid   display.DisplayPoint
	NextValid       display.DisplayPoint
	ExactUnclipped  display.DisplayPoint
	ColumnOvershoot uint32
}

// AsValid returns the exact point when it is already a valid position,
// otherwise false. A click is "exact" when no clipping moved it and it
// did not overshoot the end of the line.
func (p PointForPosition) AsValid() (display.DisplayPoint, bool) {
	if p.ColumnOvershoot == 0 && p.PreviousValid.Equals(p.ExactUnclipped) {
		return p.PreviousValid, true
	}
	return display.DisplayPoint{}, false
}

// PointForPosition maps a window-space pixel position to display
// points. The y coordinate is clamped into the text bounds, never
// rejected, so drags above or below the viewport keep selecting.
func (m *PositionMap) PointForPosition(textBounds geo.Rect, position geo.Point) PointForPosition {
	local := position.Sub(textBounds.Origin)
	y := math.Max(0, math.Min(local.Y, m.Size.Height))
	x := local.X + m.ScrollPosition.X*m.EmWidth

	rowF := y/m.LineHeight + m.ScrollPosition.Y
	if rowF < 0 {
		rowF = 0
	}
	row := uint32(rowF)

	var column uint32
	var xOvershoot float64
	lineIndex := int(rowF) - int(m.ScrollPosition.Y)
	if lineIndex >= 0 && lineIndex < len(m.Lines) {
		line := m.Lines[lineIndex].Line
		if index, ok := line.IndexForX(x); ok {
			column = uint32(index)
		} else {
			column = uint32(line.Len())
			xOvershoot = math.Max(0, x-line.Width)
		}
	} else {
		xOvershoot = x
	}

	unclipped := display.NewDisplayPoint(row, column)
	previous := m.Snapshot.ClipPoint(unclipped, display.BiasLeft)
	next := m.Snapshot.ClipPoint(unclipped, display.BiasRight)

	overshoot := uint32(0)
	if m.EmAdvance > 0 {
		overshoot = uint32(xOvershoot / m.EmAdvance)
	}
	unclipped.Column += overshoot

	return PointForPosition{
		PreviousValid:   previous,
		NextValid:       next,
		ExactUnclipped:  unclipped,
		ColumnOvershoot: overshoot,
	}
}
