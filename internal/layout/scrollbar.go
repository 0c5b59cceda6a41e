package layout

import (
	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/geo"
	"github.com/dshills/glint/internal/theme"
)

// ScrollbarWidthFactor sizes the scrollbar track relative to em width.
const ScrollbarWidthFactor = 1.2

// ScrollbarMarker is one colored strip in the scrollbar track marking
// where something (a search match, a diff hunk) lives in the document.
type ScrollbarMarker struct {
	Bounds geo.Rect
	Color  theme.Color
}

// ScrollbarLayout is the frame geometry of the vertical scrollbar: the
// track, the thumb, and the mapping needed to turn a drag back into a
// scroll position.
type ScrollbarLayout struct {
	Visible bool
	Track   geo.Rect
	Thumb   geo.Rect
	// RowHeight is track pixels per document row, before any
	// minimum-thumb compensation.
	RowHeight float64
	// FirstRowOffset shifts row positions down when the thumb was
	// inflated to its minimum height, keeping it centered on the
	// viewport it represents.
	FirstRowOffset float64
	// DragHeight is the track height after compensation; drags map
	// through MaxRow/DragHeight rows per pixel.
	DragHeight float64
	// MaxRow is the document extent in rows, including the visible
	// span, that the track represents.
	MaxRow  float64
	Markers []ScrollbarMarker
}

// RowForThumbDelta converts a vertical drag in pixels into a scroll
// delta in rows.
func (s ScrollbarLayout) RowForThumbDelta(dy float64) float64 {
	if s.DragHeight <= 0 {
		return 0
	}
	return dy * s.MaxRow / s.DragHeight
}

// RowForTrackPosition maps an absolute y inside the track to the
// document row it represents, for click-to-jump.
func (s ScrollbarLayout) RowForTrackPosition(y float64) float64 {
	if s.RowHeight <= 0 {
		return 0
	}
	row := (y - s.Track.Origin.Y - s.FirstRowOffset) / s.RowHeight
	if row < 0 {
		row = 0
	}
	return row
}

// computeScrollbar lays out the track against the right edge of
// bounds. rowStart/rowEnd are the visible rows (fractional), maxRow
// the last document row. A thumb shorter than one line height is
// inflated to it, and the row mapping is compressed so the inflated
// thumb still reaches both ends of the track.
func computeScrollbar(
	bounds geo.Rect,
	rowStart, rowEnd float64,
	maxRow uint32,
	lineHeight, emWidth float64,
	visible bool,
) ScrollbarLayout {
	width := ScrollbarWidthFactor * emWidth
	top := bounds.Origin.Y
	bottom := bounds.Bottom()
	right := bounds.Right()
	left := right - width

	maxRowF := float64(maxRow) + (rowEnd - rowStart)
	height := bounds.Size.Height
	rowHeight := 0.0
	if maxRowF > 0 {
		rowHeight = height / maxRowF
	}

	thumbHeight := (rowEnd - rowStart) * rowHeight
	firstRowOffset := 0.0
	if thumbHeight < lineHeight {
		firstRowOffset = (lineHeight - thumbHeight) / 2
		height -= lineHeight - thumbHeight
	}

	yForRow := func(row float64) float64 {
		return top + firstRowOffset + row*rowHeight
	}

	thumbTop := yForRow(rowStart) - firstRowOffset
	thumbBottom := yForRow(rowEnd) + firstRowOffset

	return ScrollbarLayout{
		Visible:        visible,
		Track:          geo.RectFromCorners(geo.Pt(left, top), geo.Pt(right, bottom)),
		Thumb:          geo.RectFromCorners(geo.Pt(left, thumbTop), geo.Pt(right, thumbBottom)),
		RowHeight:      rowHeight,
		FirstRowOffset: firstRowOffset,
		DragHeight:     height,
		MaxRow:         maxRowF,
	}
}

// addMarkers stamps colored strips into the track for each row range.
// A strip is never thinner than one pixel so single-row markers stay
// visible in long documents.
func (s *ScrollbarLayout) addMarkers(ranges []display.RowRange, color theme.Color) {
	for _, r := range ranges {
		startY := s.Track.Origin.Y + s.FirstRowOffset + float64(r.Start)*s.RowHeight
		endY := s.Track.Origin.Y + s.FirstRowOffset + float64(r.End)*s.RowHeight
		if endY-startY < 1 {
			endY = startY + 1
		}
		s.Markers = append(s.Markers, ScrollbarMarker{
			Bounds: geo.RectFromCorners(
				geo.Pt(s.Track.Origin.X, startY),
				geo.Pt(s.Track.Right(), endY),
			),
			Color: color,
		})
	}
}
