package layout

import (
	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/geo"
	"github.com/dshills/glint/internal/highlight"
	"github.com/dshills/glint/internal/shaping"
	"github.com/dshills/glint/internal/theme"
)

// WrapGuide is one vertical guide line at a column boundary. Active
// marks the guide at the configured soft-wrap column.
type WrapGuide struct {
	X      float64
	Active bool
}

// CursorLayout is one cursor ready to paint, positioned relative to
// the content origin.
type CursorLayout struct {
	Point    display.DisplayPoint
	Origin   geo.Point
	Width    float64
	Shape    display.CursorShape
	Color    theme.Color
	IsNewest bool
}

// ParticipantSelections groups the selection layouts of one
// participant (the local user or a remote peer) with their colors.
type ParticipantSelections struct {
	Color      theme.PlayerColor
	Selections []SelectionLayout
}

// HighlightedDisplayRange is a background highlight in display space
// with the color to fill it with.
type HighlightedDisplayRange struct {
	Range display.DisplayRange
	Color theme.Color
}

// LayoutState is everything a paint pass needs for one frame. It is
// immutable once ComputeLayout returns; interaction handlers read it
// through the embedded PositionMap and mutate nothing.
type LayoutState struct {
	PositionMap *PositionMap

	Bounds        geo.Rect
	GutterSize    geo.Size
	GutterPadding float64
	GutterMargin  float64
	TextSize      geo.Size

	FontSize   float64
	LineHeight float64
	EmWidth    float64
	EmAdvance  float64

	VisibleRows        display.RowRange
	VisibleAnchorRange display.AnchorRange
	MaxRow             uint32
	LongestLineWidth   float64

	// ActiveRows maps each display row touched by a local selection to
	// whether any selection touching it is non-empty; only rows where
	// the value is false (cursor only, nothing selected) get the
	// active-line background.
	ActiveRows      map[uint32]bool
	HighlightedRows *display.RowRange

	LineNumbers    []*LineNumber
	FoldIndicators []*FoldIndicator
	Lines          []LineWithInvisibles

	Selections        []ParticipantSelections
	Cursors           []CursorLayout
	HighlightedRanges []HighlightedDisplayRange

	WrapGuides []WrapGuide

	Scrollbar ScrollbarLayout

	ContextMenu   *OverlayLayout
	HoverPopovers []OverlayLayout

	TabInvisible   shaping.ShapedLine
	SpaceInvisible shaping.ShapedLine
}

// GutterBounds is the gutter rectangle in window space.
func (s *LayoutState) GutterBounds() geo.Rect {
	return geo.Rect{Origin: s.Bounds.Origin, Size: s.GutterSize}
}

// TextBounds is the text-area rectangle in window space.
func (s *LayoutState) TextBounds() geo.Rect {
	return geo.Rect{
		Origin: geo.Pt(s.Bounds.Origin.X+s.GutterSize.Width, s.Bounds.Origin.Y),
		Size:   s.TextSize,
	}
}

// ContentOrigin is where column 0 of the first visible row paints: the
// text bounds shifted by the gutter margin.
func (s *LayoutState) ContentOrigin() geo.Point {
	return s.TextBounds().Origin.Add(geo.Pt(s.GutterMargin, 0))
}

// LocalSelectionRanges returns the display ranges of the local
// participant's selections, for callers that filter whitespace
// markers to selected regions.
func (s *LayoutState) LocalSelectionRanges() []display.DisplayRange {
	var ranges []display.DisplayRange
	for _, group := range s.Selections {
		for _, sel := range group.Selections {
			if sel.IsLocal {
				ranges = append(ranges, sel.Range)
			}
		}
	}
	return ranges
}

// HighlightedRangeLines converts a display range into the per-row
// pixel spans a rounded highlight path is built from, restricted to
// the visible rows. Every row but the last extends one lineEndOvershoot
// past its text to make the newline visible; the caller passes 0 for
// tight fills like search matches.
func (s *LayoutState) HighlightedRangeLines(
	rng display.DisplayRange,
	color theme.Color,
	cornerRadius float64,
	lineEndOvershoot float64,
) *highlight.Range {
	startRow := s.VisibleRows.Start
	if rng.End.Row < startRow || rng.Start.Row >= s.VisibleRows.End {
		return nil
	}

	start := rng.Start
	if start.Row < startRow {
		start = display.NewDisplayPoint(startRow, 0)
	}
	end := rng.End
	if end.Row >= s.VisibleRows.End {
		end = display.NewDisplayPoint(s.VisibleRows.End-1, s.PositionMap.Snapshot.LineLen(s.VisibleRows.End-1))
	}

	scrollX := s.PositionMap.ScrollPixels.X
	lines := make([]highlight.RangeLine, 0, end.Row-start.Row+1)
	for row := start.Row; row <= end.Row; row++ {
		line := s.Lines[row-startRow].Line
		startX := -scrollX
		if row == start.Row {
			startX = line.XForIndex(int(start.Column)) - scrollX
		}
		var endX float64
		if row == end.Row {
			endX = line.XForIndex(int(end.Column)) - scrollX
		} else {
			endX = line.Width + lineEndOvershoot - scrollX
		}
		lines = append(lines, highlight.RangeLine{StartX: startX, EndX: endX})
	}

	return &highlight.Range{
		StartY:       float64(start.Row)*s.LineHeight - s.PositionMap.ScrollPixels.Y,
		LineHeight:   s.LineHeight,
		Lines:        lines,
		Color:        color,
		CornerRadius: cornerRadius,
	}
}
