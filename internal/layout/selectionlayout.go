package layout

import (
	"github.com/dshills/glint/internal/display"
)

// InclusiveRows is a display-row interval covering both endpoints.
type InclusiveRows struct {
	Start uint32
	End   uint32
}

// SelectionLayout is the display-space geometry of one selection for
// one frame: the head, the highlighted range, and the rows whose
// gutter/background react to it. Built fresh each frame, never
// mutated.
type SelectionLayout struct {
	Head        display.DisplayPoint
	CursorShape display.CursorShape
	IsNewest    bool
	IsLocal     bool
	Range       display.DisplayRange
	ActiveRows  InclusiveRows
}

// NewSelectionLayout maps a buffer-space selection into display space.
//
// Line mode expands the buffer range to whole lines before remapping.
// A block cursor on a non-empty, non-reversed selection sits on the
// character before the head, so the head moves one column left; at
// column 0 it moves to the end of the previous display row instead,
// never past the document end. Clipping across an excerpt header can
// move the head up more than one row, so the range end and active-row
// end are re-derived from the clipped head rather than assumed.
func NewSelectionLayout(
	selection display.Selection[display.BufferPoint],
	lineMode bool,
	cursorShape display.CursorShape,
	snap display.Snapshot,
	isNewest bool,
	isLocal bool,
) SelectionLayout {
	displaySel := display.MapSelection(selection, snap.ToDisplayPoint)
	rng := display.DisplayRange{Start: displaySel.Start, End: displaySel.End}
	head := displaySel.Head()

	_, prevBoundary := snap.PrevLineBoundary(selection.Start)
	_, nextBoundary := snap.NextLineBoundary(selection.End)
	activeRows := InclusiveRows{Start: prevBoundary.Row, End: nextBoundary.Row}

	if lineMode {
		expanded := snap.ExpandToLine(display.BufferRange{Start: selection.Start, End: selection.End})
		rng = display.DisplayRange{
			Start: snap.ToDisplayPoint(expanded.Start),
			End:   snap.ToDisplayPoint(expanded.End),
		}
	}

	if cursorShape == display.CursorBlock && !rng.IsEmpty() && !selection.Reversed {
		if head.Column > 0 {
			head = snap.ClipPoint(display.NewDisplayPoint(head.Row, head.Column-1), display.BiasLeft)
		} else if head.Row > 0 && !head.Equals(snap.MaxPoint()) {
			head = snap.ClipPoint(
				display.NewDisplayPoint(head.Row-1, snap.LineLen(head.Row-1)),
				display.BiasLeft,
			)
			// Re-derive the end from the clipped head: when the row
			// above is an excerpt header, clipping moves the head up
			// an extra row and the selection must not bleed through.
			rng.End = display.NewDisplayPoint(head.Row+1, 0)
			activeRows.End = head.Row
		}
	}

	return SelectionLayout{
		Head:        head,
		CursorShape: cursorShape,
		IsNewest:    isNewest,
		IsLocal:     isLocal,
		Range:       rng,
		ActiveRows:  activeRows,
	}
}
