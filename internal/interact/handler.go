package interact

import (
	"math"

	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/geo"
	"github.com/dshills/glint/internal/layout"
)

// MouseDownEvent is a button press in window space.
type MouseDownEvent struct {
	Position   geo.Point
	Modifiers  Modifiers
	ClickCount int
}

// MouseUpEvent is a button release in window space.
type MouseUpEvent struct {
	Position  geo.Point
	Modifiers Modifiers
}

// MouseMoveEvent is a pointer move; LeftHeld reports whether the left
// button is down.
type MouseMoveEvent struct {
	Position  geo.Point
	Modifiers Modifiers
	LeftHeld  bool
}

// WheelEvent is a scroll gesture. Precise deltas are pixels; imprecise
// deltas are lines (y) and columns (x).
type WheelEvent struct {
	Position geo.Point
	Delta    geo.Point
	Precise  bool
}

// Handler routes events against a frame's layout. The embedder wires
// the callbacks; nil callbacks are skipped. All methods return true
// when the event was consumed.
type Handler struct {
	// Select receives selection phases.
	Select func(SelectPhase)
	// SetScrollPosition receives clamped scroll positions in
	// column/row units.
	SetScrollPosition func(geo.Point)
	// DeployContextMenu opens a menu at a window position for the
	// clicked display point.
	DeployContextMenu func(position geo.Point, point display.DisplayPoint)
	// Navigate handles modifier-click navigation.
	Navigate func(NavigationRequest)
	// HasPendingSelection reports whether a mouse selection is in
	// flight.
	HasPendingSelection func() bool
	// HasPendingNonEmptySelection reports whether the in-flight
	// selection covers any text.
	HasPendingNonEmptySelection func() bool
}

// MouseLeftDown begins, extends, or adds a selection. A press in the
// gutter selects whole lines (a synthetic triple click); presses
// outside both gutter and text are ignored.
func (h *Handler) MouseLeftDown(ev MouseDownEvent, state *layout.LayoutState) bool {
	textBounds := state.TextBounds()
	clickCount := ev.ClickCount
	if state.GutterBounds().Contains(ev.Position) {
		clickCount = 3
	} else if !textBounds.Contains(ev.Position) {
		return false
	}

	hit := state.PositionMap.PointForPosition(textBounds, ev.Position)
	position := hit.PreviousValid

	switch {
	case ev.Modifiers.Shift && ev.Modifiers.Alt:
		h.emit(BeginColumnar{Position: position, GoalColumn: hit.ExactUnclipped.Column})
	case ev.Modifiers.Shift && !ev.Modifiers.Control && !ev.Modifiers.Alt && !ev.Modifiers.Command:
		h.emit(Extend{Position: position, ClickCount: clickCount})
	default:
		h.emit(Begin{Position: position, Add: ev.Modifiers.Alt, ClickCount: clickCount})
	}
	return true
}

// MouseRightDown deploys the context menu at the clicked point.
func (h *Handler) MouseRightDown(ev MouseDownEvent, state *layout.LayoutState) bool {
	textBounds := state.TextBounds()
	if !textBounds.Contains(ev.Position) {
		return false
	}
	if h.DeployContextMenu != nil {
		hit := state.PositionMap.PointForPosition(textBounds, ev.Position)
		h.DeployContextMenu(ev.Position, hit.PreviousValid)
	}
	return true
}

// MouseUp ends any pending selection. A command-click that was not a
// drag navigates to the definition under the pointer; alt requests a
// split pane and shift the type definition. The drag test happens
// before the selection ends so a completed drag never also navigates.
func (h *Handler) MouseUp(ev MouseUpEvent, state *layout.LayoutState) bool {
	pending := h.HasPendingSelection != nil && h.HasPendingSelection()
	dragged := pending && h.HasPendingNonEmptySelection != nil && h.HasPendingNonEmptySelection()

	if pending {
		h.emit(End{})
	}

	textBounds := state.TextBounds()
	if !dragged && ev.Modifiers.Command && textBounds.Contains(ev.Position) {
		if h.Navigate != nil {
			hit := state.PositionMap.PointForPosition(textBounds, ev.Position)
			kind := NavigateDefinition
			if ev.Modifiers.Shift {
				kind = NavigateTypeDefinition
			}
			h.Navigate(NavigationRequest{
				Point:     hit.PreviousValid,
				Kind:      kind,
				SplitPane: ev.Modifiers.Alt,
			})
		}
		return true
	}
	return pending
}

// MouseMoved updates a drag in flight. Dragging past the text edges
// autoscrolls: the scroll delta grows with the overshoot distance on a
// power law, so small overshoots creep and large ones fly.
func (h *Handler) MouseMoved(ev MouseMoveEvent, state *layout.LayoutState) bool {
	if !ev.LeftHeld || h.HasPendingSelection == nil || !h.HasPendingSelection() {
		return false
	}

	pm := state.PositionMap
	textBounds := state.TextBounds()
	hit := pm.PointForPosition(textBounds, ev.Position)

	verticalMargin := math.Min(pm.LineHeight, textBounds.Size.Height/3)
	horizontalMargin := math.Min(pm.EmWidth, textBounds.Size.Width/3)

	var delta geo.Point
	if top := textBounds.Origin.Y + verticalMargin; ev.Position.Y < top {
		delta.Y = -scaleVerticalDelta(top - ev.Position.Y)
	}
	if bottom := textBounds.Bottom() - verticalMargin; ev.Position.Y > bottom {
		delta.Y = scaleVerticalDelta(ev.Position.Y - bottom)
	}
	if left := textBounds.Origin.X + horizontalMargin; ev.Position.X < left {
		delta.X = -scaleHorizontalDelta(left - ev.Position.X)
	}
	if right := textBounds.Right() - horizontalMargin; ev.Position.X > right {
		delta.X = scaleHorizontalDelta(ev.Position.X - right)
	}

	scrollPosition := geo.Pt(
		clamp(pm.ScrollPosition.X+delta.X, 0, pm.ScrollMax.X),
		clamp(pm.ScrollPosition.Y+delta.Y, 0, pm.ScrollMax.Y),
	)

	h.emit(Update{
		Position:       hit.PreviousValid,
		GoalColumn:     hit.ExactUnclipped.Column,
		ScrollPosition: scrollPosition,
	})
	return true
}

// Wheel scrolls the view. Imprecise (line-based) deltas are converted
// to pixels first; the resulting position is clamped into the
// document.
func (h *Handler) Wheel(ev WheelEvent, state *layout.LayoutState) bool {
	textBounds := state.TextBounds()
	if !textBounds.Contains(ev.Position) {
		return false
	}
	pm := state.PositionMap

	delta := ev.Delta
	if !ev.Precise {
		delta.X *= pm.EmWidth
		delta.Y *= pm.LineHeight
	}

	position := geo.Pt(
		clamp((pm.ScrollPixels.X-delta.X)/pm.EmWidth, 0, pm.ScrollMax.X),
		clamp((pm.ScrollPixels.Y-delta.Y)/pm.LineHeight, 0, pm.ScrollMax.Y),
	)
	if h.SetScrollPosition != nil {
		h.SetScrollPosition(position)
	}
	return true
}

// ScrollbarDrag maps a thumb drag from prevY to y into a new scroll
// position.
func (h *Handler) ScrollbarDrag(prevY, y float64, state *layout.LayoutState) {
	pm := state.PositionMap
	row := clamp(pm.ScrollPosition.Y+state.Scrollbar.RowForThumbDelta(y-prevY), 0, pm.ScrollMax.Y)
	if h.SetScrollPosition != nil {
		h.SetScrollPosition(geo.Pt(pm.ScrollPosition.X, row))
	}
}

// ScrollbarTrackClick centers the viewport on the clicked track
// position.
func (h *Handler) ScrollbarTrackClick(y float64, state *layout.LayoutState) {
	pm := state.PositionMap
	visibleRows := state.TextSize.Height / pm.LineHeight
	row := clamp(state.Scrollbar.RowForTrackPosition(y)-visibleRows/2, 0, pm.ScrollMax.Y)
	if h.SetScrollPosition != nil {
		h.SetScrollPosition(geo.Pt(pm.ScrollPosition.X, row))
	}
}

func (h *Handler) emit(phase SelectPhase) {
	if h.Select != nil {
		h.Select(phase)
	}
}

// scaleVerticalDelta grows sublinearly in pixels but superlinearly in
// feel: delta^1.5 / 100 rows per event.
func scaleVerticalDelta(delta float64) float64 {
	return math.Pow(delta, 1.5) / 100
}

// scaleHorizontalDelta is gentler: delta^1.2 / 300 columns per event.
func scaleHorizontalDelta(delta float64) float64 {
	return math.Pow(delta, 1.2) / 300
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
