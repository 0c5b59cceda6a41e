package scroll

import (
	"testing"
	"time"

	"github.com/dshills/glint/internal/geo"
)

func TestSetPositionClamps(t *testing.T) {
	tests := []struct {
		name string
		pos  geo.Point
		max  geo.Point
		want geo.Point
	}{
		{name: "within bounds", pos: geo.Pt(2, 3), max: geo.Pt(10, 10), want: geo.Pt(2, 3)},
		{name: "negative clamps to zero", pos: geo.Pt(-1, -5), max: geo.Pt(10, 10), want: geo.Pt(0, 0)},
		{name: "beyond max clamps to max", pos: geo.Pt(20, 30), max: geo.Pt(10, 12), want: geo.Pt(10, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			m.SetPosition(tt.pos, tt.max)
			if got := m.Position(); !got.Equals(tt.want) {
				t.Errorf("Position() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClampX(t *testing.T) {
	m := NewManager()
	m.SetPosition(geo.Pt(8, 4), geo.Pt(100, 100))

	if !m.ClampX(5) {
		t.Error("ClampX(5) = false, want true when the position moves")
	}
	if got := m.Position(); !got.Equals(geo.Pt(5, 4)) {
		t.Errorf("Position() = %+v, want (5,4)", got)
	}
	if m.ClampX(5) {
		t.Error("ClampX(5) = true on an already-clamped position")
	}
}

func TestAutoscrollVertically(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		row      float64
		strategy AutoscrollStrategy
		want     float64
	}{
		{name: "fit scrolls down to reveal with context", start: 0, row: 20, strategy: AutoscrollFit, want: 12},
		{name: "fit scrolls up to reveal with context", start: 20, row: 20, strategy: AutoscrollFit, want: 19},
		{name: "fit leaves a visible row alone", start: 18, row: 20, strategy: AutoscrollFit, want: 18},
		{name: "center puts the row mid-viewport", start: 0, row: 20, strategy: AutoscrollCenter, want: 15},
		{name: "never scrolls above the top", start: 5, row: 0, strategy: AutoscrollCenter, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			m.SetPosition(geo.Pt(0, tt.start), geo.Pt(100, 100))
			m.RequestAutoscroll(tt.row, tt.strategy)

			moved := m.AutoscrollVertically(10, 50)
			if got := m.Position().Y; got != tt.want {
				t.Errorf("Position().Y = %v, want %v", got, tt.want)
			}
			if wantMoved := tt.start != tt.want; moved != wantMoved {
				t.Errorf("moved = %v, want %v", moved, wantMoved)
			}
		})
	}
}

func TestAutoscrollVerticallyClampsWithoutRequest(t *testing.T) {
	m := NewManager()
	m.SetPosition(geo.Pt(0, 80), geo.Pt(100, 100))
	if !m.AutoscrollVertically(10, 50) {
		t.Error("expected the out-of-range position to move")
	}
	if got := m.Position().Y; got != 50 {
		t.Errorf("Position().Y = %v, want 50", got)
	}
}

func TestScrollbarsVisibleWindow(t *testing.T) {
	now := time.Now()
	m := NewManager()
	m.SetClock(func() time.Time { return now })

	if m.ScrollbarsVisible() {
		t.Error("visible before any scrolling")
	}

	m.MarkScrolled()
	if !m.ScrollbarsVisible() {
		t.Error("not visible right after scrolling")
	}

	now = now.Add(ScrollbarHideDelay / 2)
	if !m.ScrollbarsVisible() {
		t.Error("hidden before the delay elapsed")
	}

	now = now.Add(ScrollbarHideDelay)
	if m.ScrollbarsVisible() {
		t.Error("still visible after the delay elapsed")
	}
}

func TestDraggingPinsScrollbarVisible(t *testing.T) {
	now := time.Now()
	m := NewManager()
	m.SetClock(func() time.Time { return now })

	m.SetDraggingScrollbar(true)
	now = now.Add(10 * ScrollbarHideDelay)
	if !m.ScrollbarsVisible() {
		t.Error("dragging should pin the scrollbar visible")
	}
	if !m.IsDraggingScrollbar() {
		t.Error("IsDraggingScrollbar() = false during a drag")
	}

	m.SetDraggingScrollbar(false)
	now = now.Add(10 * ScrollbarHideDelay)
	if m.ScrollbarsVisible() {
		t.Error("scrollbar stayed visible after the drag ended")
	}
}
