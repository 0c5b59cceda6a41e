// Package scroll tracks the mutable scroll state between frames: the
// fractional scroll position, its clamped bounds, autoscroll requests,
// and the recent-activity window that drives auto scrollbar
// visibility. All other layout state is rebuilt per frame; this is the
// one piece that persists.
package scroll

import (
	"sync"
	"time"

	"github.com/dshills/glint/internal/geo"
)

// ScrollbarHideDelay is how long after the last scroll the auto policy
// keeps the scrollbar visible.
const ScrollbarHideDelay = time.Second

// AutoscrollStrategy selects how a requested position is revealed.
type AutoscrollStrategy uint8

const (
	// AutoscrollFit scrolls the minimum distance to bring the target
	// row into view.
	AutoscrollFit AutoscrollStrategy = iota
	// AutoscrollCenter centers the viewport on the target row.
	AutoscrollCenter
)

// autoscrollRequest is a pending reveal of a display row.
type autoscrollRequest struct {
	row      float64
	strategy AutoscrollStrategy
}

// Manager holds scroll state. The position is a fractional display
// point: X in columns, Y in rows; the fractional part of Y is sub-row
// scroll, not a row index.
type Manager struct {
	mu sync.Mutex

	position geo.Point

	pending     *autoscrollRequest
	lastScroll  time.Time
	hostVisible bool
	draggingBar bool
	now         func() time.Time
}

// NewManager creates a scroll manager at the origin.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Position returns the current scroll position in (columns, rows).
func (m *Manager) Position() geo.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// SetPosition moves the scroll position, clamping to [0, max] per axis,
// and records scroll activity.
func (m *Manager) SetPosition(p, max geo.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = p.Clamp(geo.Point{}, max)
	m.lastScroll = m.now()
}

// ClampX constrains the horizontal position to [0, maxX]. Returns true
// if the position changed, meaning the caller's geometry is stale.
func (m *Manager) ClampX(maxX float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	clamped := m.position.Clamp(geo.Point{}, geo.Pt(maxX, m.position.Y))
	if clamped.Equals(m.position) {
		return false
	}
	m.position = clamped
	return true
}

// ClampY constrains the vertical position to [0, maxY]. Returns true if
// the position changed.
func (m *Manager) ClampY(maxY float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	clamped := m.position.Clamp(geo.Point{}, geo.Pt(m.position.X, maxY))
	if clamped.Equals(m.position) {
		return false
	}
	m.position = clamped
	return true
}

// RequestAutoscroll schedules a reveal of the given display row before
// the next layout.
func (m *Manager) RequestAutoscroll(row float64, strategy AutoscrollStrategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = &autoscrollRequest{row: row, strategy: strategy}
}

// AutoscrollVertically applies a pending reveal against the given
// viewport geometry and clamps Y into [0, maxY]. Returns true if the
// position moved.
func (m *Manager) AutoscrollVertically(visibleRows, maxY float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	original := m.position
	if m.position.Y > maxY {
		m.position.Y = maxY
	}

	if req := m.pending; req != nil {
		m.pending = nil
		switch req.strategy {
		case AutoscrollCenter:
			m.position.Y = req.row - visibleRows/2
		default:
			// Keep one row of context above/below when fitting.
			if req.row < m.position.Y+1 {
				m.position.Y = req.row - 1
			} else if req.row >= m.position.Y+visibleRows-1 {
				m.position.Y = req.row - visibleRows + 2
			}
		}
		if m.position.Y < 0 {
			m.position.Y = 0
		}
		if m.position.Y > maxY {
			m.position.Y = maxY
		}
	}

	return !m.position.Equals(original)
}

// MarkScrolled records scroll activity without moving the position,
// keeping the auto scrollbar visible.
func (m *Manager) MarkScrolled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastScroll = m.now()
}

// ScrollbarsVisible reports whether scrolling occurred within the
// activity window.
func (m *Manager) ScrollbarsVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draggingBar || m.now().Sub(m.lastScroll) < ScrollbarHideDelay
}

// SetHostScrollbarsVisible records the host platform's visibility for
// the System policy.
func (m *Manager) SetHostScrollbarsVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hostVisible = visible
}

// HostScrollbarsVisible returns the host platform's visibility.
func (m *Manager) HostScrollbarsVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hostVisible
}

// SetDraggingScrollbar marks a scrollbar drag in progress. Dragging
// pins the scrollbar visible.
func (m *Manager) SetDraggingScrollbar(dragging bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draggingBar = dragging
	if dragging {
		m.lastScroll = m.now()
	}
}

// IsDraggingScrollbar reports whether a scrollbar drag is in progress.
func (m *Manager) IsDraggingScrollbar() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draggingBar
}

// SetClock overrides the time source for tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
