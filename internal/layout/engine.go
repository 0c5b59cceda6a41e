package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/dshills/glint/internal/collab"
	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/geo"
	"github.com/dshills/glint/internal/scroll"
	"github.com/dshills/glint/internal/settings"
	"github.com/dshills/glint/internal/shaping"
	"github.com/dshills/glint/internal/theme"
)

const (
	gutterPaddingFactor = 3.5
	tabInvisibleGlyph   = "→"
	spaceInvisibleGlyph = "•"
)

// Engine computes frame layouts. It owns the pieces that persist
// across frames (shaper, theme, settings, scroll state) while every
// per-frame product lives in the returned LayoutState. ComputeLayout
// must be called from a single goroutine; the results it returns are
// immutable and safe to share.
type Engine struct {
	shaper   shaping.TextShaper
	fontSize float64
	theme    *theme.Theme
	settings settings.Settings
	scroll   *scroll.Manager
	collab   collab.Provider
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFontSize sets the font size layouts are shaped at.
func WithFontSize(size float64) Option {
	return func(e *Engine) { e.fontSize = size }
}

// WithTheme sets the color theme.
func WithTheme(t *theme.Theme) Option {
	return func(e *Engine) { e.theme = t }
}

// WithSettings sets the editor settings.
func WithSettings(s settings.Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// WithScrollManager shares a scroll manager with the embedder.
func WithScrollManager(m *scroll.Manager) Option {
	return func(e *Engine) { e.scroll = m }
}

// WithCollabProvider wires a source of remote selections.
func WithCollabProvider(p collab.Provider) Option {
	return func(e *Engine) { e.collab = p }
}

// WithLogger sets the diagnostics logger. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine with defaults: font size 14, the default
// theme and settings, a fresh scroll manager, no collaboration, and a
// no-op logger.
func NewEngine(shaper shaping.TextShaper, opts ...Option) *Engine {
	e := &Engine{
		shaper:   shaper,
		fontSize: 14,
		theme:    theme.Default(),
		settings: settings.Default(),
		scroll:   scroll.NewManager(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scroll exposes the scroll manager for interaction handlers.
func (e *Engine) Scroll() *scroll.Manager { return e.scroll }

// Settings returns the current settings.
func (e *Engine) Settings() settings.Settings { return e.settings }

// SetSettings replaces the settings used by subsequent frames.
func (e *Engine) SetSettings(s settings.Settings) { e.settings = s }

// Theme returns the active theme.
func (e *Engine) Theme() *theme.Theme { return e.theme }

// FrameInput is everything that can change between frames. The engine
// reads it, never retains it.
type FrameInput struct {
	// Bounds is the editor's window-space rectangle.
	Bounds geo.Rect
	// Source supplies the display snapshot and accepts wrap width.
	Source display.Source

	// Selections are the local participant's disjoint selections in
	// buffer space, ordered by position.
	Selections []display.Selection[display.BufferPoint]
	// PendingSelection is the in-flight mouse selection, if any.
	PendingSelection *display.Selection[display.BufferPoint]
	// NewestSelectionID identifies the most recently changed
	// selection; it drives relative numbering and menu anchoring.
	NewestSelectionID int
	CursorShape       display.CursorShape
	LineMode          bool
	// HideLocalSelections suppresses local selection layout, used
	// while another pane has focus.
	HideLocalSelections bool

	// SearchMatches are highlighted and marked in the scrollbar.
	SearchMatches []display.BufferRange
	// DiffHunks are marked in the scrollbar.
	DiffHunks []display.BufferRange
	// HighlightedRows is an optional full-width row band.
	HighlightedRows *display.RowRange

	// ContextMenuSize, when set, requests menu placement at the newest
	// cursor.
	ContextMenuSize *geo.Size
	// HoverPoint and HoverSizes, when set, request hover popover
	// placement.
	HoverPoint *display.DisplayPoint
	HoverSizes []geo.Size
}

// ComputeLayout runs one layout pass: it sizes the gutter, writes the
// wrap width back to the source, applies any pending autoscroll,
// shapes the visible window plus one slack row, lays out selections,
// line numbers, scrollbar, overlays, and returns the frame's immutable
// state. A horizontal clamp discovered at the end of the pass is
// written back through the scroll manager so the next frame starts
// consistent; this frame keeps the position its lines were shaped for.
func (e *Engine) ComputeLayout(input FrameInput) *LayoutState {
	metrics := e.shaper.Metrics(e.fontSize)
	lineHeight := metrics.LineHeight
	em := metrics.EmWidth
	emAdvance := metrics.EmAdvance

	bounds := input.Bounds
	snap := input.Source.Snapshot()

	var gutterWidth, gutterPadding, gutterMargin float64
	if e.settings.ShowGutter {
		digits := lineNumberDigits(snap.MaxBufferRow(), e.settings.MinLineNumberDigits)
		gutterPadding = math.Round(em * gutterPaddingFactor / 2)
		gutterWidth = measureColumns(e.shaper, e.fontSize, digits) + gutterPadding*2
		gutterMargin = -metrics.Descent
	}

	textWidth := bounds.Size.Width - gutterWidth
	textSize := geo.Sz(textWidth, bounds.Size.Height)
	overscroll := em
	editorWidth := textWidth - gutterMargin - overscroll - em

	var wrapColumns uint32
	switch e.settings.SoftWrap {
	case settings.WrapNone:
		wrapColumns = MaxLineLen / 2
	case settings.WrapEditorWidth:
		wrapColumns = columnsForWidth(editorWidth, emAdvance)
	case settings.WrapColumn:
		wrapColumns = min(e.settings.WrapColumn, columnsForWidth(editorWidth, emAdvance))
	}
	if input.Source.SetWrapWidth(wrapColumns) {
		snap = input.Source.Snapshot()
	}

	heightInLines := bounds.Size.Height / lineHeight
	maxRow := snap.MaxPoint().Row
	scrollMaxY := math.Max(0, float64(maxRow)+1+e.settings.ScrollBeyondLastRow-heightInLines)

	e.scroll.AutoscrollVertically(heightInLines, scrollMaxY)
	scrollPosition := e.scroll.Position()

	startRow := uint32(scrollPosition.Y)
	endRow := 1 + min(uint32(math.Ceil(scrollPosition.Y+heightInLines)), maxRow)
	rows := display.RowRange{Start: startRow, End: endRow}

	startAnchor := display.AnchorMin
	if startRow > 0 {
		startAnchor = snap.AnchorBefore(snap.ToBufferPoint(display.NewDisplayPoint(startRow, 0)))
	}
	endAnchor := display.AnchorMax
	if endRow <= maxRow {
		endAnchor = snap.AnchorAfter(snap.ToBufferPoint(display.NewDisplayPoint(endRow, 0)))
	}

	activeRows := make(map[uint32]bool)
	var selectionGroups []ParticipantSelections
	var newestHead display.DisplayPoint
	haveNewest := false

	if !input.HideLocalSelections {
		locals := input.Selections
		if input.PendingSelection != nil {
			locals = append(locals[:len(locals):len(locals)], *input.PendingSelection)
		}
		layouts := make([]SelectionLayout, 0, len(locals))
		for _, sel := range locals {
			isNewest := sel.ID == input.NewestSelectionID
			sl := NewSelectionLayout(sel, input.LineMode, input.CursorShape, snap, isNewest, true)
			if isNewest {
				newestHead = sl.Head
				haveNewest = true
			}
			for row := max(sl.ActiveRows.Start, startRow); row <= min(sl.ActiveRows.End, endRow-1); row++ {
				nonEmpty := activeRows[row]
				activeRows[row] = nonEmpty || !sl.Range.IsEmpty()
			}
			layouts = append(layouts, sl)
		}
		if len(layouts) > 0 {
			selectionGroups = append(selectionGroups, ParticipantSelections{
				Color:      e.theme.LocalPlayer,
				Selections: layouts,
			})
		}
	}
	if !haveNewest {
		// Relative numbering and menu anchoring still track the newest
		// cursor when local selections are hidden.
		for _, sel := range input.Selections {
			if sel.ID == input.NewestSelectionID {
				newestHead = NewSelectionLayout(sel, input.LineMode, input.CursorShape, snap, true, true).Head
				haveNewest = true
				break
			}
		}
	}

	if e.collab != nil {
		selectionGroups = append(selectionGroups,
			e.layoutRemoteSelections(startAnchor, endAnchor, snap)...)
	}

	showScrollbars := false
	switch e.settings.Scrollbar.Show {
	case settings.ScrollbarAuto:
		showScrollbars = (e.settings.Scrollbar.Selections && len(input.SearchMatches) > 0) ||
			(e.settings.Scrollbar.Diff && len(input.DiffHunks) > 0) ||
			e.scroll.ScrollbarsVisible()
	case settings.ScrollbarSystem:
		showScrollbars = e.scroll.HostScrollbarsVisible()
	case settings.ScrollbarAlways:
		showScrollbars = true
	case settings.ScrollbarNever:
		showScrollbars = false
	}

	var lineNumbers []*LineNumber
	var foldIndicators []*FoldIndicator
	if e.settings.ShowGutter {
		lineNumbers, foldIndicators = shapeLineNumbers(
			rows, activeRows, newestHead,
			e.settings.RelativeLineNumbers && haveNewest,
			snap, e.shaper, e.fontSize, e.logger)
	}

	lines := shapeVisibleLines(rows, snap, e.shaper, e.fontSize, e.logger)
	maxVisibleLineWidth := 0.0
	for _, l := range lines {
		if l.Line.Width > maxVisibleLineWidth {
			maxVisibleLineWidth = l.Line.Width
		}
	}

	longestLineWidth := maxVisibleLineWidth
	if longest, err := e.shaper.ShapeLine(snap.Line(snap.LongestRow()), e.fontSize); err == nil {
		longestLineWidth = longest.Width
	}
	scrollWidth := math.Max(longestLineWidth, maxVisibleLineWidth) + overscroll

	scrollMaxX := math.Max(0, (scrollWidth-textSize.Width)/em)
	// Writes back for the next frame; this frame's position map keeps
	// the position the lines above were shaped for.
	e.scroll.ClampX(scrollMaxX)

	positionMap := &PositionMap{
		Size:           textSize,
		LineHeight:     lineHeight,
		EmWidth:        em,
		EmAdvance:      emAdvance,
		ScrollPosition: scrollPosition,
		ScrollPixels:   geo.Pt(scrollPosition.X*em, scrollPosition.Y*lineHeight),
		ScrollMax:      geo.Pt(scrollMaxX, scrollMaxY),
		Lines:          lines,
		Snapshot:       snap,
	}

	scrollbar := computeScrollbar(
		bounds,
		scrollPosition.Y, scrollPosition.Y+heightInLines,
		maxRow, lineHeight, em, showScrollbars)
	if e.settings.Scrollbar.Selections {
		scrollbar.addMarkers(displayRowRanges(snap, input.SearchMatches), e.theme.SearchHighlight)
	}
	if e.settings.Scrollbar.Diff {
		scrollbar.addMarkers(displayRowRanges(snap, input.DiffHunks), e.theme.ScrollbarMarker)
	}

	var highlighted []HighlightedDisplayRange
	for _, br := range input.SearchMatches {
		dr := display.DisplayRange{
			Start: snap.ToDisplayPoint(br.Start),
			End:   snap.ToDisplayPoint(br.End),
		}
		if dr.End.Row < startRow || dr.Start.Row >= endRow {
			continue
		}
		highlighted = append(highlighted, HighlightedDisplayRange{Range: dr, Color: e.theme.SearchHighlight})
	}

	state := &LayoutState{
		PositionMap:        positionMap,
		Bounds:             bounds,
		GutterSize:         geo.Sz(gutterWidth, bounds.Size.Height),
		GutterPadding:      gutterPadding,
		GutterMargin:       gutterMargin,
		TextSize:           textSize,
		FontSize:           e.fontSize,
		LineHeight:         lineHeight,
		EmWidth:            em,
		EmAdvance:          emAdvance,
		VisibleRows:        rows,
		VisibleAnchorRange: display.AnchorRange{Start: startAnchor, End: endAnchor},
		MaxRow:             maxRow,
		LongestLineWidth:   longestLineWidth,
		ActiveRows:         activeRows,
		HighlightedRows:    input.HighlightedRows,
		LineNumbers:        lineNumbers,
		FoldIndicators:     foldIndicators,
		Lines:              lines,
		Selections:         selectionGroups,
		HighlightedRanges:  highlighted,
		WrapGuides:         e.layoutWrapGuides(editorWidth),
		Scrollbar:          scrollbar,
	}

	state.Cursors = e.layoutCursors(state)

	if e.settings.ShowWhitespace != settings.WhitespaceNone {
		if tab, err := e.shaper.ShapeLine(tabInvisibleGlyph, e.fontSize); err == nil {
			state.TabInvisible = tab
		}
		if space, err := e.shaper.ShapeLine(spaceInvisibleGlyph, e.fontSize); err == nil {
			state.SpaceInvisible = space
		}
	}

	if input.ContextMenuSize != nil && haveNewest && rows.Contains(newestHead.Row) {
		size := *input.ContextMenuSize
		maxHeight := math.Min(MaxContextMenuLines*lineHeight, (bounds.Size.Height-lineHeight)/2)
		if size.Height > maxHeight {
			size.Height = maxHeight
		}
		menu := placeContextMenu(
			newestHead, size, state.ContentOrigin(), bounds,
			lines[newestHead.Row-startRow], lineHeight, positionMap.ScrollPixels)
		state.ContextMenu = &menu
	}

	if input.HoverPoint != nil && rows.Contains(input.HoverPoint.Row) {
		state.HoverPopovers = placeHoverPopovers(
			*input.HoverPoint, input.HoverSizes, state.ContentOrigin(), bounds,
			lines[input.HoverPoint.Row-startRow], lineHeight, positionMap.ScrollPixels)
	}

	return state
}

// layoutRemoteSelections groups the provider's selections by replica
// and lays each out with its participant color.
func (e *Engine) layoutRemoteSelections(start, end display.Anchor, snap display.Snapshot) []ParticipantSelections {
	remote := e.collab.SelectionsInRange(start, end, snap)
	if len(remote) == 0 {
		return nil
	}

	var groups []ParticipantSelections
	var current *ParticipantSelections
	lastReplica := uint16(0)
	for _, sel := range remote {
		if current == nil || sel.ReplicaID != lastReplica {
			color := e.theme.Absent()
			if sel.ParticipantIndex != nil {
				color = e.theme.ColorForParticipant(*sel.ParticipantIndex)
			}
			groups = append(groups, ParticipantSelections{Color: color})
			current = &groups[len(groups)-1]
			lastReplica = sel.ReplicaID
		}
		current.Selections = append(current.Selections,
			NewSelectionLayout(sel.Selection, sel.LineMode, sel.CursorShape, snap, false, false))
	}
	return groups
}

// layoutCursors positions a cursor for every selection head inside the
// visible rows, relative to the content origin.
func (e *Engine) layoutCursors(state *LayoutState) []CursorLayout {
	var cursors []CursorLayout
	pm := state.PositionMap
	for _, group := range state.Selections {
		for _, sel := range group.Selections {
			if !state.VisibleRows.Contains(sel.Head.Row) {
				continue
			}
			line := state.Lines[sel.Head.Row-state.VisibleRows.Start].Line
			x := line.XForIndex(int(sel.Head.Column)) - pm.ScrollPixels.X
			y := float64(sel.Head.Row)*state.LineHeight - pm.ScrollPixels.Y

			width := state.EmWidth
			if sel.CursorShape == display.CursorBlock || sel.CursorShape == display.CursorUnderscore {
				if w := line.XForIndex(int(sel.Head.Column)+1) - line.XForIndex(int(sel.Head.Column)); w > 0 {
					width = w
				}
			}

			cursors = append(cursors, CursorLayout{
				Point:    sel.Head,
				Origin:   geo.Pt(x, y),
				Width:    width,
				Shape:    sel.CursorShape,
				Color:    group.Color.Cursor,
				IsNewest: sel.IsNewest,
			})
		}
	}
	return cursors
}

// layoutWrapGuides converts the configured guide columns to pixel
// offsets, dropping guides that fall outside the editor width. In
// fixed-column wrap mode the wrap column itself gets an active guide.
func (e *Engine) layoutWrapGuides(editorWidth float64) []WrapGuide {
	columns := e.settings.WrapGuides
	wrapActive := e.settings.SoftWrap == settings.WrapColumn
	if wrapActive && !containsColumn(columns, e.settings.WrapColumn) {
		columns = append(columns[:len(columns):len(columns)], e.settings.WrapColumn)
	}

	var guides []WrapGuide
	for _, col := range columns {
		x := measureColumns(e.shaper, e.fontSize, int(col))
		if x > editorWidth {
			continue
		}
		guides = append(guides, WrapGuide{
			X:      x,
			Active: wrapActive && col == e.settings.WrapColumn,
		})
	}
	return guides
}

func containsColumn(cols []uint32, col uint32) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}

// displayRowRanges maps buffer ranges to the display rows they span.
func displayRowRanges(snap display.Snapshot, ranges []display.BufferRange) []display.RowRange {
	out := make([]display.RowRange, 0, len(ranges))
	for _, r := range ranges {
		start := snap.ToDisplayPoint(r.Start).Row
		end := snap.ToDisplayPoint(r.End).Row + 1
		out = append(out, display.RowRange{Start: start, End: end})
	}
	return out
}

// columnsForWidth converts a pixel width to whole columns.
func columnsForWidth(width, emAdvance float64) uint32 {
	if width <= 0 || emAdvance <= 0 {
		return 0
	}
	return uint32(width / emAdvance)
}
