package main

import (
	"fmt"
	"math"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/display/displaytest"
	"github.com/dshills/glint/internal/geo"
	"github.com/dshills/glint/internal/interact"
	"github.com/dshills/glint/internal/layout"
	"github.com/dshills/glint/internal/settings"
	"github.com/dshills/glint/internal/shaping"
	"github.com/dshills/glint/internal/theme"
)

// multiClickWindow is how close together presses must land to count as
// a double or triple click.
const multiClickWindow = 400 * time.Millisecond

type viewer struct {
	screen  tcell.Screen
	source  *displaytest.Source
	engine  *layout.Engine
	handler *interact.Handler
	logger  *zap.Logger

	state *layout.LayoutState

	selections []display.Selection[display.BufferPoint]
	pending    *display.Selection[display.BufferPoint]
	nextSelID  int
	newestID   int

	lastClickAt  time.Time
	lastClickPos geo.Point
	clickCount   int

	showMenu      bool
	draggingThumb bool
	dragY         float64
	prevButtons   tcell.ButtonMask
}

func newViewer(source *displaytest.Source, cfg settings.Settings, logger *zap.Logger) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	v := &viewer{
		screen: screen,
		source: source,
		logger: logger,
	}
	// Terminal cells are the pixel grid: cell width and line height 1
	// at font size 1.
	v.engine = layout.NewEngine(shaping.NewMonospace(1, 1),
		layout.WithFontSize(1),
		layout.WithSettings(cfg),
		layout.WithLogger(logger),
	)
	v.handler = &interact.Handler{
		Select:            v.applyPhase,
		SetScrollPosition: v.setScrollPosition,
		DeployContextMenu: func(_ geo.Point, point display.DisplayPoint) {
			v.showMenu = true
			logger.Info("context menu", zap.String("at", point.String()))
		},
		Navigate: func(req interact.NavigationRequest) {
			logger.Info("navigate",
				zap.String("at", req.Point.String()),
				zap.Int("kind", int(req.Kind)),
				zap.Bool("split", req.SplitPane))
		},
		HasPendingSelection: func() bool { return v.pending != nil },
		HasPendingNonEmptySelection: func() bool {
			return v.pending != nil && !v.pending.Start.Equals(v.pending.End)
		},
	}
	v.selections = []display.Selection[display.BufferPoint]{{ID: 0}}
	v.nextSelID = 1
	return v, nil
}

func (v *viewer) Close() {
	v.screen.Fini()
}

// Run drives the frame loop: compute a layout, paint it, block on the
// next event, repeat.
func (v *viewer) Run() error {
	for {
		v.frame()
		v.paint()
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		quit, err := v.handleEvent(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (v *viewer) frame() {
	width, height := v.screen.Size()
	input := layout.FrameInput{
		Bounds:            geo.RectFrom(0, 0, float64(width), float64(height)),
		Source:            v.source,
		Selections:        v.selections,
		PendingSelection:  v.pending,
		NewestSelectionID: v.newestID,
		CursorShape:       display.CursorBlock,
	}
	if v.showMenu {
		size := geo.Sz(24, 8)
		input.ContextMenuSize = &size
	}
	v.state = v.engine.ComputeLayout(input)
}

func (v *viewer) handleEvent(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape:
			if v.showMenu {
				v.showMenu = false
				return false, nil
			}
			return true, nil
		case ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return true, nil
		case ev.Key() == tcell.KeyUp:
			v.scrollLines(-1)
		case ev.Key() == tcell.KeyDown:
			v.scrollLines(1)
		case ev.Key() == tcell.KeyPgUp:
			v.scrollLines(-int(v.state.TextSize.Height))
		case ev.Key() == tcell.KeyPgDn:
			v.scrollLines(int(v.state.TextSize.Height))
		}
	case *tcell.EventMouse:
		v.handleMouse(ev)
	}
	return false, nil
}

func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := geo.Pt(float64(x), float64(y))
	buttons := ev.Buttons()
	mods := modifiersFrom(ev.Modifiers())
	pressed := buttons &^ v.prevButtons
	released := v.prevButtons &^ buttons
	v.prevButtons = buttons

	switch {
	case buttons&tcell.WheelUp != 0:
		v.handler.Wheel(interact.WheelEvent{Position: pos, Delta: geo.Pt(0, 3)}, v.state)
	case buttons&tcell.WheelDown != 0:
		v.handler.Wheel(interact.WheelEvent{Position: pos, Delta: geo.Pt(0, -3)}, v.state)
	case buttons&tcell.WheelLeft != 0:
		v.handler.Wheel(interact.WheelEvent{Position: pos, Delta: geo.Pt(3, 0)}, v.state)
	case buttons&tcell.WheelRight != 0:
		v.handler.Wheel(interact.WheelEvent{Position: pos, Delta: geo.Pt(-3, 0)}, v.state)

	case pressed&tcell.Button1 != 0:
		sb := v.state.Scrollbar
		if sb.Visible && sb.Thumb.Contains(pos) {
			v.draggingThumb = true
			v.dragY = pos.Y
			v.engine.Scroll().SetDraggingScrollbar(true)
			return
		}
		if sb.Visible && sb.Track.Contains(pos) {
			v.handler.ScrollbarTrackClick(pos.Y, v.state)
			return
		}
		v.handler.MouseLeftDown(interact.MouseDownEvent{
			Position:   pos,
			Modifiers:  mods,
			ClickCount: v.countClick(pos),
		}, v.state)

	case pressed&tcell.Button2 != 0:
		v.handler.MouseRightDown(interact.MouseDownEvent{Position: pos, Modifiers: mods}, v.state)

	case released&tcell.Button1 != 0:
		if v.draggingThumb {
			v.draggingThumb = false
			v.engine.Scroll().SetDraggingScrollbar(false)
			return
		}
		v.handler.MouseUp(interact.MouseUpEvent{Position: pos, Modifiers: mods}, v.state)

	default:
		if v.draggingThumb {
			v.handler.ScrollbarDrag(v.dragY, pos.Y, v.state)
			v.dragY = pos.Y
			return
		}
		v.handler.MouseMoved(interact.MouseMoveEvent{
			Position:  pos,
			Modifiers: mods,
			LeftHeld:  buttons&tcell.Button1 != 0,
		}, v.state)
	}
}

func (v *viewer) countClick(pos geo.Point) int {
	now := time.Now()
	if now.Sub(v.lastClickAt) < multiClickWindow && pos.Equals(v.lastClickPos) {
		v.clickCount++
		if v.clickCount > 3 {
			v.clickCount = 1
		}
	} else {
		v.clickCount = 1
	}
	v.lastClickAt = now
	v.lastClickPos = pos
	return v.clickCount
}

func (v *viewer) scrollLines(delta int) {
	pm := v.state.PositionMap
	pos := geo.Pt(pm.ScrollPosition.X, pm.ScrollPosition.Y+float64(delta))
	v.setScrollPosition(pos)
}

func (v *viewer) setScrollPosition(pos geo.Point) {
	v.engine.Scroll().SetPosition(pos, v.state.PositionMap.ScrollMax)
}

// applyPhase is the selection state machine behind the interaction
// handler: Begin/Extend open a pending selection, Update drags its
// head, End commits it.
func (v *viewer) applyPhase(phase interact.SelectPhase) {
	snap := v.source.Snapshot()
	switch p := phase.(type) {
	case interact.Begin:
		rng := v.rangeForClick(snap, p.Position, p.ClickCount)
		sel := display.Selection[display.BufferPoint]{ID: v.nextSelID, Start: rng.Start, End: rng.End}
		v.nextSelID++
		v.newestID = sel.ID
		if !p.Add {
			v.selections = nil
		}
		v.pending = &sel

	case interact.BeginColumnar:
		bp := snap.ToBufferPoint(p.Position)
		sel := display.Selection[display.BufferPoint]{
			ID: v.nextSelID, Start: bp, End: bp, GoalColumn: p.GoalColumn,
		}
		v.nextSelID++
		v.newestID = sel.ID
		v.pending = &sel

	case interact.Extend:
		base := v.newestSelection()
		if base == nil {
			return
		}
		sel := *base
		v.dragHead(snap, &sel, p.Position)
		v.pending = &sel
		v.newestID = sel.ID

	case interact.Update:
		if v.pending != nil {
			v.dragHead(snap, v.pending, p.Position)
			v.pending.GoalColumn = p.GoalColumn
		}
		v.setScrollPosition(p.ScrollPosition)

	case interact.End:
		if v.pending != nil {
			v.selections = append(v.selections, *v.pending)
			v.pending = nil
		}
	}
}

func (v *viewer) newestSelection() *display.Selection[display.BufferPoint] {
	for i := range v.selections {
		if v.selections[i].ID == v.newestID {
			return &v.selections[i]
		}
	}
	if len(v.selections) > 0 {
		return &v.selections[len(v.selections)-1]
	}
	return nil
}

// dragHead moves the selection head to position, keeping the tail
// fixed and Reversed consistent.
func (v *viewer) dragHead(snap display.Snapshot, sel *display.Selection[display.BufferPoint], position display.DisplayPoint) {
	head := snap.ToBufferPoint(position)
	tail := sel.Tail()
	if head.Before(tail) {
		sel.Start, sel.End, sel.Reversed = head, tail, true
	} else {
		sel.Start, sel.End, sel.Reversed = tail, head, false
	}
}

func (v *viewer) rangeForClick(snap display.Snapshot, position display.DisplayPoint, clickCount int) display.BufferRange {
	bp := snap.ToBufferPoint(position)
	switch clickCount {
	case 2:
		return wordRange(snap, position)
	case 3:
		return snap.ExpandToLine(display.BufferRange{Start: bp, End: bp})
	default:
		return display.BufferRange{Start: bp, End: bp}
	}
}

// wordRange widens a display position to the run of word runes (or the
// run of non-word runes) around it.
func wordRange(snap display.Snapshot, position display.DisplayPoint) display.BufferRange {
	line := []rune(snap.Line(position.Row))
	col := int(position.Column)
	if col >= len(line) {
		col = len(line) - 1
	}
	if col < 0 {
		bp := snap.ToBufferPoint(position)
		return display.BufferRange{Start: bp, End: bp}
	}
	word := isWordRune(line[col])
	start, end := col, col+1
	for start > 0 && isWordRune(line[start-1]) == word {
		start--
	}
	for end < len(line) && isWordRune(line[end]) == word {
		end++
	}
	return display.BufferRange{
		Start: snap.ToBufferPoint(display.NewDisplayPoint(position.Row, uint32(start))),
		End:   snap.ToBufferPoint(display.NewDisplayPoint(position.Row, uint32(end))),
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// --- painting ---

func (v *viewer) paint() {
	s := v.state
	t := v.engine.Theme()
	bg := t.Background
	base := styleFor(theme.RGB(0.85, 0.85, 0.85), bg)

	v.screen.Fill(' ', base)

	pm := s.PositionMap
	yForRow := func(row uint32) int {
		return int(math.Round(float64(row) - pm.ScrollPosition.Y))
	}

	// Active-line and highlighted-row backgrounds.
	for row, nonEmpty := range s.ActiveRows {
		if nonEmpty || !s.VisibleRows.Contains(row) {
			continue
		}
		v.fillRow(yForRow(row), int(s.Bounds.Origin.X), int(s.Bounds.Right()), bg.Blend(t.ActiveLine, t.ActiveLine.A))
	}
	if s.HighlightedRows != nil {
		for row := s.HighlightedRows.Start; row < s.HighlightedRows.End; row++ {
			if s.VisibleRows.Contains(row) {
				v.fillRow(yForRow(row), int(s.Bounds.Origin.X), int(s.Bounds.Right()), bg.Blend(t.FoldHighlight, t.FoldHighlight.A))
			}
		}
	}

	// Search highlights, then selections on top.
	for _, hr := range s.HighlightedRanges {
		v.fillRange(hr.Range, bg.Blend(hr.Color, hr.Color.A), 0)
	}
	for _, group := range s.Selections {
		fill := bg.Blend(group.Color.Selection, group.Color.Selection.A)
		for _, sel := range group.Selections {
			if !sel.Range.IsEmpty() {
				v.fillRange(sel.Range, fill, s.EmWidth)
			}
		}
	}

	v.paintGutter(yForRow)
	v.paintLines(yForRow)
	v.paintCursors(yForRow)
	v.paintScrollbar()
	v.paintOverlays()

	v.screen.Show()
}

func (v *viewer) paintGutter(yForRow func(uint32) int) {
	s := v.state
	t := v.engine.Theme()
	gutterRight := int(s.GutterSize.Width - s.GutterPadding)
	for i, ln := range s.LineNumbers {
		if ln == nil {
			continue
		}
		row := s.VisibleRows.Start + uint32(i)
		y := yForRow(row)
		color := t.LineNumber
		if ln.Active {
			color = t.ActiveLineNumber
		}
		text := []rune(ln.Line.Text)
		x := gutterRight - len(text)
		for j, r := range text {
			v.setCell(x+j, y, r, color)
		}
		if fi := s.FoldIndicators[i]; fi != nil {
			glyph := '›'
			if fi.Status == display.FoldStatusFolded {
				glyph = '⌄'
			}
			v.setCell(gutterRight+1, y, glyph, color)
		}
	}
}

func (v *viewer) paintLines(yForRow func(uint32) int) {
	s := v.state
	t := v.engine.Theme()
	content := s.ContentOrigin()
	right := int(s.TextBounds().Right())
	selections := s.LocalSelectionRanges()
	policy := v.engine.Settings().ShowWhitespace

	for i, lw := range s.Lines {
		row := s.VisibleRows.Start + uint32(i)
		y := yForRow(row)
		runes := []rune(lw.Line.Text)
		for col, r := range runes {
			x := int(content.X + lw.Line.XForIndex(col) - s.PositionMap.ScrollPixels.X)
			if x < int(content.X) || x >= right {
				continue
			}
			v.setCell(x, y, r, theme.RGB(0.85, 0.85, 0.85))
		}
		for _, inv := range lw.Invisibles {
			if !invisibleVisible(policy, selections, row, uint32(inv.Column)) {
				continue
			}
			x := int(content.X + lw.Line.XForIndex(inv.Column) - s.PositionMap.ScrollPixels.X)
			if x < int(content.X) || x >= right {
				continue
			}
			glyph := '•'
			if inv.Kind == layout.InvisibleTab {
				glyph = '→'
			}
			v.setCell(x, y, glyph, t.Invisible)
		}
	}
}

func invisibleVisible(policy settings.ShowWhitespace, selections []display.DisplayRange, row, col uint32) bool {
	switch policy {
	case settings.WhitespaceAll:
		return true
	case settings.WhitespaceSelection:
		p := display.NewDisplayPoint(row, col)
		for _, r := range selections {
			if r.Contains(p) {
				return true
			}
		}
	}
	return false
}

func (v *viewer) paintCursors(yForRow func(uint32) int) {
	s := v.state
	content := s.ContentOrigin()
	for _, c := range s.Cursors {
		x := int(content.X + c.Origin.X)
		y := yForRow(c.Point.Row)
		mainRune, _, style, _ := v.screen.GetContent(x, y)
		fg, cbg, _ := style.Decompose()
		v.screen.SetContent(x, y, mainRune, nil, tcell.StyleDefault.Foreground(cbg).Background(fg).Reverse(c.Shape == display.CursorHollow))
	}
}

func (v *viewer) paintScrollbar() {
	s := v.state
	if !s.Scrollbar.Visible {
		return
	}
	t := v.engine.Theme()
	v.fillRect(s.Scrollbar.Track, t.ScrollbarTrack)
	for _, m := range s.Scrollbar.Markers {
		v.fillRect(m.Bounds, m.Color)
	}
	v.fillRect(s.Scrollbar.Thumb, t.ScrollbarThumb)
}

func (v *viewer) paintOverlays() {
	s := v.state
	t := v.engine.Theme()
	if s.ContextMenu != nil {
		v.fillRect(s.ContextMenu.Bounds, t.ActiveLine.WithAlpha(1))
	}
	for _, p := range s.HoverPopovers {
		v.fillRect(p.Bounds, t.ActiveLine.WithAlpha(1))
	}
}

// fillRange paints the per-row spans of a display range, the cell
// analogue of filling the rounded highlight path.
func (v *viewer) fillRange(rng display.DisplayRange, color theme.Color, lineEndOvershoot float64) {
	s := v.state
	hr := s.HighlightedRangeLines(rng, color, 0, lineEndOvershoot)
	if hr == nil {
		return
	}
	content := s.ContentOrigin()
	for i, line := range hr.Lines {
		y := int(math.Round(content.Y+hr.StartY)) + i
		startX := int(content.X + line.StartX)
		endX := int(content.X + line.EndX)
		v.fillRow(y, startX, endX, color)
	}
}

func (v *viewer) fillRow(y, startX, endX int, color theme.Color) {
	for x := startX; x < endX; x++ {
		r, _, style, _ := v.screen.GetContent(x, y)
		fg, _, _ := style.Decompose()
		v.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(fg).Background(tcellColor(color)))
	}
}

func (v *viewer) fillRect(rect geo.Rect, color theme.Color) {
	for y := int(rect.Origin.Y); y < int(math.Ceil(rect.Bottom())); y++ {
		v.fillRow(y, int(rect.Origin.X), int(math.Ceil(rect.Right())), color)
	}
}

func (v *viewer) setCell(x, y int, r rune, fg theme.Color) {
	_, _, style, _ := v.screen.GetContent(x, y)
	_, cbg, _ := style.Decompose()
	v.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(tcellColor(fg)).Background(cbg))
}

func styleFor(fg, bg theme.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
}

func tcellColor(c theme.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255))
}

func modifiersFrom(m tcell.ModMask) interact.Modifiers {
	return interact.Modifiers{
		Shift:   m&tcell.ModShift != 0,
		Control: m&tcell.ModCtrl != 0,
		Alt:     m&tcell.ModAlt != 0,
		Command: m&tcell.ModMeta != 0,
	}
}
