// Package displaytest provides an in-memory display.Snapshot built from
// literal lines, with tab expansion, whole-line folds, fixed-width soft
// wrap, and multi-excerpt headers. It exists for tests and the demo
// viewer; production embedders supply their own display map.
package displaytest

import (
	"strings"

	"github.com/dshills/glint/internal/display"
)

// FoldPlaceholder is the single-column marker a collapsed range
// renders as.
const FoldPlaceholder = '⋯'

// Excerpt is one contiguous buffer region shown in the view. StartRow
// is the buffer row of its first line.
type Excerpt struct {
	StartRow uint32
	Lines    []string
}

// Fold collapses buffer rows StartRow+1..EndRow (inclusive) into the
// display line of StartRow, which gains a placeholder column.
type Fold struct {
	StartRow uint32
	EndRow   uint32
}

// Config describes the document a Source builds snapshots from.
type Config struct {
	Excerpts   []Excerpt
	HeaderRows int // spacer rows preceding each excerpt
	TabSize    int // defaults to 4
	Folds      []Fold
	Foldable   []uint32 // buffer rows reported as foldable
	WrapWidth  uint32   // columns; 0 disables soft wrap
}

// Source builds immutable snapshots from a Config and accepts wrap
// width updates from the layout pass.
type Source struct {
	cfg  Config
	snap *Snapshot
}

// NewSource creates a snapshot source.
func NewSource(cfg Config) *Source {
	if cfg.TabSize < 1 {
		cfg.TabSize = 4
	}
	return &Source{cfg: cfg, snap: build(cfg)}
}

// Snapshot returns the current immutable snapshot.
func (s *Source) Snapshot() display.Snapshot {
	return s.snap
}

// SetWrapWidth rebuilds the wrap map when the width changed. Returns
// true if the snapshot was replaced.
func (s *Source) SetWrapWidth(columns uint32) bool {
	if columns == s.cfg.WrapWidth {
		return false
	}
	s.cfg.WrapWidth = columns
	s.snap = build(s.cfg)
	return true
}

// SingleExcerpt is shorthand for a one-excerpt, header-less source.
func SingleExcerpt(lines ...string) *Source {
	return NewSource(Config{Excerpts: []Excerpt{{Lines: lines}}})
}

// SampleText builds rows lines of cols repeated letters starting at
// start: "aaaaaa", "bbbbbb", ...
func SampleText(rows, cols int, start rune) []string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(string(start+rune(i)), cols)
	}
	return lines
}

// row is one materialized display row.
type row struct {
	text        string
	chunks      []display.Chunk
	bufferRow   uint32
	firstOfLine bool // first wrap segment of a real buffer line
	header      bool
	segStart    uint32 // display column offset within the logical line
	excerpt     int
	startOffset int // document-order rune offset of the row start
}

// logicalLine is one unwrapped display line (post-fold, post-tab).
type logicalLine struct {
	excerpt   int
	bufferRow uint32
	text      string
	chunks    []display.Chunk
	// colMap[i] is the display column of buffer column i; the final
	// entry is the column past the last buffer column.
	colMap []uint32
	// foldEnd is the last buffer row collapsed into this line, or
	// bufferRow when nothing is folded.
	foldEnd  uint32
	firstRow uint32 // display row of the first wrap segment
}

// Snapshot is an immutable display map over a Config.
type Snapshot struct {
	cfg      Config
	rows     []row
	lines    []logicalLine
	lineAt   map[lineKey]int // (excerpt, bufferRow) -> lines index
	foldedAt map[lineKey]int // folded-away row -> covering lines index
	maxBuf   uint32
	longest  uint32
	empty    bool
}

type lineKey struct {
	excerpt   int
	bufferRow uint32
}

func build(cfg Config) *Snapshot {
	s := &Snapshot{
		cfg:      cfg,
		lineAt:   make(map[lineKey]int),
		foldedAt: make(map[lineKey]int),
		empty:    true,
	}

	folds := make(map[uint32]Fold)
	for _, f := range cfg.Folds {
		folds[f.StartRow] = f
	}

	for ei, ex := range cfg.Excerpts {
		for i := 0; i < cfg.HeaderRows; i++ {
			s.rows = append(s.rows, row{header: true, excerpt: ei})
		}
		r := uint32(0)
		for r < uint32(len(ex.Lines)) {
			bufRow := ex.StartRow + r
			text := ex.Lines[r]
			if text != "" {
				s.empty = false
			}

			ll := expandLine(ei, bufRow, text, cfg.TabSize)
			if f, ok := folds[bufRow]; ok && f.EndRow > bufRow {
				end := f.EndRow
				if end >= ex.StartRow+uint32(len(ex.Lines)) {
					end = ex.StartRow + uint32(len(ex.Lines)) - 1
				}
				ll.text += string(FoldPlaceholder)
				ll.chunks = append(ll.chunks, display.Chunk{Text: string(FoldPlaceholder)})
				ll.foldEnd = end
				for hidden := bufRow + 1; hidden <= end; hidden++ {
					s.foldedAt[lineKey{ei, hidden}] = len(s.lines)
				}
				r = end - ex.StartRow + 1
			} else {
				ll.foldEnd = bufRow
				r++
			}

			ll.firstRow = uint32(len(s.rows))
			s.lineAt[lineKey{ei, bufRow}] = len(s.lines)
			s.lines = append(s.lines, ll)
			s.appendSegments(len(s.lines) - 1)

			if bufRow > s.maxBuf {
				s.maxBuf = bufRow
			}
		}
	}

	// Document-order offsets for anchors.
	offset := 0
	for i := range s.rows {
		s.rows[i].startOffset = offset
		offset += len([]rune(s.rows[i].text)) + 1
	}

	longestLen := uint32(0)
	for i, rw := range s.rows {
		if n := uint32(len([]rune(rw.text))); n > longestLen {
			longestLen = n
			s.longest = uint32(i)
		}
	}
	return s
}

// appendSegments wraps logical line li into display rows.
func (s *Snapshot) appendSegments(li int) {
	ll := &s.lines[li]
	runes := []rune(ll.text)
	wrap := int(s.cfg.WrapWidth)
	if wrap <= 0 || len(runes) <= wrap {
		s.rows = append(s.rows, row{
			text:        ll.text,
			chunks:      ll.chunks,
			bufferRow:   ll.bufferRow,
			firstOfLine: true,
			excerpt:     ll.excerpt,
		})
		return
	}
	for start := 0; start == 0 || start < len(runes); start += wrap {
		end := start + wrap
		if end > len(runes) {
			end = len(runes)
		}
		seg := string(runes[start:end])
		s.rows = append(s.rows, row{
			text:        seg,
			chunks:      chunkSegment(ll.chunks, start, end),
			bufferRow:   ll.bufferRow,
			firstOfLine: start == 0,
			segStart:    uint32(start),
			excerpt:     ll.excerpt,
		})
	}
}

// chunkSegment slices chunk runs to the rune window [start, end).
func chunkSegment(chunks []display.Chunk, start, end int) []display.Chunk {
	var out []display.Chunk
	pos := 0
	for _, c := range chunks {
		runes := []rune(c.Text)
		cStart, cEnd := pos, pos+len(runes)
		pos = cEnd
		if cEnd <= start || cStart >= end {
			continue
		}
		lo, hi := 0, len(runes)
		if cStart < start {
			lo = start - cStart
		}
		if cEnd > end {
			hi = end - cStart
		}
		out = append(out, display.Chunk{Text: string(runes[lo:hi]), IsTab: c.IsTab})
	}
	return out
}

// expandLine expands tabs and records the buffer->display column map.
func expandLine(excerpt int, bufferRow uint32, text string, tabSize int) logicalLine {
	ll := logicalLine{excerpt: excerpt, bufferRow: bufferRow}
	var b strings.Builder
	col := 0
	var pending strings.Builder
	pendingTab := false
	flush := func() {
		if pending.Len() == 0 {
			return
		}
		ll.chunks = append(ll.chunks, display.Chunk{Text: pending.String(), IsTab: pendingTab})
		pending.Reset()
	}
	for _, r := range text {
		ll.colMap = append(ll.colMap, uint32(col))
		if r == '\t' {
			stop := tabSize - col%tabSize
			if !pendingTab {
				flush()
				pendingTab = true
			}
			for i := 0; i < stop; i++ {
				b.WriteRune(' ')
				pending.WriteRune(' ')
			}
			col += stop
		} else {
			if pendingTab {
				flush()
				pendingTab = false
			}
			b.WriteRune(r)
			pending.WriteRune(r)
			col++
		}
	}
	flush()
	ll.colMap = append(ll.colMap, uint32(col))
	ll.text = b.String()
	return ll
}

// lineFor locates the logical line covering a buffer point, accounting
// for folded-away rows.
func (s *Snapshot) lineFor(p display.BufferPoint) (*logicalLine, bool, bool) {
	ex := -1
	for i, e := range s.cfg.Excerpts {
		if p.Row >= e.StartRow && p.Row < e.StartRow+uint32(len(e.Lines)) {
			ex = i
			break
		}
	}
	if ex < 0 {
		return nil, false, false
	}
	if li, ok := s.lineAt[lineKey{ex, p.Row}]; ok {
		return &s.lines[li], false, true
	}
	if li, ok := s.foldedAt[lineKey{ex, p.Row}]; ok {
		return &s.lines[li], true, true
	}
	return nil, false, false
}

// ToDisplayPoint implements display.Snapshot.
func (s *Snapshot) ToDisplayPoint(p display.BufferPoint) display.DisplayPoint {
	ll, folded, ok := s.lineFor(p)
	if !ok {
		return s.MaxPoint()
	}
	var col uint32
	if folded {
		// Points inside a collapsed range map to the placeholder.
		col = uint32(len([]rune(ll.text))) - 1
	} else if int(p.Column) < len(ll.colMap) {
		col = ll.colMap[p.Column]
	} else {
		col = ll.colMap[len(ll.colMap)-1]
	}
	return s.segmented(ll, col)
}

// segmented converts a logical-line column to a display point.
func (s *Snapshot) segmented(ll *logicalLine, col uint32) display.DisplayPoint {
	wrap := s.cfg.WrapWidth
	if wrap == 0 {
		return display.NewDisplayPoint(ll.firstRow, col)
	}
	seg := col / wrap
	total := uint32(len([]rune(ll.text)))
	if col == total && total > 0 && total%wrap == 0 {
		// End of line lands on the last segment, not a phantom one.
		seg--
	}
	return display.NewDisplayPoint(ll.firstRow+seg, col-seg*wrap)
}

// ToBufferPoint implements display.Snapshot.
func (s *Snapshot) ToBufferPoint(p display.DisplayPoint) display.BufferPoint {
	if len(s.rows) == 0 {
		return display.BufferPoint{}
	}
	r := p.Row
	if r >= uint32(len(s.rows)) {
		r = uint32(len(s.rows)) - 1
	}
	rw := s.rows[r]
	if rw.header {
		// Headers resolve to the following excerpt content.
		for int(r) < len(s.rows)-1 && s.rows[r].header {
			r++
		}
		rw = s.rows[r]
		if rw.header {
			return display.BufferPoint{}
		}
		return display.NewBufferPoint(rw.bufferRow, 0)
	}
	li := s.lineAt[lineKey{rw.excerpt, rw.bufferRow}]
	ll := s.lines[li]
	col := rw.segStart + p.Column
	// Inverse of the expansion map: last buffer column whose display
	// column does not exceed col.
	for i := len(ll.colMap) - 1; i >= 0; i-- {
		if ll.colMap[i] <= col {
			return display.NewBufferPoint(rw.bufferRow, uint32(i))
		}
	}
	return display.NewBufferPoint(rw.bufferRow, 0)
}

// ClipPoint implements display.Snapshot.
func (s *Snapshot) ClipPoint(p display.DisplayPoint, bias display.Bias) display.DisplayPoint {
	if len(s.rows) == 0 {
		return display.DisplayPoint{}
	}
	r := int(p.Row)
	if r >= len(s.rows) {
		r = len(s.rows) - 1
		for r > 0 && s.rows[r].header {
			r--
		}
	}
	if s.rows[r].header {
		if bias == display.BiasLeft {
			for r > 0 && s.rows[r].header {
				r--
			}
			if s.rows[r].header {
				for r < len(s.rows)-1 && s.rows[r].header {
					r++
				}
			}
		} else {
			for r < len(s.rows)-1 && s.rows[r].header {
				r++
			}
			if s.rows[r].header {
				for r > 0 && s.rows[r].header {
					r--
				}
			}
		}
	}
	col := p.Column
	if n := s.LineLen(uint32(r)); col > n {
		col = n
	}
	return display.NewDisplayPoint(uint32(r), col)
}

// MaxPoint implements display.Snapshot.
func (s *Snapshot) MaxPoint() display.DisplayPoint {
	if len(s.rows) == 0 {
		return display.DisplayPoint{}
	}
	r := len(s.rows) - 1
	for r > 0 && s.rows[r].header {
		r--
	}
	return display.NewDisplayPoint(uint32(r), s.LineLen(uint32(r)))
}

// MaxBufferRow implements display.Snapshot.
func (s *Snapshot) MaxBufferRow() uint32 {
	return s.maxBuf
}

// LineLen implements display.Snapshot.
func (s *Snapshot) LineLen(row uint32) uint32 {
	if int(row) >= len(s.rows) {
		return 0
	}
	return uint32(len([]rune(s.rows[row].text)))
}

// Line implements display.Snapshot.
func (s *Snapshot) Line(row uint32) string {
	if int(row) >= len(s.rows) {
		return ""
	}
	return s.rows[row].text
}

// Chunks implements display.Snapshot.
func (s *Snapshot) Chunks(row uint32) []display.Chunk {
	if int(row) >= len(s.rows) {
		return nil
	}
	return s.rows[row].chunks
}

// LongestRow implements display.Snapshot.
func (s *Snapshot) LongestRow() uint32 {
	return s.longest
}

// BufferRowForDisplayRow implements display.Snapshot.
func (s *Snapshot) BufferRowForDisplayRow(row uint32) (uint32, bool) {
	if int(row) >= len(s.rows) {
		return 0, false
	}
	rw := s.rows[row]
	if rw.header || !rw.firstOfLine {
		return 0, false
	}
	return rw.bufferRow, true
}

// FoldForRow implements display.Snapshot.
func (s *Snapshot) FoldForRow(bufferRow uint32) display.FoldStatus {
	for _, f := range s.cfg.Folds {
		if f.StartRow == bufferRow && f.EndRow > f.StartRow {
			return display.FoldStatusFolded
		}
	}
	for _, r := range s.cfg.Foldable {
		if r == bufferRow {
			return display.FoldStatusFoldable
		}
	}
	return display.FoldStatusNone
}

// PrevLineBoundary implements display.Snapshot.
func (s *Snapshot) PrevLineBoundary(p display.BufferPoint) (display.BufferPoint, display.DisplayPoint) {
	dp := s.ToDisplayPoint(p)
	start := display.NewDisplayPoint(dp.Row, 0)
	return s.ToBufferPoint(start), start
}

// NextLineBoundary implements display.Snapshot.
func (s *Snapshot) NextLineBoundary(p display.BufferPoint) (display.BufferPoint, display.DisplayPoint) {
	dp := s.ToDisplayPoint(p)
	end := display.NewDisplayPoint(dp.Row, s.LineLen(dp.Row))
	return s.ToBufferPoint(end), end
}

// ExpandToLine implements display.Snapshot.
func (s *Snapshot) ExpandToLine(r display.BufferRange) display.BufferRange {
	start := display.NewBufferPoint(r.Start.Row, 0)
	var end display.BufferPoint
	if r.End.Row < s.maxBuf {
		end = display.NewBufferPoint(r.End.Row+1, 0)
	} else {
		ll, _, ok := s.lineFor(display.NewBufferPoint(r.End.Row, 0))
		if ok {
			end = display.NewBufferPoint(r.End.Row, uint32(len(ll.colMap)-1))
		} else {
			end = r.End
		}
	}
	return display.BufferRange{Start: start, End: end}
}

// AnchorBefore implements display.Snapshot.
func (s *Snapshot) AnchorBefore(p display.BufferPoint) display.Anchor {
	return s.anchorAt(p)
}

// AnchorAfter implements display.Snapshot.
func (s *Snapshot) AnchorAfter(p display.BufferPoint) display.Anchor {
	return s.anchorAt(p)
}

func (s *Snapshot) anchorAt(p display.BufferPoint) display.Anchor {
	dp := s.ToDisplayPoint(p)
	if int(dp.Row) >= len(s.rows) {
		return display.AnchorMax
	}
	return display.Anchor{Offset: s.rows[dp.Row].startOffset + int(dp.Column)}
}

// IsEmpty implements display.Snapshot.
func (s *Snapshot) IsEmpty() bool {
	return s.empty
}
