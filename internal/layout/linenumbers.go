package layout

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/shaping"
)

// LineNumber is the shaped gutter label for one display row, plus
// whether the row hosts a cursor and should use the active style.
type LineNumber struct {
	Line   shaping.ShapedLine
	Active bool
}

// FoldIndicator describes the fold control rendered beside a line
// number. Only rows that start a foldable or folded region get one.
type FoldIndicator struct {
	BufferRow uint32
	Status    display.FoldStatus
	Active    bool
}

// calculateRelativeRows maps display rows in rows to their distance in
// buffer rows from the row holding relativeTo. Soft-wrap continuations
// and excerpt headers have no buffer row and are skipped: they get no
// entry and do not advance the count. The reference row itself gets no
// entry. Two single passes, one walking down from the reference and
// one walking up, cover the window.
func calculateRelativeRows(snap display.Snapshot, rows display.RowRange, relativeTo *uint32) map[uint32]uint32 {
	relativeRows := make(map[uint32]uint32)
	if relativeTo == nil {
		return relativeRows
	}

	start := rows.Start
	if *relativeTo < start {
		start = *relativeTo
	}
	end := rows.End
	if *relativeTo >= end {
		end = *relativeTo + 1
	}

	bufferRows := make([]bool, 0, end-start)
	for row := start; row < end; row++ {
		_, ok := snap.BufferRowForDisplayRow(row)
		bufferRows = append(bufferRows, ok)
	}

	headIdx := int(*relativeTo - start)

	delta := uint32(1)
	for i := headIdx + 1; i < len(bufferRows); i++ {
		if bufferRows[i] {
			row := uint32(i) + start
			if rows.Contains(row) {
				relativeRows[row] = delta
			}
			delta++
		}
	}

	delta = 1
	i := headIdx
	if i > len(bufferRows)-1 {
		i = len(bufferRows) - 1
	}
	for i > 0 && !bufferRows[i] {
		i--
	}
	for i > 0 {
		i--
		if bufferRows[i] {
			row := uint32(i) + start
			if rows.Contains(row) {
				relativeRows[row] = delta
			}
			delta++
		}
	}

	return relativeRows
}

// shapeLineNumbers produces one entry per display row in rows; spacer
// rows (headers, wrap continuations) get nil. With relative numbering
// on, rows other than the cursor row show their buffer-row distance
// from it and the cursor row keeps its absolute number.
func shapeLineNumbers(
	rows display.RowRange,
	activeRows map[uint32]bool,
	newestHead display.DisplayPoint,
	relative bool,
	snap display.Snapshot,
	shaper shaping.TextShaper,
	fontSize float64,
	logger *zap.Logger,
) ([]*LineNumber, []*FoldIndicator) {
	lineNumbers := make([]*LineNumber, 0, rows.Len())
	foldIndicators := make([]*FoldIndicator, 0, rows.Len())

	var relativeTo *uint32
	if relative {
		row := newestHead.Row
		relativeTo = &row
	}
	relativeRows := calculateRelativeRows(snap, rows, relativeTo)

	for row := rows.Start; row < rows.End; row++ {
		bufferRow, ok := snap.BufferRowForDisplayRow(row)
		if !ok {
			lineNumbers = append(lineNumbers, nil)
			foldIndicators = append(foldIndicators, nil)
			continue
		}

		active := activeRowsContain(activeRows, row)
		number := bufferRow + 1
		if delta, isRelative := relativeRows[row]; isRelative {
			number = delta
		}

		shaped, err := shaper.ShapeLine(strconv.FormatUint(uint64(number), 10), fontSize)
		if err != nil {
			if logger != nil {
				logger.Warn("shaping line number failed", zap.Uint32("row", row), zap.Error(err))
			}
			shaped = shaping.EmptyLine()
		}
		lineNumbers = append(lineNumbers, &LineNumber{Line: shaped, Active: active})

		switch status := snap.FoldForRow(bufferRow); status {
		case display.FoldStatusNone:
			foldIndicators = append(foldIndicators, nil)
		default:
			foldIndicators = append(foldIndicators, &FoldIndicator{
				BufferRow: bufferRow,
				Status:    status,
				Active:    active,
			})
		}
	}

	return lineNumbers, foldIndicators
}

func activeRowsContain(activeRows map[uint32]bool, row uint32) bool {
	_, ok := activeRows[row]
	return ok
}

// lineNumberDigits is how many digit cells the gutter reserves, never
// fewer than minDigits.
func lineNumberDigits(maxBufferRow uint32, minDigits int) int {
	digits := len(strconv.FormatUint(uint64(maxBufferRow)+1, 10))
	if digits < minDigits {
		digits = minDigits
	}
	return digits
}

// measureColumns returns the pixel width of n monospace-ish cells by
// shaping a representative string, so proportional shapers still
// reserve enough room.
func measureColumns(shaper shaping.TextShaper, fontSize float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	line, err := shaper.ShapeLine(strings.Repeat("9", n), fontSize)
	if err != nil {
		return float64(n) * shaper.Metrics(fontSize).EmAdvance
	}
	return line.Width
}
