package layout

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/shaping"
)

// MaxLineLen caps how many columns of a display row are shaped.
// Anything past the cap is invisible to hit testing and cursor
// placement, which is the price of keeping pathological lines cheap.
const MaxLineLen = 1024

// InvisibleKind tags a whitespace marker rendered in place of the
// character it stands for.
type InvisibleKind int

const (
	InvisibleTab InvisibleKind = iota
	InvisibleWhitespace
)

// Invisible records one whitespace marker and the display column it
// occupies on its row.
type Invisible struct {
	Kind   InvisibleKind
	Column int
}

// LineWithInvisibles pairs a shaped display row with the whitespace
// markers discovered while concatenating its chunks.
type LineWithInvisibles struct {
	Line       shaping.ShapedLine
	Invisibles []Invisible
}

// shapeVisibleLines shapes every display row in rows. The slice is
// indexed by row - rows.Start. Soft-wrap continuation rows carry
// synthetic leading indent, so leading whitespace on a row without a
// buffer row is not reported as invisible until real content appears.
// A row the shaper rejects becomes an empty line rather than failing
// the frame.
func shapeVisibleLines(
	rows display.RowRange,
	snap display.Snapshot,
	shaper shaping.TextShaper,
	fontSize float64,
	logger *zap.Logger,
) []LineWithInvisibles {
	lines := make([]LineWithInvisibles, 0, rows.Len())
	for row := rows.Start; row < rows.End; row++ {
		lines = append(lines, shapeRow(row, snap, shaper, fontSize, logger))
	}
	return lines
}

func shapeRow(
	row uint32,
	snap display.Snapshot,
	shaper shaping.TextShaper,
	fontSize float64,
	logger *zap.Logger,
) LineWithInvisibles {
	_, hasBufferRow := snap.BufferRowForDisplayRow(row)
	insideWrappedLine := !hasBufferRow

	var text strings.Builder
	var invisibles []Invisible
	column := 0
	nonWhitespaceAdded := false
	truncated := false

	for _, chunk := range snap.Chunks(row) {
		if truncated {
			break
		}
		if chunk.IsTab {
			width := len([]rune(chunk.Text))
			if column+width > MaxLineLen {
				width = MaxLineLen - column
				truncated = true
			}
			if width > 0 {
				if nonWhitespaceAdded || !insideWrappedLine {
					invisibles = append(invisibles, Invisible{Kind: InvisibleTab, Column: column})
				}
				text.WriteString(strings.Repeat(" ", width))
				column += width
			}
			continue
		}
		for _, r := range chunk.Text {
			if column >= MaxLineLen {
				truncated = true
				break
			}
			if unicode.IsSpace(r) {
				if nonWhitespaceAdded || !insideWrappedLine {
					invisibles = append(invisibles, Invisible{Kind: InvisibleWhitespace, Column: column})
				}
			} else {
				nonWhitespaceAdded = true
			}
			text.WriteRune(r)
			column++
		}
	}

	shaped, err := shaper.ShapeLine(text.String(), fontSize)
	if err != nil {
		if logger != nil {
			logger.Warn("shaping display row failed",
				zap.Uint32("row", row),
				zap.Int("columns", column),
				zap.Error(err))
		}
		return LineWithInvisibles{Line: shaping.EmptyLine()}
	}
	return LineWithInvisibles{Line: shaped, Invisibles: invisibles}
}
