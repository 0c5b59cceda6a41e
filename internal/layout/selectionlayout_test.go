package layout

import (
	"testing"

	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/display/displaytest"
)

func TestNewSelectionLayoutBlockCursor(t *testing.T) {
	source := displaytest.SingleExcerpt("hello", "world", "third")
	snap := source.Snapshot()

	tests := []struct {
		name       string
		selection  display.Selection[display.BufferPoint]
		shape      display.CursorShape
		wantHead   display.DisplayPoint
		wantEnd    display.DisplayPoint
		wantActive InclusiveRows
	}{
		{
			name: "bar cursor keeps head at selection end",
			selection: display.Selection[display.BufferPoint]{
				Start: display.NewBufferPoint(0, 1),
				End:   display.NewBufferPoint(0, 3),
			},
			shape:      display.CursorBar,
			wantHead:   display.NewDisplayPoint(0, 3),
			wantEnd:    display.NewDisplayPoint(0, 3),
			wantActive: InclusiveRows{Start: 0, End: 0},
		},
		{
			name: "block cursor steps back one column",
			selection: display.Selection[display.BufferPoint]{
				Start: display.NewBufferPoint(0, 1),
				End:   display.NewBufferPoint(0, 3),
			},
			shape:      display.CursorBlock,
			wantHead:   display.NewDisplayPoint(0, 2),
			wantEnd:    display.NewDisplayPoint(0, 3),
			wantActive: InclusiveRows{Start: 0, End: 0},
		},
		{
			name: "block cursor at column zero wraps to previous row end",
			selection: display.Selection[display.BufferPoint]{
				Start: display.NewBufferPoint(0, 0),
				End:   display.NewBufferPoint(1, 0),
			},
			shape:      display.CursorBlock,
			wantHead:   display.NewDisplayPoint(0, 5),
			wantEnd:    display.NewDisplayPoint(1, 0),
			wantActive: InclusiveRows{Start: 0, End: 0},
		},
		{
			name: "block cursor on reversed selection is not adjusted",
			selection: display.Selection[display.BufferPoint]{
				Start:    display.NewBufferPoint(0, 1),
				End:      display.NewBufferPoint(0, 3),
				Reversed: true,
			},
			shape:      display.CursorBlock,
			wantHead:   display.NewDisplayPoint(0, 1),
			wantEnd:    display.NewDisplayPoint(0, 3),
			wantActive: InclusiveRows{Start: 0, End: 0},
		},
		{
			name: "block cursor on empty selection is not adjusted",
			selection: display.Selection[display.BufferPoint]{
				Start: display.NewBufferPoint(1, 2),
				End:   display.NewBufferPoint(1, 2),
			},
			shape:      display.CursorBlock,
			wantHead:   display.NewDisplayPoint(1, 2),
			wantEnd:    display.NewDisplayPoint(1, 2),
			wantActive: InclusiveRows{Start: 1, End: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSelectionLayout(tt.selection, false, tt.shape, snap, true, true)
			if !got.Head.Equals(tt.wantHead) {
				t.Errorf("Head = %v, want %v", got.Head, tt.wantHead)
			}
			if !got.Range.End.Equals(tt.wantEnd) {
				t.Errorf("Range.End = %v, want %v", got.Range.End, tt.wantEnd)
			}
			if got.ActiveRows != tt.wantActive {
				t.Errorf("ActiveRows = %v, want %v", got.ActiveRows, tt.wantActive)
			}
		})
	}
}

// A block-cursor head at column zero whose previous display row is an
// excerpt header must land on the last content row of the previous
// excerpt, and the selection end and active rows must follow the
// re-clipped head rather than assume a single-row jump.
func TestNewSelectionLayoutBlockCursorAcrossExcerptHeader(t *testing.T) {
	source := displaytest.NewSource(displaytest.Config{
		Excerpts: []displaytest.Excerpt{
			{StartRow: 0, Lines: []string{"aaa", "bbb"}},
			{StartRow: 10, Lines: []string{"ccc", "ddd"}},
		},
		HeaderRows: 1,
	})
	snap := source.Snapshot()
	// Display rows: 0 header, 1 "aaa", 2 "bbb", 3 header, 4 "ccc", 5 "ddd".

	selection := display.Selection[display.BufferPoint]{
		Start: display.NewBufferPoint(1, 0),
		End:   display.NewBufferPoint(10, 0),
	}
	got := NewSelectionLayout(selection, false, display.CursorBlock, snap, true, true)

	if want := display.NewDisplayPoint(2, 0); !got.Head.Equals(want) {
		t.Errorf("Head = %v, want %v", got.Head, want)
	}
	if want := display.NewDisplayPoint(3, 0); !got.Range.End.Equals(want) {
		t.Errorf("Range.End = %v, want %v", got.Range.End, want)
	}
	if got.ActiveRows.End != 2 {
		t.Errorf("ActiveRows.End = %d, want 2", got.ActiveRows.End)
	}
}

func TestNewSelectionLayoutLineMode(t *testing.T) {
	source := displaytest.SingleExcerpt("hello", "world", "third")
	snap := source.Snapshot()

	selection := display.Selection[display.BufferPoint]{
		Start: display.NewBufferPoint(0, 2),
		End:   display.NewBufferPoint(1, 1),
	}
	got := NewSelectionLayout(selection, true, display.CursorBar, snap, true, true)

	if want := display.NewDisplayPoint(0, 0); !got.Range.Start.Equals(want) {
		t.Errorf("Range.Start = %v, want %v", got.Range.Start, want)
	}
	if want := display.NewDisplayPoint(2, 0); !got.Range.End.Equals(want) {
		t.Errorf("Range.End = %v, want %v", got.Range.End, want)
	}
	// The head stays at the unexpanded selection end.
	if want := display.NewDisplayPoint(1, 1); !got.Head.Equals(want) {
		t.Errorf("Head = %v, want %v", got.Head, want)
	}
}
