package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/display/displaytest"
	"github.com/dshills/glint/internal/shaping"
)

func TestCalculateRelativeRows(t *testing.T) {
	plain := displaytest.SingleExcerpt(displaytest.SampleText(8, 4, 'a')...)

	headered := displaytest.NewSource(displaytest.Config{
		Excerpts: []displaytest.Excerpt{
			{StartRow: 0, Lines: []string{"aaa", "bbb"}},
			{StartRow: 10, Lines: []string{"ccc", "ddd"}},
		},
		HeaderRows: 1,
	})
	// Display rows: 0 header, 1 "aaa", 2 "bbb", 3 header, 4 "ccc", 5 "ddd".

	tests := []struct {
		name       string
		snap       display.Snapshot
		rows       display.RowRange
		relativeTo uint32
		want       map[uint32]uint32
	}{
		{
			name:       "reference inside window",
			snap:       plain.Snapshot(),
			rows:       display.RowRange{Start: 0, End: 6},
			relativeTo: 3,
			want:       map[uint32]uint32{0: 3, 1: 2, 2: 1, 4: 1, 5: 2},
		},
		{
			name:       "reference above window",
			snap:       plain.Snapshot(),
			rows:       display.RowRange{Start: 4, End: 8},
			relativeTo: 1,
			want:       map[uint32]uint32{4: 3, 5: 4, 6: 5, 7: 6},
		},
		{
			name:       "reference below window",
			snap:       plain.Snapshot(),
			rows:       display.RowRange{Start: 0, End: 3},
			relativeTo: 6,
			want:       map[uint32]uint32{0: 6, 1: 5, 2: 4},
		},
		{
			name:       "spacer rows are skipped and do not count",
			snap:       headered.Snapshot(),
			rows:       display.RowRange{Start: 0, End: 6},
			relativeTo: 2,
			want:       map[uint32]uint32{1: 1, 4: 1, 5: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := tt.relativeTo
			got := calculateRelativeRows(tt.snap, tt.rows, &rel)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("relative rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateRelativeRowsNoReference(t *testing.T) {
	snap := displaytest.SingleExcerpt("a", "b", "c").Snapshot()
	got := calculateRelativeRows(snap, display.RowRange{Start: 0, End: 3}, nil)
	if len(got) != 0 {
		t.Errorf("expected empty map without a reference row, got %v", got)
	}
}

func TestShapeLineNumbers(t *testing.T) {
	source := displaytest.NewSource(displaytest.Config{
		Excerpts:   []displaytest.Excerpt{{StartRow: 0, Lines: []string{"aaa", "bbb", "ccc"}}},
		HeaderRows: 1,
		Foldable:   []uint32{1},
	})
	snap := source.Snapshot()
	// Display rows: 0 header, 1..3 content.
	shaper := shaping.NewMonospace(1, 1)

	rows := display.RowRange{Start: 0, End: 4}
	active := map[uint32]bool{2: false}
	head := display.NewDisplayPoint(2, 0)

	numbers, folds := shapeLineNumbers(rows, active, head, true, snap, shaper, 1, nil)

	if len(numbers) != 4 || len(folds) != 4 {
		t.Fatalf("got %d numbers, %d folds, want 4 each", len(numbers), len(folds))
	}
	if numbers[0] != nil {
		t.Errorf("header row should have no line number, got %q", numbers[0].Line.Text)
	}
	// The cursor row keeps its absolute (1-based) number; neighbors
	// show distances.
	wantText := []string{"", "1", "2", "1"}
	for i := 1; i < 4; i++ {
		if numbers[i] == nil {
			t.Fatalf("row %d: missing line number", i)
		}
		if numbers[i].Line.Text != wantText[i] {
			t.Errorf("row %d number = %q, want %q", i, numbers[i].Line.Text, wantText[i])
		}
	}
	if !numbers[2].Active {
		t.Error("cursor row should be active")
	}
	if numbers[1].Active {
		t.Error("row 1 should not be active")
	}

	if folds[2] == nil || folds[2].Status != display.FoldStatusFoldable {
		t.Errorf("row 2 fold indicator = %+v, want foldable", folds[2])
	}
	if folds[1] != nil {
		t.Errorf("row 1 should have no fold indicator, got %+v", folds[1])
	}
}

func TestLineNumberDigits(t *testing.T) {
	tests := []struct {
		maxBufferRow uint32
		minDigits    int
		want         int
	}{
		{maxBufferRow: 8, minDigits: 0, want: 1},
		{maxBufferRow: 9, minDigits: 0, want: 2},
		{maxBufferRow: 99, minDigits: 0, want: 3},
		{maxBufferRow: 5, minDigits: 3, want: 3},
	}
	for _, tt := range tests {
		if got := lineNumberDigits(tt.maxBufferRow, tt.minDigits); got != tt.want {
			t.Errorf("lineNumberDigits(%d, %d) = %d, want %d", tt.maxBufferRow, tt.minDigits, got, tt.want)
		}
	}
}
