package highlight

import (
	"testing"

	"github.com/dshills/glint/internal/geo"
	"github.com/dshills/glint/internal/theme"
)

func countCurves(p *geo.Path) int {
	n := 0
	for _, op := range p.Ops() {
		if op.Kind == geo.OpCurve {
			n++
		}
	}
	return n
}

func TestPathsSplitsDisjointFirstRow(t *testing.T) {
	r := &Range{
		StartY:       0,
		LineHeight:   10,
		CornerRadius: 2,
		Color:        theme.RGB(1, 0, 0),
		Lines: []RangeLine{
			{StartX: 50, EndX: 80},
			{StartX: 0, EndX: 30},
			{StartX: 0, EndX: 30},
		},
	}

	paths := r.Paths()
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: first row starts right of where the second ends", len(paths))
	}

	first := paths[0].Bounds()
	if first.Origin.Y != 0 || first.Bottom() != 10 {
		t.Errorf("first path spans y %.0f..%.0f, want 0..10", first.Origin.Y, first.Bottom())
	}
	rest := paths[1].Bounds()
	if rest.Origin.Y != 10 || rest.Bottom() != 30 {
		t.Errorf("rest path spans y %.0f..%.0f, want 10..30", rest.Origin.Y, rest.Bottom())
	}
}

// Adjacent rows of equal width share one outline with a straight right
// edge: no step, no extra curves, nothing for a second fill to overlap.
func TestPathsEqualWidthRowsShareOneOutline(t *testing.T) {
	r := &Range{
		StartY:       0,
		LineHeight:   10,
		CornerRadius: 2,
		Lines: []RangeLine{
			{StartX: 0, EndX: 80},
			{StartX: 0, EndX: 80},
		},
	}

	paths := r.Paths()
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	path := paths[0]

	// Four rounded corners only: top-right, bottom-right, bottom-left,
	// top-left.
	if got := countCurves(path); got != 4 {
		t.Errorf("got %d curves, want 4", got)
	}
	bounds := path.Bounds()
	if bounds.Origin.X != 0 || bounds.Right() != 80 || bounds.Origin.Y != 0 || bounds.Bottom() != 20 {
		t.Errorf("bounds = %+v, want 0,0..80,20", bounds)
	}
}

// A wider second row turns the junction into an outward step: down
// from the first row's right edge, then right to the second row's.
func TestPathsOutwardCorner(t *testing.T) {
	r := &Range{
		StartY:       0,
		LineHeight:   10,
		CornerRadius: 4,
		Lines: []RangeLine{
			{StartX: 10, EndX: 50},
			{StartX: 10, EndX: 80},
		},
	}

	paths := r.Paths()
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	path := paths[0]

	// Top-right, two at the step, bottom-right, bottom-left, top-left.
	if got := countCurves(path); got != 6 {
		t.Errorf("got %d curves, want 6", got)
	}

	// The step pivots around (50,10) and (80,10).
	sawInner, sawOuter := false, false
	for _, op := range path.Ops() {
		if op.Kind == geo.OpCurve && op.Ctrl.Equals(geo.Pt(50, 10)) {
			sawInner = true
		}
		if op.Kind == geo.OpCurve && op.Ctrl.Equals(geo.Pt(80, 10)) {
			sawOuter = true
		}
	}
	if !sawInner || !sawOuter {
		t.Errorf("step corners missing: inner=%v outer=%v", sawInner, sawOuter)
	}
}

// A narrow step cannot fit the full corner radius; the curve width is
// capped at half the step so the two corners never cross.
func TestPathsNarrowStepCapsCurveWidth(t *testing.T) {
	r := &Range{
		LineHeight:   10,
		CornerRadius: 8,
		Lines: []RangeLine{
			{StartX: 0, EndX: 50},
			{StartX: 0, EndX: 54},
		},
	}

	paths := r.Paths()
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}

	// The outward step spans x 50..54, so the curve flattens to width
	// 2: the segment leading into the second corner starts at 52.
	found := false
	for _, op := range paths[0].Ops() {
		if op.Kind == geo.OpLine && op.To.Equals(geo.Pt(52, 10)) {
			found = true
		}
	}
	if !found {
		t.Error("expected the step's line segment to stop half the step short of the corner")
	}
}

func TestPathsFirstRowNotch(t *testing.T) {
	r := &Range{
		LineHeight:   10,
		CornerRadius: 2,
		Lines: []RangeLine{
			{StartX: 30, EndX: 60},
			{StartX: 0, EndX: 60},
		},
	}

	paths := r.Paths()
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	// The left edge notches at (0,10) and (30,10) on the way back up.
	sawLower, sawUpper := false, false
	for _, op := range paths[0].Ops() {
		if op.Kind == geo.OpCurve && op.Ctrl.Equals(geo.Pt(0, 10)) {
			sawLower = true
		}
		if op.Kind == geo.OpCurve && op.Ctrl.Equals(geo.Pt(30, 10)) {
			sawUpper = true
		}
	}
	if !sawLower || !sawUpper {
		t.Errorf("notch corners missing: lower=%v upper=%v", sawLower, sawUpper)
	}
}

func TestPathsEmptyRange(t *testing.T) {
	r := &Range{LineHeight: 10}
	if paths := r.Paths(); paths != nil {
		t.Errorf("got %d paths for empty range, want none", len(paths))
	}
}
