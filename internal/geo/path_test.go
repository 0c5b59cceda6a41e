package geo

import "testing"

func TestPathBuilding(t *testing.T) {
	p := NewPath(Pt(1, 2))
	p.LineTo(Pt(5, 2))
	p.CurveTo(Pt(6, 3), Pt(6, 2))

	if !p.Start().Equals(Pt(1, 2)) {
		t.Errorf("Start() = %v, want (1,2)", p.Start())
	}
	if !p.Current().Equals(Pt(6, 3)) {
		t.Errorf("Current() = %v, want (6,3)", p.Current())
	}

	ops := p.Ops()
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3", len(ops))
	}
	if ops[0].Kind != OpMove || !ops[0].To.Equals(Pt(1, 2)) {
		t.Errorf("ops[0] = %+v, want move to (1,2)", ops[0])
	}
	if ops[1].Kind != OpLine || !ops[1].To.Equals(Pt(5, 2)) {
		t.Errorf("ops[1] = %+v, want line to (5,2)", ops[1])
	}
	if ops[2].Kind != OpCurve || !ops[2].Ctrl.Equals(Pt(6, 2)) {
		t.Errorf("ops[2] = %+v, want curve with ctrl (6,2)", ops[2])
	}
}

func TestPathBounds(t *testing.T) {
	p := NewPath(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	// The control point extends the box even though no endpoint
	// reaches it.
	p.CurveTo(Pt(10, 5), Pt(14, 2))

	got := p.Bounds()
	if want := RectFromCorners(Pt(0, 0), Pt(14, 5)); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}
