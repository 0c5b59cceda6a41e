package geo

// OpKind identifies a path segment kind.
type OpKind uint8

// Path segment kinds.
const (
	// OpMove starts a new subpath at To.
	OpMove OpKind = iota
	// OpLine draws a straight segment to To.
	OpLine
	// OpCurve draws a quadratic segment to To using Ctrl as the
	// control point.
	OpCurve
)

// Op is a single path segment.
type Op struct {
	Kind OpKind
	To   Point
	Ctrl Point
}

// Path is an immutable-once-built sequence of segments describing a
// closed, fillable outline. The paint pass consumes it as-is.
type Path struct {
	ops   []Op
	start Point
}

// NewPath creates a path whose first subpath starts at origin.
func NewPath(origin Point) *Path {
	return &Path{
		ops:   []Op{{Kind: OpMove, To: origin}},
		start: origin,
	}
}

// LineTo appends a straight segment.
func (p *Path) LineTo(to Point) {
	p.ops = append(p.ops, Op{Kind: OpLine, To: to})
}

// CurveTo appends a quadratic segment ending at to with the given
// control point.
func (p *Path) CurveTo(to, ctrl Point) {
	p.ops = append(p.ops, Op{Kind: OpCurve, To: to, Ctrl: ctrl})
}

// Start returns the first point of the path.
func (p *Path) Start() Point {
	return p.start
}

// Current returns the endpoint of the last segment.
func (p *Path) Current() Point {
	if len(p.ops) == 0 {
		return p.start
	}
	return p.ops[len(p.ops)-1].To
}

// Ops returns the path segments. Callers must not mutate the result.
func (p *Path) Ops() []Op {
	return p.ops
}

// Bounds returns the bounding box of all segment endpoints and control
// points.
func (p *Path) Bounds() Rect {
	if len(p.ops) == 0 {
		return Rect{Origin: p.start}
	}
	minPt := p.ops[0].To
	maxPt := p.ops[0].To
	extend := func(pt Point) {
		if pt.X < minPt.X {
			minPt.X = pt.X
		}
		if pt.Y < minPt.Y {
			minPt.Y = pt.Y
		}
		if pt.X > maxPt.X {
			maxPt.X = pt.X
		}
		if pt.Y > maxPt.Y {
			maxPt.Y = pt.Y
		}
	}
	for _, op := range p.ops {
		extend(op.To)
		if op.Kind == OpCurve {
			extend(op.Ctrl)
		}
	}
	return RectFromCorners(minPt, maxPt)
}
