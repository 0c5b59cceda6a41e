// Package geo provides pixel-space geometry value types for the layout
// engine. This package breaks import cycles between layout and the
// interaction/paint layers.
package geo

import "math"

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Pt creates a point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p offset by the negation of other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Clamp returns p constrained to the box [lo, hi] per axis.
func (p Point) Clamp(lo, hi Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, lo.X), hi.X),
		Y: math.Min(math.Max(p.Y, lo.Y), hi.Y),
	}
}

// Equals returns true if two points are identical.
func (p Point) Equals(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Sz creates a size.
func Sz(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	Origin Point
	Size   Size
}

// RectFrom creates a rectangle from origin and size components.
func RectFrom(x, y, width, height float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// RectFromCorners creates the rectangle spanning two opposite corners.
func RectFromCorners(topLeft, bottomRight Point) Rect {
	return Rect{
		Origin: topLeft,
		Size: Size{
			Width:  bottomRight.X - topLeft.X,
			Height: bottomRight.Y - topLeft.Y,
		},
	}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Origin.X + r.Size.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Origin.Y + r.Size.Height
}

// UpperRight returns the top-right corner.
func (r Rect) UpperRight() Point {
	return Point{X: r.Right(), Y: r.Origin.Y}
}

// LowerLeft returns the bottom-left corner.
func (r Rect) LowerLeft() Point {
	return Point{X: r.Origin.X, Y: r.Bottom()}
}

// LowerRight returns the bottom-right corner.
func (r Rect) LowerRight() Point {
	return Point{X: r.Right(), Y: r.Bottom()}
}

// Contains returns true if p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Right() &&
		p.Y >= r.Origin.Y && p.Y < r.Bottom()
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Origin.X < other.Right() && r.Right() > other.Origin.X &&
		r.Origin.Y < other.Bottom() && r.Bottom() > other.Origin.Y
}

// Intersection returns the overlapping region of two rectangles.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	topLeft := Point{
		X: math.Max(r.Origin.X, other.Origin.X),
		Y: math.Max(r.Origin.Y, other.Origin.Y),
	}
	bottomRight := Point{
		X: math.Min(r.Right(), other.Right()),
		Y: math.Min(r.Bottom(), other.Bottom()),
	}
	return RectFromCorners(topLeft, bottomRight)
}

// Inset returns a rectangle shrunk by the given amount on every side.
func (r Rect) Inset(amount float64) Rect {
	return RectFrom(
		r.Origin.X+amount,
		r.Origin.Y+amount,
		r.Size.Width-2*amount,
		r.Size.Height-2*amount,
	)
}
