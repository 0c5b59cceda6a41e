// Package display provides the coordinate model shared by the layout
// engine: logical buffer positions, wrapped/folded display positions,
// edit-stable anchors, and the snapshot interface the engine consumes.
//
// Coordinate spaces:
//
//	BufferPoint  - (row, column) in the logical, unwrapped document
//	DisplayPoint - (row, column) in wrapped/folded visual space
//
// Many buffer points may collapse to one display point (folds), and one
// buffer row may span several display rows (soft wrap). Display row is
// monotonically non-decreasing with buffer row within an excerpt.
package display

import "fmt"

// BufferPoint is a position in the logical, unwrapped document.
type BufferPoint struct {
	Row    uint32
	Column uint32
}

// NewBufferPoint creates a buffer point.
func NewBufferPoint(row, column uint32) BufferPoint {
	return BufferPoint{Row: row, Column: column}
}

// Before returns true if p precedes other in row-major order.
func (p BufferPoint) Before(other BufferPoint) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}

// After returns true if p follows other in row-major order.
func (p BufferPoint) After(other BufferPoint) bool {
	return other.Before(p)
}

// Equals returns true if two buffer points are identical.
func (p BufferPoint) Equals(other BufferPoint) bool {
	return p.Row == other.Row && p.Column == other.Column
}

// String returns "row:column" (0-indexed).
func (p BufferPoint) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// DisplayPoint is a position in wrapped/folded visual space.
type DisplayPoint struct {
	Row    uint32
	Column uint32
}

// NewDisplayPoint creates a display point.
func NewDisplayPoint(row, column uint32) DisplayPoint {
	return DisplayPoint{Row: row, Column: column}
}

// Before returns true if p precedes other in row-major order.
func (p DisplayPoint) Before(other DisplayPoint) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}

// After returns true if p follows other in row-major order.
func (p DisplayPoint) After(other DisplayPoint) bool {
	return other.Before(p)
}

// Equals returns true if two display points are identical.
func (p DisplayPoint) Equals(other DisplayPoint) bool {
	return p.Row == other.Row && p.Column == other.Column
}

// String returns "row:column" (0-indexed).
func (p DisplayPoint) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// DisplayRange is a half-open display-space range. Start never follows
// End in row-major order; violations are programmer errors.
type DisplayRange struct {
	Start DisplayPoint
	End   DisplayPoint
}

// IsEmpty returns true if the range selects nothing.
func (r DisplayRange) IsEmpty() bool {
	return r.Start.Equals(r.End)
}

// Contains returns true if p lies within [Start, End).
func (r DisplayRange) Contains(p DisplayPoint) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// BufferRange is a buffer-space range with Start <= End.
type BufferRange struct {
	Start BufferPoint
	End   BufferPoint
}

// IsEmpty returns true if the range selects nothing.
func (r BufferRange) IsEmpty() bool {
	return r.Start.Equals(r.End)
}

// RowRange is a half-open display-row interval.
type RowRange struct {
	Start uint32
	End   uint32
}

// Contains returns true if row lies within [Start, End).
func (r RowRange) Contains(row uint32) bool {
	return row >= r.Start && row < r.End
}

// Len returns the count of rows covered.
func (r RowRange) Len() uint32 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}
