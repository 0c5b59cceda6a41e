package display

// CursorShape controls how a selection head is rendered.
type CursorShape uint8

const (
	// CursorBar is a thin vertical bar at the head column.
	CursorBar CursorShape = iota
	// CursorBlock is a full-character-width highlight, used in
	// visual/selection modes.
	CursorBlock
	// CursorUnderscore is a thin bar under the head character.
	CursorUnderscore
	// CursorHollow is an unfilled block outline.
	CursorHollow
)

// String returns the string representation of a cursor shape.
func (s CursorShape) String() string {
	switch s {
	case CursorBlock:
		return "block"
	case CursorUnderscore:
		return "underscore"
	case CursorHollow:
		return "hollow"
	default:
		return "bar"
	}
}

// Selection is a directed range generic over the coordinate space.
// Start never follows End; Reversed marks the head at Start instead of
// End. GoalColumn preserves the intended column across vertical motion
// over short lines.
type Selection[T any] struct {
	ID         int
	Start      T
	End        T
	Reversed   bool
	GoalColumn uint32
}

// Head returns the moving end of the selection.
func (s Selection[T]) Head() T {
	if s.Reversed {
		return s.Start
	}
	return s.End
}

// Tail returns the fixed end of the selection.
func (s Selection[T]) Tail() T {
	if s.Reversed {
		return s.End
	}
	return s.Start
}

// MapSelection converts a selection between coordinate spaces.
func MapSelection[T, U any](s Selection[T], f func(T) U) Selection[U] {
	return Selection[U]{
		ID:         s.ID,
		Start:      f(s.Start),
		End:        f(s.End),
		Reversed:   s.Reversed,
		GoalColumn: s.GoalColumn,
	}
}
