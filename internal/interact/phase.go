// Package interact translates pointer and wheel events into selection
// phases and scroll updates against a frame's position map. Handlers
// never mutate layout state; they emit phases and positions through
// callbacks and the embedder applies them between frames.
package interact

import (
	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/geo"
)

// SelectPhase is one step of a mouse selection. Exactly one concrete
// phase type is emitted per event; consumers switch on the type.
type SelectPhase interface {
	isSelectPhase()
}

// Begin starts a selection at a position. ClickCount widens the unit:
// 1 selects a point, 2 a word, 3 a line. Add keeps existing selections.
type Begin struct {
	Position   display.DisplayPoint
	Add        bool
	ClickCount int
}

// BeginColumnar starts a rectangular selection toward GoalColumn.
type BeginColumnar struct {
	Position   display.DisplayPoint
	GoalColumn uint32
}

// Extend grows the newest selection to a position with the click
// count's unit.
type Extend struct {
	Position   display.DisplayPoint
	ClickCount int
}

// Update moves the pending selection's head during a drag and carries
// the scroll position any drag-autoscroll produced.
type Update struct {
	Position       display.DisplayPoint
	GoalColumn     uint32
	ScrollPosition geo.Point
}

// End finishes the pending selection.
type End struct{}

func (Begin) isSelectPhase()         {}
func (BeginColumnar) isSelectPhase() {}
func (Extend) isSelectPhase()        {}
func (Update) isSelectPhase()        {}
func (End) isSelectPhase()           {}

// Modifiers is the keyboard state accompanying a pointer event.
type Modifiers struct {
	Shift   bool
	Control bool
	Alt     bool
	Command bool
}

// NavigationKind selects what a modified click navigates to.
type NavigationKind int

const (
	// NavigateDefinition jumps to the symbol definition.
	NavigateDefinition NavigationKind = iota
	// NavigateTypeDefinition jumps to the symbol's type.
	NavigateTypeDefinition
)

// NavigationRequest is emitted for a modifier-click on a symbol.
type NavigationRequest struct {
	Point     display.DisplayPoint
	Kind      NavigationKind
	SplitPane bool
}
