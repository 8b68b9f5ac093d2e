// Package gesture turns multi-contact touch streams into pointer actions.
//
// The Engine is a plain state machine: every contact callback returns the
// actions it produced and touches nothing else. Forwarding those actions to
// an input.Injector is a separate step (see Forwarder), so the recognition
// rules can be exercised without a UI loop or an OS injector.
package gesture

import (
	"fmt"
	"math"

	"tkm/internal/input"
)

// Point is a contact position in surface pixels
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the euclidean distance between p and q
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// ActionKind is the type of an emitted action
type ActionKind int

const (
	ActionCursorMove ActionKind = iota
	ActionScroll
	ActionClick
)

// Action is one abstract pointer action produced by the engine
type Action struct {
	Kind   ActionKind
	DX     int
	DY     int
	Axis   input.Axis
	Amount int
	Button input.Button
}

// CursorMove builds a relative cursor move
func CursorMove(dx, dy int) Action {
	return Action{Kind: ActionCursorMove, DX: dx, DY: dy}
}

// Scroll builds a wheel action on one axis
func Scroll(axis input.Axis, amount int) Action {
	return Action{Kind: ActionScroll, Axis: axis, Amount: amount}
}

// Click builds a button click
func Click(button input.Button) Action {
	return Action{Kind: ActionClick, Button: button}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionCursorMove:
		return fmt.Sprintf("CursorMove(%d,%d)", a.DX, a.DY)
	case ActionScroll:
		return fmt.Sprintf("Scroll(%v,%d)", a.Axis, a.Amount)
	case ActionClick:
		return fmt.Sprintf("Click(%v)", a.Button)
	}
	return fmt.Sprintf("Action(%d)", int(a.Kind))
}
