// Package input provides platform input injection for synthesized pointer and key events.
package input

import "fmt"

// Names of the virtual devices created where injection goes through the
// kernel, so readers of physical input can skip them
const (
	VirtualKeyboardName = "tkm-keyboard"
	VirtualMouseName    = "tkm-mouse"
)

// Button identifies a pointer button
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Axis identifies a scroll axis
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Injector is the capability the gesture engine and keyboard forward to.
// Every call is fire-and-forget from the caller's point of view; the error
// is only inspected for logging.
type Injector interface {
	// MoveCursorBy moves the cursor relative to its current position
	MoveCursorBy(dx, dy int) error

	// SetButtonState presses or releases a pointer button
	SetButtonState(button Button, down bool) error

	// Click presses and releases a pointer button
	Click(button Button) error

	// Scroll turns the wheel on the given axis. Vertical positive scrolls
	// up, horizontal positive scrolls right, in wheel units (120 per notch).
	Scroll(axis Axis, amount int) error

	// PressKey and ReleaseKey send a virtual key code down/up
	PressKey(code uint16) error
	ReleaseKey(code uint16) error

	Close() error
}
