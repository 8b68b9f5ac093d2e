package gesture

import (
	"time"

	"tkm/internal/input"
)

// Trackpad joins an engine, a forwarder and a button pad into the surface
// the touch source drives.
type Trackpad struct {
	engine    *Engine
	forwarder *Forwarder
	buttons   *ButtonPad
}

// NewTrackpad creates a trackpad injecting through injector
func NewTrackpad(cfg Config, injector input.Injector) *Trackpad {
	return &Trackpad{
		engine:    NewEngine(cfg),
		forwarder: NewForwarder(injector),
		buttons:   NewButtonPad(injector),
	}
}

// Engine returns the underlying recognizer
func (t *Trackpad) Engine() *Engine {
	return t.engine
}

// Buttons returns the click affordances
func (t *Trackpad) Buttons() *ButtonPad {
	return t.buttons
}

// ContactDown feeds a touch down
func (t *Trackpad) ContactDown(id int, pos Point, now time.Time) {
	t.forwarder.Apply(t.engine.ContactDown(id, pos, now))
}

// ContactMove feeds a touch move
func (t *Trackpad) ContactMove(id int, pos Point) {
	t.forwarder.Apply(t.engine.ContactMove(id, pos))
}

// ContactUp feeds a touch up
func (t *Trackpad) ContactUp(id int, now time.Time) {
	t.forwarder.Apply(t.engine.ContactUp(id, now))
}

// ButtonDown presses a pad button. A press during a touch ends any tap.
func (t *Trackpad) ButtonDown(button input.Button) {
	t.engine.MarkClicked()
	t.buttons.Press(button)
}

// ButtonUp releases a pad button
func (t *Trackpad) ButtonUp(button input.Button) {
	t.buttons.Release(button)
}

// Cancel discards the session and releases held buttons
func (t *Trackpad) Cancel() {
	t.engine.Cancel()
	t.buttons.ReleaseAll()
}
