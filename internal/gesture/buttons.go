package gesture

import (
	log "github.com/sirupsen/logrus"

	"tkm/internal/input"
)

// ButtonPad drives the dedicated left/right click affordances. They bypass
// the gesture engine and map straight to button state, but the pad
// remembers which buttons it pressed so a matching release always follows,
// even when the pointer leaves the element or the surface is torn down.
type ButtonPad struct {
	injector input.Injector
	down     map[input.Button]bool
}

// NewButtonPad creates a pad forwarding to injector
func NewButtonPad(injector input.Injector) *ButtonPad {
	return &ButtonPad{
		injector: injector,
		down:     make(map[input.Button]bool),
	}
}

// IsDown reports whether the pad holds button down
func (p *ButtonPad) IsDown(button input.Button) bool {
	return p.down[button]
}

// Press sends a button down unless it is already held
func (p *ButtonPad) Press(button input.Button) {
	if p.down[button] {
		return
	}
	if err := p.injector.SetButtonState(button, true); err != nil {
		log.WithError(err).WithField("button", button.String()).Warn("Buttons: press failed")
		return
	}
	p.down[button] = true
}

// Release sends a button up if the pad pressed it. A failed release keeps
// the button marked so ReleaseAll tries again.
func (p *ButtonPad) Release(button input.Button) {
	if !p.down[button] {
		return
	}
	if err := p.injector.SetButtonState(button, false); err != nil {
		log.WithError(err).WithField("button", button.String()).Warn("Buttons: release failed")
		return
	}
	delete(p.down, button)
}

// Leave handles the pointer leaving a button element while pressed
func (p *ButtonPad) Leave(button input.Button) {
	p.Release(button)
}

// ReleaseAll releases every held button
func (p *ButtonPad) ReleaseAll() {
	for _, b := range []input.Button{input.ButtonLeft, input.ButtonRight, input.ButtonMiddle} {
		p.Release(b)
	}
}
