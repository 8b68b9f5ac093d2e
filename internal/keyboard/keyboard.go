package keyboard

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"tkm/internal/input"
)

// Modifiers is the latch state shown on the modifier keys
type Modifiers struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	CapsLock bool
}

// Keyboard sends key taps with latching modifiers. Shift, Ctrl and Alt
// latch for the next key only; Shift stays latched while CapsLock is on.
type Keyboard struct {
	injector input.Injector
	mods     Modifiers

	onChange func(Modifiers)
}

// New creates a keyboard injecting through injector
func New(injector input.Injector) *Keyboard {
	return &Keyboard{injector: injector}
}

// OnChange registers a callback for modifier state changes
func (k *Keyboard) OnChange(fn func(Modifiers)) {
	k.onChange = fn
}

// Modifiers returns the current latch state
func (k *Keyboard) Modifiers() Modifiers {
	return k.mods
}

func (k *Keyboard) changed() {
	if k.onChange != nil {
		k.onChange(k.mods)
	}
}

// ToggleShift flips the Shift latch
func (k *Keyboard) ToggleShift() {
	k.mods.Shift = !k.mods.Shift
	k.changed()
}

// ToggleCtrl flips the Ctrl latch
func (k *Keyboard) ToggleCtrl() {
	k.mods.Ctrl = !k.mods.Ctrl
	k.changed()
}

// ToggleAlt flips the Alt latch
func (k *Keyboard) ToggleAlt() {
	k.mods.Alt = !k.mods.Alt
	k.changed()
}

// ToggleCapsLock flips CapsLock and sends it to the OS
func (k *Keyboard) ToggleCapsLock() error {
	k.mods.CapsLock = !k.mods.CapsLock
	k.changed()
	return k.tap(VKCapital)
}

// Press sends the key for tag wrapped in the latched modifiers, then
// clears the one-shot latches
func (k *Keyboard) Press(tag string) error {
	code, err := Lookup(tag)
	if err != nil {
		return err
	}
	return k.PressCode(code)
}

// PressCode is Press for a raw virtual key code
func (k *Keyboard) PressCode(code uint16) error {
	var held []uint16
	if k.mods.Ctrl {
		held = append(held, VKControl)
	}
	if k.mods.Alt {
		held = append(held, VKMenu)
	}
	if k.mods.Shift {
		held = append(held, VKShift)
	}

	err := k.chord(append(held, code))

	reset := false
	if k.mods.Shift && !k.mods.CapsLock {
		k.mods.Shift = false
		reset = true
	}
	if k.mods.Ctrl || k.mods.Alt {
		k.mods.Ctrl, k.mods.Alt = false, false
		reset = true
	}
	if reset {
		k.changed()
	}
	return err
}

// UpDown sends Down when Shift is latched and Up otherwise
func (k *Keyboard) UpDown() error {
	if k.mods.Shift {
		return k.tap(VKDown)
	}
	return k.tap(VKUp)
}

// SendChord presses a parsed combination such as "Ctrl+Alt+T". Latched
// modifiers are not applied.
func (k *Keyboard) SendChord(chord string) error {
	codes, err := ParseChord(chord)
	if err != nil {
		return err
	}
	return k.chord(codes)
}

func (k *Keyboard) tap(code uint16) error {
	return k.chord([]uint16{code})
}

// chord presses codes in order and releases them in reverse. Every key
// that went down is released even if a later key fails.
func (k *Keyboard) chord(codes []uint16) error {
	var errs []error
	pressed := make([]uint16, 0, len(codes))
	for _, c := range codes {
		if err := k.injector.PressKey(c); err != nil {
			errs = append(errs, err)
			break
		}
		pressed = append(pressed, c)
	}
	for i := len(pressed) - 1; i >= 0; i-- {
		if err := k.injector.ReleaseKey(pressed[i]); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		log.WithError(err).Warnf("Keyboard: chord %v incomplete", codes)
	}
	return err
}
