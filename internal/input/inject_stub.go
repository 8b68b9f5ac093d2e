//go:build !windows && !linux && !darwin

package input

// Stub implementation for platforms without an injector

var _ Injector = (*stubInjector)(nil)

// stubInjector represents a stub input injector
type stubInjector struct{}

// NewInjector always fails on this platform
func NewInjector() (Injector, error) {
	return nil, ErrUnsupportedPlatform
}

// MoveCursorBy injects a cursor movement (stub)
func (i *stubInjector) MoveCursorBy(dx, dy int) error {
	return ErrUnsupportedPlatform
}

// SetButtonState injects a button event (stub)
func (i *stubInjector) SetButtonState(button Button, down bool) error {
	return ErrUnsupportedPlatform
}

// Click injects a click (stub)
func (i *stubInjector) Click(button Button) error {
	return ErrUnsupportedPlatform
}

// Scroll injects a wheel event (stub)
func (i *stubInjector) Scroll(axis Axis, amount int) error {
	return ErrUnsupportedPlatform
}

// PressKey injects a key down (stub)
func (i *stubInjector) PressKey(code uint16) error {
	return ErrUnsupportedPlatform
}

// ReleaseKey injects a key up (stub)
func (i *stubInjector) ReleaseKey(code uint16) error {
	return ErrUnsupportedPlatform
}

// Close releases nothing (stub)
func (i *stubInjector) Close() error {
	return nil
}
