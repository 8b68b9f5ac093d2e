package touch

import "errors"

var (
	// ErrUnsupportedPlatform is returned when evdev is not available
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoTouchDevice is returned when no multitouch device can be found
	ErrNoTouchDevice = errors.New("no multitouch device found")

	// ErrNotMultitouch is returned when a device lacks protocol B slots
	ErrNotMultitouch = errors.New("device does not report multitouch slots")
)
