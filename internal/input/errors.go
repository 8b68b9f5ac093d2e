package input

import "errors"

var (
	// ErrUnsupportedPlatform is returned when no injector exists for this OS
	ErrUnsupportedPlatform = errors.New("input injection not supported on this platform")

	// ErrUnknownButton is returned for a button the backend cannot synthesize
	ErrUnknownButton = errors.New("unknown pointer button")

	// ErrUnknownKey is returned when a virtual key has no backend mapping
	ErrUnknownKey = errors.New("unknown key code")

	// ErrInjectFailed is returned when the OS refused the synthesized event
	ErrInjectFailed = errors.New("input injection failed")
)
