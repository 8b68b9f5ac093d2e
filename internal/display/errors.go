package display

import "errors"

var (
	// ErrUnsupportedPlatform is returned when running on an unsupported OS
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoDisplays is returned when the OS reports no active display
	ErrNoDisplays = errors.New("no displays found")

	// ErrToolNotFound is returned when the required external tool is not found
	ErrToolNotFound = errors.New("required tool not found")

	// ErrCommandFailed is returned when the external command fails
	ErrCommandFailed = errors.New("command execution failed")
)
