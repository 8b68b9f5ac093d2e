//go:build !windows && !darwin && !linux

package autostart

// Enable is not supported on this platform
func Enable() error {
	return ErrUnsupportedPlatform
}

// Disable is not supported on this platform
func Disable() error {
	return ErrUnsupportedPlatform
}

// IsEnabled always reports false
func IsEnabled() bool {
	return false
}
