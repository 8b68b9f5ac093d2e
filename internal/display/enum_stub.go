//go:build !windows && !linux

package display

// NewEnumerator creates the platform display enumerator
func NewEnumerator() (Enumerator, error) {
	return nil, ErrUnsupportedPlatform
}
