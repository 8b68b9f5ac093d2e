package keyboard

import "errors"

var (
	// ErrUnknownKey is returned for a key tag with no virtual key
	ErrUnknownKey = errors.New("unknown key")

	// ErrEmptyChord is returned when a chord names no keys
	ErrEmptyChord = errors.New("empty chord")
)
