package keyboard

import (
	"strings"
)

// ParseChord parses a "+" separated key combination such as "Ctrl+Alt+T"
// into virtual key codes, in press order
func ParseChord(chord string) ([]uint16, error) {
	if strings.TrimSpace(chord) == "" {
		return nil, ErrEmptyChord
	}

	parts := strings.Split(chord, "+")
	codes := make([]uint16, 0, len(parts))
	for _, p := range parts {
		code, err := Lookup(p)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}
