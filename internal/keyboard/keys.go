// Package keyboard implements the on-screen keyboard: key tags, latching
// modifiers and chords, sent through an input.Injector.
package keyboard

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Virtual key codes used directly by the keyboard
const (
	VKBack    uint16 = 0x08
	VKReturn  uint16 = 0x0D
	VKShift   uint16 = 0x10
	VKControl uint16 = 0x11
	VKMenu    uint16 = 0x12
	VKCapital uint16 = 0x14
	VKUp      uint16 = 0x26
	VKDown    uint16 = 0x28
	VKLWin    uint16 = 0x5B
)

var keyTags = map[string]uint16{
	// Special keys
	"ESCAPE": 0x1B, "TAB": 0x09, "CAPITAL": VKCapital,
	"LSHIFT": 0xA0, "RSHIFT": 0xA1, "LCONTROL": 0xA2, "RCONTROL": 0xA3,
	"LMENU": 0xA4, "RMENU": 0xA5, "LWIN": VKLWin,
	"SHIFT": VKShift, "CONTROL": VKControl, "MENU": VKMenu,
	"SPACE": 0x20, "RETURN": VKReturn, "BACK": VKBack,
	"DELETE": 0x2E, "INSERT": 0x2D, "HOME": 0x24, "END": 0x23,
	"PRIOR": 0x21, "NEXT": 0x22,
	"LEFT": 0x25, "RIGHT": 0x27, "UP": VKUp, "DOWN": VKDown,
	"SNAPSHOT": 0x2C, "PAUSE": 0x13, "SCROLL": 0x91, "NUMLOCK": 0x90,

	// OEM keys
	"OEM_1": 0xBA, "OEM_PLUS": 0xBB, "OEM_COMMA": 0xBC, "OEM_MINUS": 0xBD,
	"OEM_PERIOD": 0xBE, "OEM_2": 0xBF, "OEM_3": 0xC0, "OEM_4": 0xDB,
	"OEM_5": 0xDC, "OEM_6": 0xDD, "OEM_7": 0xDE,

	// Numpad
	"MULTIPLY": 0x6A, "ADD": 0x6B, "SUBTRACT": 0x6D, "DECIMAL": 0x6E, "DIVIDE": 0x6F,
}

// friendlier spellings accepted in chords and on the command line
var aliases = map[string]string{
	"ESC": "ESCAPE", "ENTER": "RETURN", "BACKSPACE": "BACK",
	"DEL": "DELETE", "INS": "INSERT", "PAGEUP": "PRIOR", "PAGEDOWN": "NEXT",
	"CAPSLOCK": "CAPITAL", "CTRL": "CONTROL", "ALT": "MENU", "WIN": "LWIN",
	"CMD": "LWIN", "PRINTSCREEN": "SNAPSHOT", "SCROLLLOCK": "SCROLL",
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyTags[string(c)] = uint16(c)
	}
	for c := '0'; c <= '9'; c++ {
		keyTags[string(c)] = uint16(c)
		keyTags[fmt.Sprintf("NUMPAD%c", c)] = 0x60 + uint16(c-'0')
	}
	for i := 1; i <= 12; i++ {
		keyTags[fmt.Sprintf("F%d", i)] = 0x6F + uint16(i)
	}
}

// Lookup returns the virtual key code for a key tag. Tags are case
// insensitive and accept the common aliases (Enter, Esc, Ctrl, ...).
func Lookup(tag string) (uint16, error) {
	name := strings.ToUpper(strings.TrimSpace(tag))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	code, ok := keyTags[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, tag)
	}
	return code, nil
}

// Tags returns every canonical key tag, sorted
func Tags() []string {
	return slices.Sorted(maps.Keys(keyTags))
}
