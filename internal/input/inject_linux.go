//go:build linux

package input

import (
	"fmt"

	"github.com/bendahl/uinput"
)

const uinputPath = "/dev/uinput"

// wheelDelta is the number of wheel units in one detent
const wheelDelta = 120

// Windows VK code to Linux evdev key code mapping
var vkToLinuxKey = map[uint16]int{
	// Letters A-Z
	0x41: uinput.KeyA, 0x42: uinput.KeyB, 0x43: uinput.KeyC, 0x44: uinput.KeyD,
	0x45: uinput.KeyE, 0x46: uinput.KeyF, 0x47: uinput.KeyG, 0x48: uinput.KeyH,
	0x49: uinput.KeyI, 0x4A: uinput.KeyJ, 0x4B: uinput.KeyK, 0x4C: uinput.KeyL,
	0x4D: uinput.KeyM, 0x4E: uinput.KeyN, 0x4F: uinput.KeyO, 0x50: uinput.KeyP,
	0x51: uinput.KeyQ, 0x52: uinput.KeyR, 0x53: uinput.KeyS, 0x54: uinput.KeyT,
	0x55: uinput.KeyU, 0x56: uinput.KeyV, 0x57: uinput.KeyW, 0x58: uinput.KeyX,
	0x59: uinput.KeyY, 0x5A: uinput.KeyZ,

	// Digits
	0x30: uinput.Key0, 0x31: uinput.Key1, 0x32: uinput.Key2, 0x33: uinput.Key3,
	0x34: uinput.Key4, 0x35: uinput.Key5, 0x36: uinput.Key6, 0x37: uinput.Key7,
	0x38: uinput.Key8, 0x39: uinput.Key9,

	// Function keys
	0x70: uinput.KeyF1, 0x71: uinput.KeyF2, 0x72: uinput.KeyF3, 0x73: uinput.KeyF4,
	0x74: uinput.KeyF5, 0x75: uinput.KeyF6, 0x76: uinput.KeyF7, 0x77: uinput.KeyF8,
	0x78: uinput.KeyF9, 0x79: uinput.KeyF10, 0x7A: uinput.KeyF11, 0x7B: uinput.KeyF12,

	// Modifiers
	0x10: uinput.KeyLeftshift, 0xA0: uinput.KeyLeftshift, 0xA1: uinput.KeyRightshift,
	0x11: uinput.KeyLeftctrl, 0xA2: uinput.KeyLeftctrl, 0xA3: uinput.KeyRightctrl,
	0x12: uinput.KeyLeftalt, 0xA4: uinput.KeyLeftalt, 0xA5: uinput.KeyRightalt,
	0x5B: uinput.KeyLeftmeta, 0x5C: uinput.KeyRightmeta,

	// Editing and navigation
	0x08: uinput.KeyBackspace, 0x09: uinput.KeyTab, 0x0D: uinput.KeyEnter,
	0x1B: uinput.KeyEsc, 0x20: uinput.KeySpace,
	0x21: uinput.KeyPageup, 0x22: uinput.KeyPagedown, 0x23: uinput.KeyEnd, 0x24: uinput.KeyHome,
	0x25: uinput.KeyLeft, 0x26: uinput.KeyUp, 0x27: uinput.KeyRight, 0x28: uinput.KeyDown,
	0x2D: uinput.KeyInsert, 0x2E: uinput.KeyDelete,
	0x14: uinput.KeyCapslock, 0x90: uinput.KeyNumlock, 0x91: uinput.KeyScrolllock,
	0x2C: uinput.KeySysrq, 0x13: uinput.KeyPause,

	// OEM punctuation (US layout)
	0xBA: uinput.KeySemicolon, 0xBB: uinput.KeyEqual, 0xBC: uinput.KeyComma,
	0xBD: uinput.KeyMinus, 0xBE: uinput.KeyDot, 0xBF: uinput.KeySlash,
	0xC0: uinput.KeyGrave, 0xDB: uinput.KeyLeftbrace, 0xDC: uinput.KeyBackslash,
	0xDD: uinput.KeyRightbrace, 0xDE: uinput.KeyApostrophe,

	// Numpad
	0x60: uinput.KeyKp0, 0x61: uinput.KeyKp1, 0x62: uinput.KeyKp2, 0x63: uinput.KeyKp3,
	0x64: uinput.KeyKp4, 0x65: uinput.KeyKp5, 0x66: uinput.KeyKp6, 0x67: uinput.KeyKp7,
	0x68: uinput.KeyKp8, 0x69: uinput.KeyKp9,
	0x6A: uinput.KeyKpasterisk, 0x6B: uinput.KeyKpplus, 0x6D: uinput.KeyKpminus,
	0x6E: uinput.KeyKpdot, 0x6F: uinput.KeyKpslash,
}

var _ Injector = (*uinputInjector)(nil)

// uinputInjector synthesizes input through virtual uinput devices
type uinputInjector struct {
	keyboard uinput.Keyboard
	mouse    uinput.Mouse

	// sub-detent wheel remainders, indexed by Axis
	residual [2]int
}

// NewInjector creates the virtual keyboard and mouse devices
func NewInjector() (Injector, error) {
	keyboard, err := uinput.CreateKeyboard(uinputPath, []byte(VirtualKeyboardName))
	if err != nil {
		return nil, fmt.Errorf("%w: create keyboard: %v", ErrUnsupportedPlatform, err)
	}
	mouse, err := uinput.CreateMouse(uinputPath, []byte(VirtualMouseName))
	if err != nil {
		keyboard.Close()
		return nil, fmt.Errorf("%w: create mouse: %v", ErrUnsupportedPlatform, err)
	}
	return &uinputInjector{keyboard: keyboard, mouse: mouse}, nil
}

// MoveCursorBy moves the cursor by a relative delta
func (i *uinputInjector) MoveCursorBy(dx, dy int) error {
	return i.mouse.Move(int32(dx), int32(dy))
}

// SetButtonState presses or releases a mouse button
func (i *uinputInjector) SetButtonState(button Button, down bool) error {
	switch {
	case button == ButtonLeft && down:
		return i.mouse.LeftPress()
	case button == ButtonLeft && !down:
		return i.mouse.LeftRelease()
	case button == ButtonRight && down:
		return i.mouse.RightPress()
	case button == ButtonRight && !down:
		return i.mouse.RightRelease()
	case button == ButtonMiddle && down:
		return i.mouse.MiddlePress()
	case button == ButtonMiddle && !down:
		return i.mouse.MiddleRelease()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownButton, button)
	}
}

// Click presses and releases a mouse button
func (i *uinputInjector) Click(button Button) error {
	if err := i.SetButtonState(button, true); err != nil {
		return err
	}
	return i.SetButtonState(button, false)
}

// Scroll converts wheel units into detents. Remainders carry over so slow
// two-finger drags still scroll eventually.
func (i *uinputInjector) Scroll(axis Axis, amount int) error {
	idx := 0
	if axis == AxisHorizontal {
		idx = 1
	}
	i.residual[idx] += amount
	detents := i.residual[idx] / wheelDelta
	if detents == 0 {
		return nil
	}
	i.residual[idx] -= detents * wheelDelta
	return i.mouse.Wheel(axis == AxisHorizontal, int32(detents))
}

// PressKey sends a key down for a Windows virtual key code
func (i *uinputInjector) PressKey(code uint16) error {
	key, ok := vkToLinuxKey[code]
	if !ok {
		return fmt.Errorf("%w: 0x%X", ErrUnknownKey, code)
	}
	return i.keyboard.KeyDown(key)
}

// ReleaseKey sends a key up for a Windows virtual key code
func (i *uinputInjector) ReleaseKey(code uint16) error {
	key, ok := vkToLinuxKey[code]
	if !ok {
		return fmt.Errorf("%w: 0x%X", ErrUnknownKey, code)
	}
	return i.keyboard.KeyUp(key)
}

// Close destroys the virtual devices
func (i *uinputInjector) Close() error {
	if err := i.keyboard.Close(); err != nil {
		i.mouse.Close()
		return err
	}
	return i.mouse.Close()
}

var linuxKeyToVK = reverseKeyMap(vkToLinuxKey)

// VKFromLinuxKey maps an evdev key code back to a virtual key code. Left and
// right modifiers map to the generic VK_SHIFT, VK_CONTROL and VK_MENU.
func VKFromLinuxKey(code uint16) (uint16, bool) {
	vk, ok := linuxKeyToVK[int(code)]
	return vk, ok
}
