//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseEventMove       = 0x0001
	mouseEventLeftDown   = 0x0002
	mouseEventLeftUp     = 0x0004
	mouseEventRightDown  = 0x0008
	mouseEventRightUp    = 0x0010
	mouseEventMiddleDown = 0x0020
	mouseEventMiddleUp   = 0x0040
	mouseEventWheel      = 0x0800
	mouseEventHWheel     = 0x1000

	keyEventExtendedKey = 0x0001
	keyEventKeyUp       = 0x0002
)

type mouseInput struct {
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type keybdInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// mouseEvent and keyEvent mirror the INPUT union; keyEvent is padded to the
// size of the largest member.
type mouseEvent struct {
	Type uint32
	Mi   mouseInput
}

type keyEvent struct {
	Type    uint32
	Ki      keybdInput
	padding [unsafe.Sizeof(mouseInput{}) - unsafe.Sizeof(keybdInput{})]byte
}

var _ Injector = (*sendInputInjector)(nil)

// sendInputInjector synthesizes input with SendInput
type sendInputInjector struct{}

// NewInjector creates a SendInput based injector
func NewInjector() (Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
	}
	return &sendInputInjector{}, nil
}

func (i *sendInputInjector) sendMouse(dx, dy int32, data, flags uint32) error {
	ev := mouseEvent{
		Type: inputMouse,
		Mi:   mouseInput{Dx: dx, Dy: dy, MouseData: data, Flags: flags},
	}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&ev)), unsafe.Sizeof(ev))
	if n != 1 {
		return fmt.Errorf("%w: SendInput mouse flags 0x%X: %v", ErrInjectFailed, flags, err)
	}
	return nil
}

func (i *sendInputInjector) sendKey(code uint16, up bool) error {
	var flags uint32
	if isExtendedKey(code) {
		flags |= keyEventExtendedKey
	}
	if up {
		flags |= keyEventKeyUp
	}
	ev := keyEvent{
		Type: inputKeyboard,
		Ki:   keybdInput{Vk: code, Flags: flags},
	}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&ev)), unsafe.Sizeof(ev))
	if n != 1 {
		return fmt.Errorf("%w: SendInput key 0x%X: %v", ErrInjectFailed, code, err)
	}
	return nil
}

// isExtendedKey reports keys that need KEYEVENTF_EXTENDEDKEY: navigation
// cluster, Insert/Delete, NumLock and numpad divide.
func isExtendedKey(code uint16) bool {
	switch code {
	case 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x2D, 0x2E, 0x90, 0x6F:
		return true
	}
	return false
}

// MoveCursorBy moves the cursor by a relative delta
func (i *sendInputInjector) MoveCursorBy(dx, dy int) error {
	return i.sendMouse(int32(dx), int32(dy), 0, mouseEventMove)
}

// SetButtonState presses or releases a mouse button
func (i *sendInputInjector) SetButtonState(button Button, down bool) error {
	var flags uint32
	switch button {
	case ButtonLeft:
		flags = mouseEventLeftUp
		if down {
			flags = mouseEventLeftDown
		}
	case ButtonRight:
		flags = mouseEventRightUp
		if down {
			flags = mouseEventRightDown
		}
	case ButtonMiddle:
		flags = mouseEventMiddleUp
		if down {
			flags = mouseEventMiddleDown
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownButton, button)
	}
	return i.sendMouse(0, 0, 0, flags)
}

// Click presses and releases a mouse button
func (i *sendInputInjector) Click(button Button) error {
	if err := i.SetButtonState(button, true); err != nil {
		return err
	}
	return i.SetButtonState(button, false)
}

// Scroll turns the vertical or horizontal wheel
func (i *sendInputInjector) Scroll(axis Axis, amount int) error {
	flags := uint32(mouseEventWheel)
	if axis == AxisHorizontal {
		flags = mouseEventHWheel
	}
	return i.sendMouse(0, 0, uint32(int32(amount)), flags)
}

// PressKey sends a virtual key down
func (i *sendInputInjector) PressKey(code uint16) error {
	return i.sendKey(code, false)
}

// ReleaseKey sends a virtual key up
func (i *sendInputInjector) ReleaseKey(code uint16) error {
	return i.sendKey(code, true)
}

// Close is a no-op; SendInput holds no resources
func (i *sendInputInjector) Close() error {
	return nil
}
