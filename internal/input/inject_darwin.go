//go:build darwin

package input

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

static bool tkmTrusted() {
    return AXIsProcessTrusted();
}

static CGPoint tkmCursor() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint cursor = CGEventGetLocation(event);
    CFRelease(event);
    return cursor;
}

static void tkmMove(int dx, int dy, int dragButton) {
    CGPoint pos = tkmCursor();
    pos.x += dx;
    pos.y += dy;
    CGEventType type = kCGEventMouseMoved;
    CGMouseButton button = kCGMouseButtonLeft;
    if (dragButton == 1) {
        type = kCGEventLeftMouseDragged;
    } else if (dragButton == 2) {
        type = kCGEventRightMouseDragged;
        button = kCGMouseButtonRight;
    }
    CGEventRef event = CGEventCreateMouseEvent(NULL, type, pos, button);
    CGEventSetIntegerValueField(event, kCGMouseEventDeltaX, dx);
    CGEventSetIntegerValueField(event, kCGMouseEventDeltaY, dy);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

static int tkmButton(int button, bool down) {
    CGMouseButton cgButton;
    CGEventType type;
    switch (button) {
    case 1:
        cgButton = kCGMouseButtonLeft;
        type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
        break;
    case 2:
        cgButton = kCGMouseButtonRight;
        type = down ? kCGEventRightMouseDown : kCGEventRightMouseUp;
        break;
    case 3:
        cgButton = kCGMouseButtonCenter;
        type = down ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
        break;
    default:
        return 0;
    }
    CGEventRef event = CGEventCreateMouseEvent(NULL, type, tkmCursor(), cgButton);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
    return 1;
}

// CGEventCreateScrollWheelEvent is variadic and cannot be called from Go.
static void tkmScroll(int vertical, int horizontal) {
    CGEventRef event = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitPixel, 2, vertical, horizontal);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

static void tkmKey(CGKeyCode code, bool down) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, code, down);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}
*/
import "C"
import (
	"fmt"
)

// Windows VK code to macOS CGKeyCode mapping
var vkToMacKey = map[uint16]uint16{
	// Letters A-Z
	0x41: 0x00, 0x42: 0x0B, 0x43: 0x08, 0x44: 0x02, 0x45: 0x0E, 0x46: 0x03,
	0x47: 0x05, 0x48: 0x04, 0x49: 0x22, 0x4A: 0x26, 0x4B: 0x28, 0x4C: 0x25,
	0x4D: 0x2E, 0x4E: 0x2D, 0x4F: 0x1F, 0x50: 0x23, 0x51: 0x0C, 0x52: 0x0F,
	0x53: 0x01, 0x54: 0x11, 0x55: 0x20, 0x56: 0x09, 0x57: 0x0D, 0x58: 0x07,
	0x59: 0x10, 0x5A: 0x06,

	// Digits
	0x30: 0x1D, 0x31: 0x12, 0x32: 0x13, 0x33: 0x14, 0x34: 0x15,
	0x35: 0x17, 0x36: 0x16, 0x37: 0x1A, 0x38: 0x1C, 0x39: 0x19,

	// Function keys
	0x70: 0x7A, 0x71: 0x78, 0x72: 0x63, 0x73: 0x76, 0x74: 0x60, 0x75: 0x61,
	0x76: 0x62, 0x77: 0x64, 0x78: 0x65, 0x79: 0x6D, 0x7A: 0x67, 0x7B: 0x6F,

	// Editing, navigation and modifiers
	0x08: 0x33, 0x09: 0x30, 0x0D: 0x24, 0x1B: 0x35, 0x20: 0x31, 0x14: 0x39,
	0x25: 0x7B, 0x26: 0x7E, 0x27: 0x7C, 0x28: 0x7D,
	0x21: 0x74, 0x22: 0x79, 0x23: 0x77, 0x24: 0x73, 0x2D: 0x72, 0x2E: 0x75,
	0x10: 0x38, 0x11: 0x3B, 0x12: 0x3A, 0x5B: 0x37, 0x5C: 0x36,
	0xA0: 0x38, 0xA1: 0x3C, 0xA2: 0x3B, 0xA3: 0x3E, 0xA4: 0x3A, 0xA5: 0x3D,

	// Punctuation (US layout)
	0xBA: 0x29, 0xBB: 0x18, 0xBC: 0x2B, 0xBD: 0x1B, 0xBE: 0x2F, 0xBF: 0x2C,
	0xC0: 0x32, 0xDB: 0x21, 0xDC: 0x2A, 0xDD: 0x1E, 0xDE: 0x27,

	// Numpad
	0x60: 0x52, 0x61: 0x53, 0x62: 0x54, 0x63: 0x55, 0x64: 0x56,
	0x65: 0x57, 0x66: 0x58, 0x67: 0x59, 0x68: 0x5B, 0x69: 0x5C,
	0x6A: 0x43, 0x6B: 0x45, 0x6D: 0x4E, 0x6E: 0x41, 0x6F: 0x4B,
}

var _ Injector = (*cgInjector)(nil)

// cgInjector synthesizes input with CoreGraphics events
type cgInjector struct {
	// button held down, so cursor moves are posted as drags
	held Button
}

// NewInjector creates a CoreGraphics injector. The process must be trusted
// for accessibility or posted events are silently dropped.
func NewInjector() (Injector, error) {
	if !bool(C.tkmTrusted()) {
		return nil, fmt.Errorf("%w: accessibility permission not granted", ErrUnsupportedPlatform)
	}
	return &cgInjector{}, nil
}

// MoveCursorBy moves the cursor by a relative delta
func (i *cgInjector) MoveCursorBy(dx, dy int) error {
	drag := 0
	switch i.held {
	case ButtonLeft:
		drag = 1
	case ButtonRight:
		drag = 2
	}
	C.tkmMove(C.int(dx), C.int(dy), C.int(drag))
	return nil
}

// SetButtonState presses or releases a mouse button
func (i *cgInjector) SetButtonState(button Button, down bool) error {
	if C.tkmButton(C.int(button), C.bool(down)) == 0 {
		return fmt.Errorf("%w: %v", ErrUnknownButton, button)
	}
	if down {
		i.held = button
	} else if i.held == button {
		i.held = 0
	}
	return nil
}

// Click presses and releases a mouse button
func (i *cgInjector) Click(button Button) error {
	if err := i.SetButtonState(button, true); err != nil {
		return err
	}
	return i.SetButtonState(button, false)
}

// Scroll posts a pixel-unit scroll wheel event
func (i *cgInjector) Scroll(axis Axis, amount int) error {
	if axis == AxisHorizontal {
		C.tkmScroll(0, C.int(amount))
	} else {
		C.tkmScroll(C.int(amount), 0)
	}
	return nil
}

// PressKey sends a key down for a Windows virtual key code
func (i *cgInjector) PressKey(code uint16) error {
	return i.key(code, true)
}

// ReleaseKey sends a key up for a Windows virtual key code
func (i *cgInjector) ReleaseKey(code uint16) error {
	return i.key(code, false)
}

func (i *cgInjector) key(code uint16, down bool) error {
	mac, ok := vkToMacKey[code]
	if !ok {
		return fmt.Errorf("%w: 0x%X", ErrUnknownKey, code)
	}
	C.tkmKey(C.CGKeyCode(mac), C.bool(down))
	return nil
}

// Close is a no-op
func (i *cgInjector) Close() error {
	return nil
}

var macKeyToVK = reverseKeyMap(vkToMacKey)

// VKFromMacKey maps a CGKeyCode back to a virtual key code
func VKFromMacKey(code uint16) (uint16, bool) {
	vk, ok := macKeyToVK[code]
	return vk, ok
}
