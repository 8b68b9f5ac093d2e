//go:build darwin

package hotkey

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

CGEventRef tkmHotkeyCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFRunLoopRef tkmHotkeyLoop;

// returns 0 when the tap cannot be created (no accessibility permission)
static inline int tkmHotkeyTap(uintptr_t refcon) {
    CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) |
        CGEventMaskBit(kCGEventKeyUp) |
        CGEventMaskBit(kCGEventFlagsChanged);
    CFMachPortRef tap = CGEventTapCreate(
        kCGSessionEventTap,
        kCGHeadInsertEventTap,
        kCGEventTapOptionListenOnly,
        mask,
        tkmHotkeyCallback,
        (void*)refcon
    );
    if (!tap) {
        return 0;
    }
    CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
    tkmHotkeyLoop = CFRunLoopGetCurrent();
    CFRunLoopAddSource(tkmHotkeyLoop, source, kCFRunLoopCommonModes);
    CGEventTapEnable(tap, true);
    return 1;
}

static inline void tkmHotkeyRun(void) {
    CFRunLoopRun();
}

static inline void tkmHotkeyStop(void) {
    if (tkmHotkeyLoop) {
        CFRunLoopStop(tkmHotkeyLoop);
    }
}
*/
import "C"
import (
	"context"
	"errors"
	"runtime"
	"runtime/cgo"
	"unsafe"

	log "github.com/sirupsen/logrus"

	"tkm/internal/input"
	"tkm/internal/keyboard"
)

var errTapFailed = errors.New("CGEventTapCreate failed, accessibility permission missing?")

//export tkmHotkeyCallback
func tkmHotkeyCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	m := cgo.Handle(uintptr(refcon)).Value().(*Manager)
	keyCode := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))

	switch eventType {
	case C.kCGEventKeyDown, C.kCGEventKeyUp:
		if C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventAutorepeat) != 0 {
			break
		}
		if vk, ok := input.VKFromMacKey(keyCode); ok {
			m.UpdateState(vk, eventType == C.kCGEventKeyDown)
		}

	case C.kCGEventFlagsChanged:
		// modifiers only report the new flag set
		flags := C.CGEventGetFlags(event)
		switch keyCode {
		case 55, 54:
			m.UpdateState(keyboard.VKLWin, flags&C.kCGEventFlagMaskCommand != 0)
		case 56, 60:
			m.UpdateState(keyboard.VKShift, flags&C.kCGEventFlagMaskShift != 0)
		case 58, 61:
			m.UpdateState(keyboard.VKMenu, flags&C.kCGEventFlagMaskAlternate != 0)
		case 59, 62:
			m.UpdateState(keyboard.VKControl, flags&C.kCGEventFlagMaskControl != 0)
		}
	}
	return event
}

func (m *Manager) startPlatform(ctx context.Context) error {
	handle := cgo.NewHandle(m)
	started := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer handle.Delete()

		if C.tkmHotkeyTap(C.uintptr_t(handle)) == 0 {
			started <- errTapFailed
			return
		}
		log.Info("Hotkey: event tap installed")
		started <- nil
		C.tkmHotkeyRun()
		log.Debug("Hotkey: event tap stopped")
	}()

	if err := <-started; err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		C.tkmHotkeyStop()
	}()
	return nil
}
