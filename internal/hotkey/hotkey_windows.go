//go:build windows

package hotkey

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandleW    = kernel32.NewProc("GetModuleHandleW")
)

const (
	whKeyboardLL = 13
	wmQuit       = 0x0012
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	// set on events posted by SendInput, including our own keyboard
	llkhfInjected = 0x10
)

type kbdLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type winMsg struct {
	Hwnd    uintptr
	Message uint32
	Wparam  uintptr
	Lparam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// a low level hook carries no context pointer, so one manager is active
// per process
var (
	hookMu      sync.Mutex
	hookManager *Manager
	hookHandle  uintptr
	hookProcPtr = windows.NewCallback(keyboardHookProc)
)

var errHookActive = errors.New("keyboard hook already installed")

func (m *Manager) startPlatform(ctx context.Context) error {
	hookMu.Lock()
	if hookManager != nil {
		hookMu.Unlock()
		return errHookActive
	}
	hookManager = m
	hookMu.Unlock()

	started := make(chan error, 1)
	go func() {
		// the hook is bound to the thread that pumps its messages
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		hMod, _, _ := procGetModuleHandleW.Call(0)
		h, _, err := procSetWindowsHookExW.Call(whKeyboardLL, hookProcPtr, hMod, 0)
		if h == 0 {
			hookMu.Lock()
			hookManager = nil
			hookMu.Unlock()
			started <- fmt.Errorf("SetWindowsHookExW: %v", err)
			return
		}
		hookMu.Lock()
		hookHandle = h
		hookMu.Unlock()

		tid := windows.GetCurrentThreadId()
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
			case <-done:
			}
		}()

		log.Info("Hotkey: keyboard hook installed")
		started <- nil

		var msg winMsg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
		}

		procUnhookWindowsHookEx.Call(h)
		hookMu.Lock()
		hookManager = nil
		hookHandle = 0
		hookMu.Unlock()
		log.Debug("Hotkey: keyboard hook removed")
	}()

	return <-started
}

func keyboardHookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	hookMu.Lock()
	m, h := hookManager, hookHandle
	hookMu.Unlock()

	if nCode == 0 && m != nil {
		kbd := (*kbdLLHookStruct)(unsafe.Pointer(lParam))
		if kbd.Flags&llkhfInjected == 0 {
			switch wParam {
			case wmKeyDown, wmSysKeyDown:
				m.UpdateState(uint16(kbd.VkCode), true)
			case wmKeyUp, wmSysKeyUp:
				m.UpdateState(uint16(kbd.VkCode), false)
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(h, uintptr(nCode), wParam, lParam)
	return ret
}
