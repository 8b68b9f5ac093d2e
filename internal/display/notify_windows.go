//go:build windows

package display

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

var (
	procRegisterClassExW = user32.NewProc("RegisterClassExW")
	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procDefWindowProcW   = user32.NewProc("DefWindowProcW")
	procGetMessageW      = user32.NewProc("GetMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
	procPostMessageW     = user32.NewProc("PostMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")
)

const (
	wmDestroy       = 0x0002
	wmClose         = 0x0010
	wmSettingChange = 0x001A
	wmDisplayChange = 0x007E

	spiSetWorkArea = 0x002F
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type winMsg struct {
	Hwnd    uintptr
	Message uint32
	Wparam  uintptr
	Lparam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

var (
	classOnce sync.Once
	classErr  error
	className = windows.StringToUTF16Ptr("TkmDisplayWatcher")

	targetsMu sync.Mutex
	targets   = map[uintptr]chan struct{}{}
)

func registerClass() error {
	classOnce.Do(func() {
		wc := wndClassEx{
			WndProc:   windows.NewCallback(watcherWndProc),
			ClassName: className,
		}
		wc.Size = uint32(unsafe.Sizeof(wc))
		if ret, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); ret == 0 {
			classErr = fmt.Errorf("RegisterClassExW: %v", err)
		}
	})
	return classErr
}

func watcherWndProc(hwnd, msg, wparam, lparam uintptr) uintptr {
	switch uint32(msg) {
	case wmDisplayChange:
		signal(hwnd)
		return 0
	case wmSettingChange:
		if wparam == spiSetWorkArea {
			signal(hwnd)
		}
	case wmClose:
		procDestroyWindow.Call(hwnd)
		return 0
	case wmDestroy:
		procPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := procDefWindowProcW.Call(hwnd, msg, wparam, lparam)
	return ret
}

func signal(hwnd uintptr) {
	targetsMu.Lock()
	ch := targets[hwnd]
	targetsMu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

// windowNotifier receives WM_DISPLAYCHANGE on a hidden top-level window.
// Message-only windows do not get broadcasts, so a real window is needed.
type windowNotifier struct{}

// NewNotifier creates the platform display change notifier
func NewNotifier() Notifier {
	return windowNotifier{}
}

func (windowNotifier) Start(ctx context.Context) (<-chan struct{}, error) {
	changes := make(chan struct{}, 1)
	ready := make(chan error, 1)

	// the window and its message loop must share one OS thread
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := registerClass(); err != nil {
			ready <- err
			close(changes)
			return
		}

		hwnd, _, err := procCreateWindowExW.Call(0,
			uintptr(unsafe.Pointer(className)),
			uintptr(unsafe.Pointer(className)),
			0, 0, 0, 0, 0, 0, 0, 0, 0)
		if hwnd == 0 {
			ready <- fmt.Errorf("CreateWindowExW: %v", err)
			close(changes)
			return
		}

		targetsMu.Lock()
		targets[hwnd] = changes
		targetsMu.Unlock()
		ready <- nil

		go func() {
			<-ctx.Done()
			procPostMessageW.Call(hwnd, wmClose, 0, 0)
		}()

		log.Debug("Display: watching WM_DISPLAYCHANGE")
		var msg winMsg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
		}

		targetsMu.Lock()
		delete(targets, hwnd)
		targetsMu.Unlock()
		close(changes)
	}()

	if err := <-ready; err != nil {
		return nil, err
	}
	return changes, nil
}
