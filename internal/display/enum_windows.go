//go:build windows

package display

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
)

const monitorInfoFPrimary = 0x1

type monitorInfoEx struct {
	Size    uint32
	Monitor windows.Rect
	Work    windows.Rect
	Flags   uint32
	Device  [32]uint16
}

var (
	// NewCallback slots are never freed; one callback is shared
	enumMu      sync.Mutex
	enumResult  []DisplayInfo
	enumProcPtr = windows.NewCallback(monitorEnumProc)
)

func monitorEnumProc(hMonitor, hdc uintptr, clip *windows.Rect, data uintptr) uintptr {
	var mi monitorInfoEx
	mi.Size = uint32(unsafe.Sizeof(mi))

	ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
	if ret == 0 {
		return 1
	}

	enumResult = append(enumResult, DisplayInfo{
		ID:       windows.UTF16ToString(mi.Device[:]),
		Bounds:   fromWinRect(mi.Monitor),
		WorkArea: fromWinRect(mi.Work),
		Primary:  mi.Flags&monitorInfoFPrimary != 0,
	})
	return 1
}

func fromWinRect(r windows.Rect) Rect {
	return Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}

// monitorEnumerator lists displays with EnumDisplayMonitors
type monitorEnumerator struct{}

// NewEnumerator creates the platform display enumerator
func NewEnumerator() (Enumerator, error) {
	if err := procEnumDisplayMonitors.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
	}
	return monitorEnumerator{}, nil
}

func (monitorEnumerator) ListDisplays() ([]DisplayInfo, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumResult = nil
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumProcPtr, 0)
	if ret == 0 {
		return nil, fmt.Errorf("%w: EnumDisplayMonitors: %v", ErrCommandFailed, err)
	}
	if len(enumResult) == 0 {
		return nil, ErrNoDisplays
	}

	out := enumResult
	enumResult = nil
	return out, nil
}
