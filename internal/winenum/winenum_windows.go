//go:build windows

package winenum

import (
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"wintrack/internal/model"
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows            = user32.NewProc("EnumWindows")
	procIsWindowVisible        = user32.NewProc("IsWindowVisible")
	procGetWindowTextW         = user32.NewProc("GetWindowTextW")
	procGetWindowLongW         = user32.NewProc("GetWindowLongW")
	procGetWindow              = user32.NewProc("GetWindow")
	procGetForegroundWindow    = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcess = user32.NewProc("GetWindowThreadProcessId")
)

const (
	gwlExStyle      = ^uintptr(19) // GWL_EXSTYLE == -20
	wsExToolWindow  = 0x00000080
	gwOwner         = 4
	maxTitleLen     = 512
	processAccesses = windows.PROCESS_QUERY_LIMITED_INFORMATION
)

func New() (Source, error) {
	return source{}, nil
}

type source struct{}

// enumCallback is created once: syscall.NewCallback allocations are never
// released and the process-wide pool is small. The result slice travels
// through lParam.
var enumCallback = syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	out := (*[]model.Window)(unsafe.Pointer(lparam))
	if w, ok := inspect(hwnd); ok {
		*out = append(*out, w)
	}
	return 1 // continue enumeration
})

func (source) Open() ([]model.Window, error) {
	var out []model.Window
	if r, _, err := procEnumWindows.Call(enumCallback, uintptr(unsafe.Pointer(&out))); r == 0 {
		return nil, err
	}
	return out, nil
}

func (source) Focused() (model.Window, bool, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return model.Window{}, false, nil
	}
	w, ok := inspect(hwnd)
	return w, ok, nil
}

// inspect filters for taskbar-visible application windows: visible, titled,
// unowned, and not a tool window. Any failure looking up the owning process
// leaves the process name empty rather than failing the tick.
func inspect(hwnd uintptr) (model.Window, bool) {
	if r, _, _ := procIsWindowVisible.Call(hwnd); r == 0 {
		return model.Window{}, false
	}
	if owner, _, _ := procGetWindow.Call(hwnd, gwOwner); owner != 0 {
		return model.Window{}, false
	}
	if style, _, _ := procGetWindowLongW.Call(hwnd, gwlExStyle); style&wsExToolWindow != 0 {
		return model.Window{}, false
	}

	title := windowText(hwnd)
	if title == "" {
		return model.Window{}, false
	}
	return model.Window{Title: title, Process: processName(hwnd)}, true
}

func windowText(hwnd uintptr) string {
	buf := make([]uint16, maxTitleLen)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func processName(hwnd uintptr) string {
	var pid uint32
	procGetWindowThreadProcess.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(processAccesses, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return strings.ToLower(filepath.Base(windows.UTF16ToString(buf[:size])))
}
