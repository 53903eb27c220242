//go:build windows

package idle

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func New() (Prober, error) {
	return prober{}, nil
}

type prober struct{}

func (prober) Seconds() (float64, error) {
	var info lastInputInfo
	info.cbSize = uint32(unsafe.Sizeof(info))
	r, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if r == 0 {
		return 0, err
	}
	// Tick counts wrap at ~49.7 days; uint32 subtraction handles the wrap.
	elapsed := uint32(windows.GetTickCount64()) - info.dwTime
	return float64(elapsed) / 1000.0, nil
}
