// Package winenum lists visible top-level application windows and reports
// which one currently has focus. It is a thin wrapper over the OS; everything
// above it works against the Source interface.
package winenum

import (
	"errors"

	"wintrack/internal/model"
)

// ErrUnsupported is returned by New on platforms without an enumerator
// implementation.
var ErrUnsupported = errors.New("window enumeration is not supported on this platform")

type Source interface {
	// Open lists taskbar-visible top-level windows with their process
	// executable names. Windows that disappear mid-enumeration or whose
	// process cannot be inspected are reported with an empty process name.
	Open() ([]model.Window, error)

	// Focused reports the window owning the OS foreground, if any.
	Focused() (model.Window, bool, error)
}
