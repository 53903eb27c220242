// Package idle reports seconds since the last global input event.
package idle

import "errors"

// ErrUnsupported is returned by New on platforms without an idle probe.
var ErrUnsupported = errors.New("idle probe is not supported on this platform")

type Prober interface {
	// Seconds returns the system-wide continuous idle duration. It is a
	// running reading, not a delta: consumers diff consecutive readings.
	Seconds() (float64, error)
}
