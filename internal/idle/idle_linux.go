//go:build linux

package idle

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func New() (Prober, error) {
	if _, err := exec.LookPath("xprintidle"); err != nil {
		return nil, fmt.Errorf("%w: xprintidle not found", ErrUnsupported)
	}
	return prober{}, nil
}

type prober struct{}

// xprintidle prints X11 idle time in milliseconds.
func (prober) Seconds() (float64, error) {
	out, err := exec.Command("xprintidle").Output()
	if err != nil {
		return 0, err
	}
	ms, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, err
	}
	return ms / 1000.0, nil
}
