//go:build darwin

package idle

import (
	"bufio"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// HIDIdleTime is reported in nanoseconds since the last input event.
var hidIdleRe = regexp.MustCompile(`HIDIdleTime"\s*=\s*([0-9]+)`)

func New() (Prober, error) {
	return prober{}, nil
}

type prober struct{}

func (prober) Seconds() (float64, error) {
	out, err := exec.Command("/usr/sbin/ioreg", "-c", "IOHIDSystem").Output()
	if err != nil {
		return 0, err
	}
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}
		m := hidIdleRe.FindStringSubmatch(line)
		if len(m) == 2 {
			ns, _ := strconv.ParseFloat(m[1], 64)
			return ns / 1_000_000_000.0, nil
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}
