//go:build !windows && !darwin && !linux

package idle

func New() (Prober, error) {
	return nil, ErrUnsupported
}
