//go:build !windows

package winenum

// New returns ErrUnsupported outside Windows. Tracking is Windows-only;
// reporting and the dashboard work everywhere since they only read logs.
func New() (Source, error) {
	return nil, ErrUnsupported
}
