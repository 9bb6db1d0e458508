//go:build !windows

package acquire

func firmwareTable() ([]byte, error) {
	return nil, ErrUnsupported
}
