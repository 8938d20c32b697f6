//go:build !linux

package gpio

import "errors"

// RealPanel is not available on non-Linux platforms.
type RealPanel struct{}

// Open returns an error on non-Linux platforms.
func Open() (*RealPanel, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (p *RealPanel) Read() (Levels, error) {
	return Levels{}, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (p *RealPanel) Close() error {
	return nil
}
