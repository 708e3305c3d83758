package linemux

import (
	"go.bug.st/serial"
)

// NewRealLineMux creates a LineMux backed by a real serial port at the
// given path using the provided serial options. Failure to open the
// port is the one fatal startup error of the decoder; everything after
// this point is recoverable.
func NewRealLineMux(path string, opts PortOptions) (*LineMux[serial.Port], error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}

	return NewLineMux[serial.Port](port), nil
}
