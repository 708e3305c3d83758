package linemux

import "io"

// LinePorter is the minimal interface the mux needs from a port. The
// PRT-7 link is one-way: the console only ever reads, so there is no
// write side. The abstraction exists so tests can run without real
// serial hardware.
type LinePorter interface {
	io.Reader
	io.Closer
}
