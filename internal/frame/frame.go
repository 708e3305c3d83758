// Package frame defines the PRT-7 wire frames and the parser that turns
// raw serial lines into them.
//
// A frame is one protocol instruction. The set is closed: a line either
// loads one ciphered symbol into the message or rotates the decoding
// rotor. Control lines (start / end of transmission) are not frames and
// are handled a level up, by the session controller.
package frame

// Frame is one parsed protocol instruction, either a Load or a Rotate.
// Consumers dispatch with a type switch; the variant set never grows at
// runtime.
type Frame interface {
	isFrame()
}

// Load carries a single encoded symbol to decode and append to the
// message.
type Load struct {
	Symbol byte
}

// Rotate carries a signed rotor rotation: positive forward, negative
// backward, zero a no-op.
type Rotate struct {
	Amount int
}

func (Load) isFrame() {}

func (Rotate) isFrame() {}
