// Package rotor implements the PRT-7 substitution cipher state: a fixed
// A-Z wheel with a rotating head, and the append-only payload buffer the
// decoded message accumulates in.
package rotor

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const wheelSize = len(alphabet)

// Mapping is the rotor: the fixed 26-letter wheel plus the current head
// offset. The zero value is a freshly seated rotor with the head at 'A'.
type Mapping struct {
	head int
}

// New returns a rotor with the head at 'A'.
func New() *Mapping {
	return &Mapping{}
}

// Rotate shifts the head n positions around the wheel, forward for
// positive n and backward for negative. Zero is a valid no-op. The head
// wraps modulo 26, so any magnitude is accepted; n is reduced before
// the addition so even math.MinInt cannot overflow.
func (m *Mapping) Rotate(n int) {
	m.head = ((m.head+n%wheelSize)%wheelSize + wheelSize) % wheelSize
}

// Decode maps one encoded symbol through the rotor. Space is never
// ciphered, and anything outside 'A'-'Z' passes through unchanged; the
// wire protocol is permissive about non-alphabetic payloads. For a
// letter c the result is the wheel letter found (c - 'A') steps forward
// from the head.
func (m *Mapping) Decode(c byte) byte {
	if c < 'A' || c > 'Z' {
		return c
	}
	return alphabet[(m.head+int(c-'A'))%wheelSize]
}

// Offset reports the head position; 0 means the head sits at 'A'.
func (m *Mapping) Offset() int {
	return m.head
}
