package rotor

// Payload is the append-only sequence of decoded symbols. Symbols are
// only ever added at the tail; nothing is modified or removed once
// appended. The zero value is an empty payload, ready to use.
type Payload struct {
	buf []byte
}

// Append adds one decoded symbol at the end of the message.
func (p *Payload) Append(c byte) {
	p.buf = append(p.buf, c)
}

// Render returns the accumulated message in append order. Safe to call
// at any time; an empty payload renders as "".
func (p *Payload) Render() string {
	return string(p.buf)
}

// Len reports the number of symbols appended so far.
func (p *Payload) Len() int {
	return len(p.buf)
}
