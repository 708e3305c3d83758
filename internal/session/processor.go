package session

import (
	"fmt"

	"github.com/banshee-data/prt7/internal/frame"
	"github.com/banshee-data/prt7/internal/rotor"
)

// Processor applies parsed frames to the rotor and the payload. Only
// well-formed frames reach it, so Apply has no failure path.
type Processor struct {
	Rotor   *rotor.Mapping
	Payload *rotor.Payload
}

// Apply mutates the session state for one frame and reports what it
// did.
func (p *Processor) Apply(f frame.Frame, raw string) Trace {
	switch f := f.(type) {
	case frame.Load:
		decoded := p.Rotor.Decode(f.Symbol)
		p.Payload.Append(decoded)
		return Trace{Kind: TraceLoad, RawLine: raw, Symbol: f.Symbol, Decoded: decoded}
	case frame.Rotate:
		p.Rotor.Rotate(f.Amount)
		return Trace{Kind: TraceRotate, RawLine: raw, Amount: f.Amount}
	default:
		// The frame set is closed; a new variant reaching here is a
		// programming error, not a protocol one.
		panic(fmt.Sprintf("session: unhandled frame type %T", f))
	}
}
