package session

import "fmt"

// TraceKind classifies what a consumed line did to the session.
type TraceKind string

const (
	TraceLoad     TraceKind = "load"
	TraceRotate   TraceKind = "rotate"
	TraceControl  TraceKind = "control"
	TraceRejected TraceKind = "rejected"
)

// Trace describes the observable effect of one consumed line. Traces
// are handed to the trace sink for display and, when enabled, to the
// frame audit log.
type Trace struct {
	Kind    TraceKind
	RawLine string

	// Load frames.
	Symbol  byte
	Decoded byte

	// Rotate frames.
	Amount int

	// Control markers and rejected lines.
	Note string
}

// Detail renders the kind-specific payload of the trace in a compact
// form suitable for the audit log.
func (t Trace) Detail() string {
	switch t.Kind {
	case TraceLoad:
		return fmt.Sprintf("%c>%c", t.Symbol, t.Decoded)
	case TraceRotate:
		return fmt.Sprintf("%+d", t.Amount)
	default:
		return t.Note
	}
}

// String renders the trace for the operator console.
func (t Trace) String() string {
	switch t.Kind {
	case TraceLoad:
		return fmt.Sprintf("frame [%s] -> symbol %q decoded as %q", t.RawLine, t.Symbol, t.Decoded)
	case TraceRotate:
		return fmt.Sprintf("frame [%s] -> rotor rotated %+d", t.RawLine, t.Amount)
	case TraceControl:
		return fmt.Sprintf("--- %s ---", t.Note)
	case TraceRejected:
		return fmt.Sprintf("frame [%s] -> rejected: %s", t.RawLine, t.Note)
	}
	return t.RawLine
}
