package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/prt7/internal/frame"
	"github.com/banshee-data/prt7/internal/rotor"
)

func newProcessor() *Processor {
	return &Processor{Rotor: rotor.New(), Payload: &rotor.Payload{}}
}

func TestApplyLoadDecodesAndAppends(t *testing.T) {
	p := newProcessor()
	p.Rotor.Rotate(2)

	tr := p.Apply(frame.Load{Symbol: 'A'}, "L,A")

	assert.Equal(t, TraceLoad, tr.Kind)
	assert.Equal(t, byte('A'), tr.Symbol)
	assert.Equal(t, byte('C'), tr.Decoded)
	assert.Equal(t, "C", p.Payload.Render())
}

func TestApplyRotateMutatesRotorOnly(t *testing.T) {
	p := newProcessor()

	tr := p.Apply(frame.Rotate{Amount: -3}, "M,-3")

	assert.Equal(t, TraceRotate, tr.Kind)
	assert.Equal(t, -3, tr.Amount)
	assert.Equal(t, 23, p.Rotor.Offset())
	assert.Zero(t, p.Payload.Len())
}

func TestTraceRendering(t *testing.T) {
	tests := []struct {
		name       string
		trace      Trace
		wantString string
		wantDetail string
	}{
		{
			"load",
			Trace{Kind: TraceLoad, RawLine: "L,A", Symbol: 'A', Decoded: 'B'},
			`frame [L,A] -> symbol 'A' decoded as 'B'`,
			"A>B",
		},
		{
			"rotate",
			Trace{Kind: TraceRotate, RawLine: "M,-5", Amount: -5},
			"frame [M,-5] -> rotor rotated -5",
			"-5",
		},
		{
			"control",
			Trace{Kind: TraceControl, RawLine: "I", Note: "start of transmission"},
			"--- start of transmission ---",
			"start of transmission",
		},
		{
			"rejected",
			Trace{Kind: TraceRejected, RawLine: "zz", Note: "frame: malformed frame"},
			"frame [zz] -> rejected: frame: malformed frame",
			"frame: malformed frame",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantString, tt.trace.String())
			assert.Equal(t, tt.wantDetail, tt.trace.Detail())
		})
	}
}
