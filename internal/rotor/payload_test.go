package rotor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadAppendOrder(t *testing.T) {
	var p Payload
	require.Empty(t, p.Render())
	require.Zero(t, p.Len())

	for _, c := range []byte("HELLO WORLD") {
		p.Append(c)
	}

	assert.Equal(t, "HELLO WORLD", p.Render())
	assert.Equal(t, 11, p.Len())
}

func TestPayloadRenderIsSafeMidStream(t *testing.T) {
	var p Payload
	p.Append('A')
	p.Append('B')
	assert.Equal(t, "AB", p.Render())

	// earlier symbols are never modified by later appends
	p.Append('C')
	assert.Equal(t, "ABC", p.Render())
}
