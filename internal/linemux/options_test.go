package linemux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func TestNormalizeAppliesDefaults(t *testing.T) {
	opts, err := PortOptions{}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, 9600, opts.BaudRate)
	assert.Equal(t, 8, opts.DataBits)
	assert.Equal(t, 1, opts.StopBits)
	assert.Equal(t, "N", opts.Parity)
}

func TestNormalizeParityAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "N"},
		{"n", "N"},
		{"none", "N"},
		{"e", "E"},
		{"EVEN", "E"},
		{"odd", "O"},
		{" O ", "O"},
	}
	for _, tt := range tests {
		opts, err := PortOptions{Parity: tt.in}.Normalize()
		require.NoError(t, err, "parity %q", tt.in)
		assert.Equal(t, tt.want, opts.Parity, "parity %q", tt.in)
	}
}

func TestNormalizeRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts PortOptions
	}{
		{"data bits too small", PortOptions{DataBits: 4}},
		{"data bits too large", PortOptions{DataBits: 9}},
		{"bad stop bits", PortOptions{StopBits: 3}},
		{"bad parity", PortOptions{Parity: "Q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Normalize()
			assert.Error(t, err)
		})
	}
}

func TestSerialModeMapping(t *testing.T) {
	mode, err := PortOptions{BaudRate: 19200, DataBits: 7, StopBits: 2, Parity: "E"}.SerialMode()
	require.NoError(t, err)

	assert.Equal(t, 19200, mode.BaudRate)
	assert.Equal(t, 7, mode.DataBits)
	assert.Equal(t, serial.TwoStopBits, mode.StopBits)
	assert.Equal(t, serial.EvenParity, mode.Parity)
}

func TestSerialModeDefaults(t *testing.T) {
	mode, err := PortOptions{}.SerialMode()
	require.NoError(t, err)

	assert.Equal(t, 9600, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
}
