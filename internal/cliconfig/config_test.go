package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsMissingSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = ""
	cfg.Fixtures = ""
	assert.Error(t, cfg.Validate())

	cfg.Fixtures = "transmission.txt"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadSerialOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataBits = 3
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
port = "/dev/ttyS3"
baud_rate = 19200
parity = "E"
db = "frames.db"
quiet = true
`)

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc, nil)

	want := DefaultConfig()
	want.Port = "/dev/ttyS3"
	want.BaudRate = 19200
	want.Parity = "E"
	want.DBPath = "frames.db"
	want.Quiet = true

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileConfigRejectsBadTOML(t *testing.T) {
	path := writeConfigFile(t, `port = [`)
	_, err := LoadFileConfig(path)
	assert.Error(t, err)
}

func TestApplyFileConfigSkipsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = "/dev/flag-wins" // as if set by flag

	port := "/dev/file-loses"
	ApplyFileConfig(&cfg, FileConfig{Port: &port}, map[string]bool{"port": true})

	assert.Equal(t, "/dev/flag-wins", cfg.Port)
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("PRT7_PORT", "/dev/ttyENV")
	t.Setenv("PRT7_BAUD_RATE", "4800")
	t.Setenv("PRT7_QUIET", "true")
	t.Setenv("PRT7_DATA_BITS", "not-a-number") // ignored

	cfg := DefaultConfig()
	ApplyEnvConfig(&cfg, nil)

	assert.Equal(t, "/dev/ttyENV", cfg.Port)
	assert.Equal(t, 4800, cfg.BaudRate)
	assert.True(t, cfg.Quiet)
	assert.Zero(t, cfg.DataBits)
}

func TestApplyEnvConfigSkipsChangedFlags(t *testing.T) {
	t.Setenv("PRT7_PORT", "/dev/ttyENV")

	cfg := DefaultConfig()
	cfg.Port = "/dev/flag-wins"
	ApplyEnvConfig(&cfg, map[string]bool{"port": true})

	assert.Equal(t, "/dev/flag-wins", cfg.Port)
}

// Precedence across all three sources: flags beat env, env beats file.
func TestLayeringPrecedence(t *testing.T) {
	t.Setenv("PRT7_BAUD_RATE", "4800")
	t.Setenv("PRT7_PARITY", "O")

	path := writeConfigFile(t, `
port = "/dev/from-file"
baud_rate = 19200
parity = "E"
log_level = "debug"
`)

	cfg := DefaultConfig()
	cfg.Port = "/dev/from-flag"
	changed := map[string]bool{"port": true}

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)
	ApplyFileConfig(&cfg, fc, changed)
	ApplyEnvConfig(&cfg, changed)

	assert.Equal(t, "/dev/from-flag", cfg.Port) // flag wins
	assert.Equal(t, 4800, cfg.BaudRate)         // env beats file
	assert.Equal(t, "O", cfg.Parity)            // env beats file
	assert.Equal(t, "debug", cfg.LogLevel)      // file beats default
	require.NoError(t, cfg.Validate())
}

func TestPortOptionsConversion(t *testing.T) {
	cfg := Config{BaudRate: 19200, DataBits: 7, StopBits: 2, Parity: "E"}
	opts := cfg.PortOptions()

	assert.Equal(t, 19200, opts.BaudRate)
	assert.Equal(t, 7, opts.DataBits)
	assert.Equal(t, 2, opts.StopBits)
	assert.Equal(t, "E", opts.Parity)
}

func TestFileExists(t *testing.T) {
	path := writeConfigFile(t, "")
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(t.TempDir(), "missing.toml")))
	assert.False(t, FileExists(t.TempDir())) // directories don't count
}
