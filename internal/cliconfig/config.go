// Package cliconfig assembles the console configuration from its three
// sources in rising precedence: a TOML config file, PRT7_* environment
// variables, and command-line flags.
package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/banshee-data/prt7/internal/linemux"
)

// Config holds everything the console needs to run one session.
type Config struct {
	// Port is the serial device the sender is attached to.
	Port     string `toml:"port"`
	BaudRate int    `toml:"baud_rate"`
	DataBits int    `toml:"data_bits"`
	StopBits int    `toml:"stop_bits"`
	Parity   string `toml:"parity"`

	// Fixtures, when set, replays a recorded transmission file instead
	// of opening a serial port.
	Fixtures string `toml:"fixtures"`

	// DBPath, when set, records a frame audit log in this sqlite
	// database. The decoded message is never stored.
	DBPath string `toml:"db"`

	LogLevel string `toml:"log_level"`
	Quiet    bool   `toml:"quiet"`
}

// DefaultConfig returns the built-in defaults. Serial parameters are
// left zero here; linemux.PortOptions.Normalize supplies 9600 8N1.
func DefaultConfig() Config {
	return Config{
		Port:     "/dev/ttyUSB0",
		LogLevel: "info",
	}
}

// DefaultConfigPath returns $HOME/.prt7/config.toml, or "" when the
// home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".prt7", "config.toml")
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Validate checks the assembled configuration before the session
// starts. Failures here are fatal startup errors.
func (c *Config) Validate() error {
	if c.Port == "" && c.Fixtures == "" {
		return errors.New("either a serial port or a fixtures file is required")
	}
	if _, err := c.PortOptions().Normalize(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// PortOptions converts the serial fields into linemux options.
func (c *Config) PortOptions() linemux.PortOptions {
	return linemux.PortOptions{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: c.StopBits,
		Parity:   c.Parity,
	}
}
