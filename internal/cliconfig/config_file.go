package cliconfig

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with pointer fields so keys absent from the
// file can be told apart from explicit zero values.
type FileConfig struct {
	Port     *string `toml:"port"`
	BaudRate *int    `toml:"baud_rate"`
	DataBits *int    `toml:"data_bits"`
	StopBits *int    `toml:"stop_bits"`
	Parity   *string `toml:"parity"`
	Fixtures *string `toml:"fixtures"`
	DBPath   *string `toml:"db"`
	LogLevel *string `toml:"log_level"`
	Quiet    *bool   `toml:"quiet"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}
	var fc FileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// ApplyFileConfig copies file values into cfg, skipping any field whose
// flag was set on the command line: flags always win over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	if fc.Port != nil && !changed["port"] {
		cfg.Port = *fc.Port
	}
	if fc.BaudRate != nil && !changed["baud"] {
		cfg.BaudRate = *fc.BaudRate
	}
	if fc.DataBits != nil && !changed["data-bits"] {
		cfg.DataBits = *fc.DataBits
	}
	if fc.StopBits != nil && !changed["stop-bits"] {
		cfg.StopBits = *fc.StopBits
	}
	if fc.Parity != nil && !changed["parity"] {
		cfg.Parity = *fc.Parity
	}
	if fc.Fixtures != nil && !changed["fixtures"] {
		cfg.Fixtures = *fc.Fixtures
	}
	if fc.DBPath != nil && !changed["db"] {
		cfg.DBPath = *fc.DBPath
	}
	if fc.LogLevel != nil && !changed["log-level"] {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Quiet != nil && !changed["quiet"] {
		cfg.Quiet = *fc.Quiet
	}
}
