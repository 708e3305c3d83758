package cliconfig

import (
	"os"
	"strconv"
)

// ApplyEnvConfig overlays PRT7_* environment variables onto cfg. Env
// values override the config file but lose to explicit flags, which the
// changed map tracks. Unparseable numeric or boolean values are
// silently ignored so a stray variable cannot break startup.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	if v := os.Getenv("PRT7_PORT"); v != "" && !changed["port"] {
		cfg.Port = v
	}
	if v := os.Getenv("PRT7_BAUD_RATE"); v != "" && !changed["baud"] {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BaudRate = n
		}
	}
	if v := os.Getenv("PRT7_DATA_BITS"); v != "" && !changed["data-bits"] {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataBits = n
		}
	}
	if v := os.Getenv("PRT7_STOP_BITS"); v != "" && !changed["stop-bits"] {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StopBits = n
		}
	}
	if v := os.Getenv("PRT7_PARITY"); v != "" && !changed["parity"] {
		cfg.Parity = v
	}
	if v := os.Getenv("PRT7_FIXTURES"); v != "" && !changed["fixtures"] {
		cfg.Fixtures = v
	}
	if v := os.Getenv("PRT7_DB"); v != "" && !changed["db"] {
		cfg.DBPath = v
	}
	if v := os.Getenv("PRT7_LOG_LEVEL"); v != "" && !changed["log-level"] {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PRT7_QUIET"); v != "" && !changed["quiet"] {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Quiet = b
		}
	}
}
