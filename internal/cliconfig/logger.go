package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the console logger with human-readable output on
// stderr. The level is applied by the caller once the configuration is
// assembled.
func Logger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}
