package cmd

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the structured logger of the application.
//
// Logs are written to stderr, stdout is reserved to reports.
func NewLogger(level string, pretty bool) zerolog.Logger {
	lvl := zerolog.WarnLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	if pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
