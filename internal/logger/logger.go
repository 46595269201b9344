// Package logger provides the shared logger used across portlab
// commands.
//
// The root logger uses github.com/rs/zerolog with a console writer. It
// is silenced automatically under "go test" so that library tests stay
// quiet.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// SetLevel adjusts the global log level.
func SetLevel(level zerolog.Level) {
	logger = logger.Level(level)
}

// Disable disables logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the shared logger.
func Logger() zerolog.Logger {
	return logger
}
