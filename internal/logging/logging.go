package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Debug controls whether debug logs are printed.
var Debug bool

// Logger is the process-wide structured logger.
var Logger = newLogger(os.Stderr)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Setup sets the output and the debug switch. Terminal frontends pass
// io.Discard or a file so log lines do not corrupt the screen.
func Setup(w io.Writer, debug bool) {
	Debug = debug
	Logger = newLogger(w)
	if debug {
		Logger = Logger.Level(zerolog.DebugLevel)
	} else {
		Logger = Logger.Level(zerolog.InfoLevel)
	}
}

// Debugf logs a formatted debug message when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		Logger.Debug().Msgf(format, v...)
	}
}

// Infof logs a formatted informational message.
func Infof(format string, v ...any) {
	Logger.Info().Msgf(format, v...)
}
