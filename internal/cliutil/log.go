// Package cliutil holds small helpers shared by the comic2acv and
// comicdiff command-line tools.
package cliutil

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console-formatted zerolog.Logger writing to stderr,
// at debug level when verbose is set, info level otherwise.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: !isTerminal(os.Stderr)}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
