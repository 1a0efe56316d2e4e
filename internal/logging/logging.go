// Package logging builds the zerolog logger used across py3wiki.
// Logs always go to stderr; stdout carries only the diff and the new table.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New creates a logger writing to w at the given level. FormatAuto picks the
// console writer when w is a terminal.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	switch strings.ToLower(format) {
	case "", FormatAuto:
		if isTerminal(w) {
			w = consoleWriter(w)
		}
	case FormatConsole:
		w = consoleWriter(w)
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	// The global level is a floor for every logger; only ever lower it.
	if lvl < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(lvl)
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// ParseLevel parses a level name; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
