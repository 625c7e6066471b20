// Package logging provides the process-wide structured logger. Only
// collaborator and scheduler code imports this package; the control
// package itself stays allocation-free and log-free on the tick path
// (see control/tick.go).
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a console-rendered zerolog.Logger at the given verbosity.
// level follows zerolog's convention: lower is more verbose
// (zerolog.DebugLevel < zerolog.InfoLevel < ...).
func New(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// LevelFromVerbosity maps a -v flag count to a zerolog level on a
// 0..4 scale (ERROR..TRACE).
func LevelFromVerbosity(v int) zerolog.Level {
	switch {
	case v <= 0:
		return zerolog.ErrorLevel
	case v == 1:
		return zerolog.WarnLevel
	case v == 2:
		return zerolog.InfoLevel
	case v == 3:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
