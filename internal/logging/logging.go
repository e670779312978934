// Package logging builds the zerolog loggers used for diagnostics. User
// facing notifications are printed by package ui, not logged.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const KeyComponent = "component"

// Component names.
const (
	ComponentCLI        = "cli"
	ComponentSession    = "session"
	ComponentProvider   = "provider"
	ComponentFundraiser = "fundraiser"
	ComponentRPC        = "rpc"
)

// New returns a console logger writing to w at level. An unknown level
// falls back to warn.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Level maps the --verbose flag to a level name.
func Level(verbose bool) string {
	if verbose {
		return zerolog.DebugLevel.String()
	}
	return zerolog.WarnLevel.String()
}

// For returns a child logger tagged with component.
func For(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str(KeyComponent, component).Logger()
}

// Nop returns a disabled logger for tests and library defaults.
func Nop() zerolog.Logger { return zerolog.Nop() }
