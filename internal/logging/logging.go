// Package logging builds the zerolog loggers used by the command line front end.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level.
//
// An empty name means info. "none", "off" and "disabled" silence the logger.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return zerolog.InfoLevel, nil
	case "none", "off", "disabled":
		return zerolog.Disabled, nil
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", name)
	}

	return lvl, nil
}

// New creates a console logger writing to w at the given level.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
