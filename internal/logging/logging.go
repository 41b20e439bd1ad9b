// Package logging builds the process logger from settings.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options selects the level, format and destination of the logger.
type Options struct {
	Level  string    // zerolog level name; empty means info
	Format string    // json or console; empty means json
	Writer io.Writer // defaults to os.Stderr
}

// New returns a timestamped logger. Unknown levels and formats are errors so
// a typo in config.yaml does not silently change what gets logged.
func New(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	switch opts.Format {
	case "", FormatJSON:
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: want %s or %s", opts.Format, FormatJSON, FormatConsole)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
