package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	Level   string
	Format  string
	NoColor bool

	// Out defaults to stderr.
	Out io.Writer
}

// InitDefault sets up a console logger at info level, used before flags are parsed.
func InitDefault() {
	_ = Init(Options{Level: "info", Format: FormatConsole})
}

// Init configures the global zerolog logger.
func Init(opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	case FormatConsole, "":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    opts.NoColor,
			TimeFormat: time.TimeOnly,
		}).With().Timestamp().Logger()
	default:
		return fmt.Errorf("invalid log format %q (expected %s or %s)", opts.Format, FormatConsole, FormatJSON)
	}

	// handlers without a request logger still get the global one
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}
