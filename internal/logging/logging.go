// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global level and output. Development gets a human-friendly
// console writer on stderr; production gets JSON lines.
func Init(level string, production bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stderr
	if !production {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	// zerolog.Ctx falls back to the global logger outside request scope.
	zerolog.DefaultContextLogger = &log.Logger

	if err != nil {
		logger.Warn().Str("level", level).Msg("invalid log level, defaulting to info")
	}
	return logger
}
