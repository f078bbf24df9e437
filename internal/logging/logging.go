package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the process logger. Verbosity maps 0 to warn, 1 to info,
// 2 to debug and anything higher to trace. A non-empty level name, e.g.
// from config, takes precedence over verbosity.
func Setup(w io.Writer, verbosity int, level string) zerolog.Logger {
	lvl := levelFor(verbosity)
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && level != "" {
		lvl = l
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	logger := zerolog.New(console).Level(lvl).With().Timestamp().Logger()

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	logger.Debug().Int("verbosity", verbosity).Str("level", lvl.String()).Msg("logger initialized")
	return logger
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
