// Package logger builds the application's zerolog logger.
//
// The terminal belongs to the UI while the program runs, so log output goes
// to a file (or nowhere) instead of stderr.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/hrutik5321/rowdeck/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to cfg.File, plus the closer for that file.
//
// The local environment gets the human-readable console format; every other
// environment logs JSON lines.
func New(cfg config.LogConfig, env string) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	if cfg.File == "" {
		return zerolog.New(io.Discard).Level(level), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	return newWithWriter(f, level, env), f, nil
}

func newWithWriter(w io.Writer, level zerolog.Level, env string) zerolog.Logger {
	var out io.Writer = w
	if env == config.EnvLocal {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "rowdeck").
		Logger()
}

// NewPgxLogger derives the logger used for SQL statement tracing.
func NewPgxLogger(base zerolog.Logger) zerolog.Logger {
	return base.With().Str("component", "pgx").Logger()
}

// PgxTraceLogLevel maps a zerolog level onto pgx's tracelog scale.
func PgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
