package core

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger is the structured logger passed through a run. Fields are key-value
// pairs, as in slog.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Debug(msg string, fields ...any)
}

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger writes JSON records to stderr.
func NewLogger(level string) Logger {
	return NewJSONLogger(os.Stderr, level)
}

// NewJSONLogger writes one JSON object per record to w.
func NewJSONLogger(w io.Writer, level string) Logger {
	return FromSlog(slog.New(jsonHandler(w, level)))
}

// NewConsoleLogger writes colored single-line records to w.
func NewConsoleLogger(w io.Writer, level string) Logger {
	return FromSlog(slog.New(consoleHandler(w, level)))
}

// NewSlogFromConfig builds a slog.Logger writing to w in the configured
// format and level. The CLI installs it with slog.SetDefault so packages that
// log through slog directly follow LOG_FORMAT and LOG_LEVEL too.
func NewSlogFromConfig(w io.Writer, cfg *Config) *slog.Logger {
	if cfg.LogFormat == "text" {
		return slog.New(consoleHandler(w, cfg.LogLevel))
	}
	return slog.New(jsonHandler(w, cfg.LogLevel))
}

// NewLoggerFromConfig returns a console logger on stderr for LOG_FORMAT=text
// and a JSON logger otherwise.
func NewLoggerFromConfig(cfg *Config) Logger {
	return FromSlog(NewSlogFromConfig(os.Stderr, cfg))
}

// FromSlog adapts an existing slog.Logger.
func FromSlog(l *slog.Logger) Logger {
	return &slogLogger{logger: l}
}

func jsonHandler(w io.Writer, level string) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
}

func consoleHandler(w io.Writer, level string) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: "15:04:05",
	})
}

// NopLogger discards everything.
func NopLogger() Logger {
	return &slogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// parseLevel maps LOG_LEVEL values to slog levels. Unknown values mean info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *slogLogger) Info(msg string, fields ...any)  { l.logger.Info(msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...any)  { l.logger.Warn(msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...any) { l.logger.Error(msg, fields...) }
func (l *slogLogger) Debug(msg string, fields ...any) { l.logger.Debug(msg, fields...) }
