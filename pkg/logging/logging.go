// Package logging builds slog loggers for the local preview CLI and adapts them
// to the printf-style logger the action code expects.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// ParseLevel converts a textual log level into a slog.Level, defaulting to info
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

// NewLogger constructs a slog.Logger with a tint handler
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level: level,
	}))
}

// Printf adapts a slog.Logger to Debugf/Infof/Warningf calls
type Printf struct {
	logger *slog.Logger
}

// NewPrintf wraps logger
func NewPrintf(logger *slog.Logger) *Printf {
	return &Printf{logger: logger}
}

// Debugf formats msg with args and logs it at debug level
func (p *Printf) Debugf(msg string, args ...any) {
	p.logger.Debug(fmt.Sprintf(msg, args...))
}

// Infof formats msg with args and logs it at info level
func (p *Printf) Infof(msg string, args ...any) {
	p.logger.Info(fmt.Sprintf(msg, args...))
}

// Warningf formats msg with args and logs it at warn level
func (p *Printf) Warningf(msg string, args ...any) {
	p.logger.Warn(fmt.Sprintf(msg, args...))
}
