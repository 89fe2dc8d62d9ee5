// Package logging adapts zerolog to the kratos log.Logger interface so every
// layer logs through log.Helper while output stays structured JSON (or a
// console rendering during development).
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/rs/zerolog"

	"moviedex/internal/conf"
)

var _ log.Logger = (*Logger)(nil)

// Logger writes kratos key/value records as zerolog events.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger from the log section of the configuration. A nil
// writer means stderr.
func New(c *conf.Log, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	if c.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	zl := zerolog.New(w).Level(parseLevel(c.Level))
	return &Logger{zl: zl}
}

// Zerolog exposes the underlying logger for code that wants the zerolog API
// directly.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Log implements log.Logger.
func (l *Logger) Log(level log.Level, keyvals ...interface{}) error {
	var e *zerolog.Event
	switch level {
	case log.LevelDebug:
		e = l.zl.Debug()
	case log.LevelInfo:
		e = l.zl.Info()
	case log.LevelWarn:
		e = l.zl.Warn()
	case log.LevelError:
		e = l.zl.Error()
	case log.LevelFatal:
		// kratos exits on fatal itself, so never let zerolog do it first.
		e = l.zl.WithLevel(zerolog.FatalLevel)
	default:
		e = l.zl.Info()
	}
	if e == nil {
		return nil
	}

	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "KEYVALS UNPAIRED")
	}
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		switch v := keyvals[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case fmt.Stringer:
			e = e.Stringer(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Send()
	return nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
