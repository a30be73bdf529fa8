package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const badKey = "!BADKEY"

type LogrusLogger struct {
	entry *logrus.Entry
}

func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// New builds a logrus logger writing to out. format is "json" or "text",
// level is any logrus level name; unknown levels fall back to info.
func New(out io.Writer, level, format string) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return NewLogrusLogger(l)
}

func (s *LogrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.withContext(ctx, args).Debug(msg)
}

func (s *LogrusLogger) Info(ctx context.Context, msg string, args ...any) {
	s.withContext(ctx, args).Info(msg)
}

func (s *LogrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.withContext(ctx, args).Warn(msg)
}

func (s *LogrusLogger) Error(ctx context.Context, msg string, args ...any) {
	s.withContext(ctx, args).Error(msg)
}

func (s *LogrusLogger) With(args ...any) Logger {
	return &LogrusLogger{entry: s.entry.WithFields(toFields(args))}
}

func (s *LogrusLogger) withContext(ctx context.Context, args []any) *logrus.Entry {
	e := s.entry.WithContext(ctx)
	if ctx != nil {
		if reqID := chiMiddleware.GetReqID(ctx); reqID != "" {
			e = e.WithField("requestId", reqID)
		}
	}
	if len(args) == 0 {
		return e
	}
	return e.WithFields(toFields(args))
}

// toFields turns alternating key-value pairs into logrus fields. A dangling
// value or a non-string key is recorded under badKey.
func toFields(args []any) logrus.Fields {
	fields := make(logrus.Fields, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			fields[badKey] = fmt.Sprint(args[i])
			continue
		}
		fields[key] = args[i+1]
		i++
	}
	return fields
}
