// Package logger provides context-aware structured logging built on logrus.
// All log output goes to stderr: stdout is reserved for structured results
// and MCP frames.
package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// G is a convenience alias for GetLogger.
	G = GetLogger
	// L is the global fallback logger entry.
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger attaches a logger entry to the context.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry.WithContext(ctx))
}

// GetLogger retrieves the logger entry from the context, falling back to L.
func GetLogger(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		return entry
	}
	return L.WithContext(ctx)
}

// SetLevel adjusts the global logger's level from a string such as "debug".
// Unknown levels are ignored and the current level is kept.
func SetLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		L.Logger.SetLevel(lvl)
	}
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false})
	l.SetLevel(logrus.WarnLevel)
	return l
}
