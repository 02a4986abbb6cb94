// Package logging defines the structured logger passed through the Mercury
// server and client. Two backends exist: slog (default) and zap.
package logging

import (
	"context"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger. Variadic args are key/value
// pairs:
//
//	log.Info(ctx, "volunteer registered", "username", name, "id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a JSON logger for the named backend writing to w. Unknown
// backends fall back to slog.
func New(backend string, w io.Writer) Logger {
	if strings.EqualFold(backend, BackendZap) {
		return NewZapLoggerTo(w)
	}
	return NewSlogLoggerTo(w)
}
