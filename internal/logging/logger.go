// Package logging defines the structured-logging interface shared by the
// HTTP layer, services, and background jobs.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// alternating key/value pairs:
//
//	log.Info(ctx, "server started", "port", cfg.Server.Port)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key/value pairs.
	With(args ...any) Logger
}
