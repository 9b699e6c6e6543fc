// Package logging defines the structured logger used by the fuel log client
// and the reference sheet endpoint.
package logging

import "context"

// Logger is a context-aware, structured logger. Variadic args are key/value
// pairs:
//
//	log.Info(ctx, "entry queued", "id", e.ID, "vehicle", e.Vehicle)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}

// Nop discards everything. Handy for tests and library defaults.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }
