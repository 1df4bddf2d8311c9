package tool

import "context"

// UpdateFunc posts a progress message during tool execution, letting the
// caller surface what an agent is doing in real time.
type UpdateFunc func(ctx context.Context, message string)

type contextKey struct{}

// WithUpdate returns a new context carrying the given UpdateFunc.
func WithUpdate(ctx context.Context, fn UpdateFunc) context.Context {
	return context.WithValue(ctx, contextKey{}, fn)
}

// Update calls the UpdateFunc stored in ctx with the given message.
// Without an UpdateFunc in ctx the call is a no-op.
func Update(ctx context.Context, message string) {
	if fn, ok := ctx.Value(contextKey{}).(UpdateFunc); ok {
		fn(ctx, message)
	}
}
