package resource

import "context"

type ctxKey int

const (
	ctxKeyDisableHooks ctxKey = iota
)

// WithDisableHooks returns a new context where the find and get event
// handlers are not called. Internal reads such as health checks use it to stay
// out of the request metrics.
func WithDisableHooks(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyDisableHooks, true)
}

func hooksDisabled(ctx context.Context) bool {
	b, ok := ctx.Value(ctxKeyDisableHooks).(bool)
	return ok && b
}
