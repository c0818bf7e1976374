package mem

import (
	"context"
	"time"
)

// handleWithLatency allows introduction of artificial latency while handling
// context cancellation. The method first wait for the given latency while
// monitoring ctx.Done. If context is canceled during the wait, the context
// error is returned. If latency passed, the handler is executed and its error
// output is returned.
func handleWithLatency(latency time.Duration, ctx context.Context, handler func() error) error {
	if latency == 0 {
		return handler()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(latency):
		return handler()
	}
}
