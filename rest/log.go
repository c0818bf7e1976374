package rest

import (
	"context"
	"fmt"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
)

// logErrorf logs through the resource package logger hook.
func logErrorf(ctx context.Context, format string, a ...interface{}) {
	if resource.LoggerLevel <= resource.LogLevelError && resource.Logger != nil {
		resource.Logger(ctx, resource.LogLevelError, fmt.Sprintf(format, a...), nil)
	}
}
