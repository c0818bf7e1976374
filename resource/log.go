package resource

import (
	"context"
	"fmt"
	"log"
)

// LogLevel defines log levels
type LogLevel int

// Log levels
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// LoggerLevel sets the logging level of the framework.
var LoggerLevel = LogLevelInfo

// Logger is the function used by the resource layer to log messages. By
// default it writes to the standard logger but you can customize it to plug
// any logger.
var Logger = func(ctx context.Context, level LogLevel, msg string, fields map[string]interface{}) {
	log.Output(2, msg)
}

func logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if LoggerLevel <= LogLevelDebug && Logger != nil {
		Logger(ctx, LogLevelDebug, msg, fields)
	}
}

func logPanicf(ctx context.Context, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if LoggerLevel <= LogLevelFatal && Logger != nil {
		Logger(ctx, LogLevelFatal, msg, nil)
	}
	panic(msg)
}
