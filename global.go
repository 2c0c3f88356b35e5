package autolog

import (
	"context"
	"log/slog"
	"sync"
)

var (
	defaultLogger *PerfLogger
	defaultMu     sync.RWMutex
)

// Default returns the process-wide PerfLogger, building a slog-backed one
// with default options on first use.
func Default() *PerfLogger {
	defaultMu.RLock()
	if defaultLogger != nil {
		defaultMu.RUnlock()
		return defaultLogger
	}
	defaultMu.RUnlock()

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(SlogSink{Logger: slog.Default()}, DefaultOptions())
	}
	return defaultLogger
}

// SetDefault replaces the process-wide PerfLogger.
func SetDefault(p *PerfLogger) {
	if p == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = p
	defaultMu.Unlock()
}

// Start starts a timer on the default PerfLogger.
func Start(ctx context.Context, method string) *Timer {
	return Default().Start(ctx, method)
}

// StartEndpoint starts an endpoint timer on the default PerfLogger.
func StartEndpoint(ctx context.Context, method, httpMethod string) *Timer {
	return Default().StartEndpoint(ctx, method, httpMethod)
}

// StopAndLog stops and reports a timer on the default PerfLogger.
func StopAndLog(t *Timer) {
	Default().StopAndLog(t)
}
