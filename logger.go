package geoenrich

import (
	"context"
)

// Logger records row-level anomalies observed by the Enricher, such as rows
// missing their IP cell or database lookups that failed transiently.
//
// The provided context is the one passed to Process and can carry tracing
// metadata for batch jobs.
//
// The interface intentionally mirrors slog's WarnContext signature, so
// *slog.Logger can be used directly without an adapter.
type Logger interface {
	WarnContext(ctx context.Context, msg string, args ...any)
}

// noopLogger is the default Logger implementation when logging is not
// explicitly configured.
type noopLogger struct{}

func (noopLogger) WarnContext(context.Context, string, ...any) {}
