package widgets

import (
	"context"
	"log/slog"
	"sort"
)

// Telemetry receives page and command events such as widgets.page.save or
// widgets.command.delete, each with a flat payload.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function to Telemetry.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record implements Telemetry.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	if f != nil {
		f(ctx, event, payload)
	}
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// NoopTelemetry discards every event.
func NoopTelemetry() Telemetry { return noopTelemetry{} }

// LogTelemetry writes events as debug records, payload keys sorted.
type LogTelemetry struct {
	Logger *slog.Logger
}

// Record implements Telemetry.
func (l LogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, payload[key]))
	}
	logger.LogAttrs(ctx, slog.LevelDebug, event, attrs...)
}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
