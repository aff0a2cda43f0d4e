package commands

import (
	"context"

	widgets "github.com/goliatone/go-widgets/components/widgets"
)

// Telemetry is the page service sink, so one recorder observes both the
// service and the commands driving it.
type Telemetry = widgets.Telemetry

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return widgets.NoopTelemetry()
	}
	return t
}

// recordCommand reports a completed command as widgets.command.<name>.
func recordCommand(ctx context.Context, t Telemetry, name string, payload map[string]any) {
	t.Record(ctx, "widgets.command."+name, payload)
}
