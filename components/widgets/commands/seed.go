package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgets "github.com/goliatone/go-widgets/components/widgets"
)

// SeedPagesInput controls bootstrap behavior. When ManifestPath is empty the
// starter pages are saved.
type SeedPagesInput struct {
	ManifestPath string
}

// SeedPagesCommand saves starter pages or the pages of a manifest file.
type SeedPagesCommand struct {
	service   *widgets.Service
	telemetry Telemetry
}

// NewSeedPagesCommand wires dependencies.
func NewSeedPagesCommand(service *widgets.Service, telemetry Telemetry) *SeedPagesCommand {
	return &SeedPagesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedPagesInput] = (*SeedPagesCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedPagesCommand) Execute(ctx context.Context, msg SeedPagesInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	source := "defaults"
	if msg.ManifestPath != "" {
		doc, err := widgets.ReadManifest(msg.ManifestPath)
		if err != nil {
			return err
		}
		if err := c.service.ApplyManifest(ctx, doc); err != nil {
			return err
		}
		source = msg.ManifestPath
	} else if err := widgets.SeedPages(ctx, c.service); err != nil {
		return err
	}
	recordCommand(ctx, c.telemetry, "seed", map[string]any{"source": source})
	return nil
}
