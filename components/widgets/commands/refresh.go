package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgets "github.com/goliatone/go-widgets/components/widgets"
)

// RefreshPageInput emits a refresh notification for a page.
type RefreshPageInput struct {
	Event widgets.PageEvent
}

type refreshNotifier interface {
	NotifyPageUpdated(ctx context.Context, event widgets.PageEvent) error
}

// RefreshPageCommand triggers refresh hooks without touching storage.
type RefreshPageCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshPageCommand creates the command.
func NewRefreshPageCommand(service refreshNotifier, telemetry Telemetry) *RefreshPageCommand {
	return &RefreshPageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshPageInput] = (*RefreshPageCommand)(nil)

// Execute notifies the service's refresh hooks.
func (c *RefreshPageCommand) Execute(ctx context.Context, msg RefreshPageInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if msg.Event.PageID == "" {
		return errors.New("refresh command requires page id")
	}
	if msg.Event.Reason == "" {
		msg.Event.Reason = "refresh"
	}
	if err := c.service.NotifyPageUpdated(ctx, msg.Event); err != nil {
		return err
	}
	recordCommand(ctx, c.telemetry, "refresh", map[string]any{
		"page_id": msg.Event.PageID,
		"reason":  msg.Event.Reason,
	})
	return nil
}
