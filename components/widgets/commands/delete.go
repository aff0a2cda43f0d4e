package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgets "github.com/goliatone/go-widgets/components/widgets"
)

// DeletePageInput identifies the page to remove.
type DeletePageInput struct {
	PageID   string `json:"page_id"`
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

type deleteService interface {
	DeletePage(ctx context.Context, id string) error
}

// DeletePageCommand wraps Service.DeletePage.
type DeletePageCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewDeletePageCommand creates the command.
func NewDeletePageCommand(service deleteService, telemetry Telemetry) *DeletePageCommand {
	return &DeletePageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeletePageInput] = (*DeletePageCommand)(nil)

// Execute removes the page.
func (c *DeletePageCommand) Execute(ctx context.Context, msg DeletePageInput) error {
	if c.service == nil {
		return errors.New("delete command requires service")
	}
	if msg.PageID == "" {
		return errors.New("delete command requires page id")
	}
	ctx = widgets.ContextWithActivity(ctx, widgets.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.service.DeletePage(ctx, msg.PageID); err != nil {
		return err
	}
	recordCommand(ctx, c.telemetry, "delete", map[string]any{"page_id": msg.PageID})
	return nil
}
