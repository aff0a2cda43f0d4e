package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgets "github.com/goliatone/go-widgets/components/widgets"
)

// SavePageInput carries a page document to store.
type SavePageInput struct {
	PageID   string         `json:"page_id"`
	Slug     string         `json:"slug"`
	Title    string         `json:"title"`
	Document []byte         `json:"document"`
	Format   widgets.Format `json:"format"`
	Metadata map[string]any `json:"metadata"`
	ActorID  string         `json:"actor_id"`
	UserID   string         `json:"user_id"`
	TenantID string         `json:"tenant_id"`
	// Result receives the stored page when set.
	Result *widgets.Page `json:"-"`
}

type saveService interface {
	SavePage(ctx context.Context, req widgets.SavePageRequest) (widgets.Page, error)
}

// SavePageCommand wraps Service.SavePage.
type SavePageCommand struct {
	service   saveService
	telemetry Telemetry
}

// NewSavePageCommand creates the command.
func NewSavePageCommand(service saveService, telemetry Telemetry) *SavePageCommand {
	return &SavePageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SavePageInput] = (*SavePageCommand)(nil)

// Execute decodes and stores the page.
func (c *SavePageCommand) Execute(ctx context.Context, msg SavePageInput) error {
	if c.service == nil {
		return errors.New("save command requires service")
	}
	if len(msg.Document) == 0 {
		return errors.New("save command requires a document")
	}
	ctx = widgets.ContextWithActivity(ctx, widgets.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	page, err := c.service.SavePage(ctx, widgets.SavePageRequest{
		ID:       msg.PageID,
		Slug:     msg.Slug,
		Title:    msg.Title,
		Document: msg.Document,
		Format:   msg.Format,
		Metadata: msg.Metadata,
	})
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = page
	}
	recordCommand(ctx, c.telemetry, "save", map[string]any{
		"page_id": page.ID,
		"format":  string(msg.Format),
	})
	return nil
}
