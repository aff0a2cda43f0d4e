package widgets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-widgets/pkg/activity"
	"github.com/google/uuid"
)

var (
	errMissingPageStore = errors.New("widgets: page store not configured")
	errMissingPageID    = errors.New("widgets: page id is required")
)

// Options configures the page Service. Collaborators are interfaces so
// applications can swap storage, transports and audit sinks.
type Options struct {
	Pages          PageStore
	Widget         *Widget
	Decoder        *Decoder
	RefreshHook    RefreshHook
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	// Now defaults to time.Now and stamps Page.UpdatedAt.
	Now func() time.Time
}

// RefreshHook notifies transports about page changes.
type RefreshHook interface {
	PageUpdated(ctx context.Context, event PageEvent) error
}

// PageEvent describes a page change.
type PageEvent struct {
	PageID string `json:"page_id"`
	Slug   string `json:"slug,omitempty"`
	Reason string `json:"reason"`
}

type noopRefreshHook struct{}

func (noopRefreshHook) PageUpdated(context.Context, PageEvent) error { return nil }

// Service stores widget pages and renders them through the dispatcher.
type Service struct {
	opts     Options
	activity *activity.Emitter
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Widget == nil {
		opts.Widget = New()
	}
	if opts.Decoder == nil {
		opts.Decoder = NewDecoder(
			WithDecoderRegistry(opts.Widget.Registry()),
			WithValidator(NewJSONSchemaValidator()),
		)
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// Widget exposes the dispatcher used for rendering.
func (s *Service) Widget() *Widget {
	return s.opts.Widget
}

// Decoder exposes the configuration decoder.
func (s *Service) Decoder() *Decoder {
	return s.opts.Decoder
}

// SavePageRequest carries a page either as a decoded config or as a raw
// document in one of the supported formats.
type SavePageRequest struct {
	ID       string
	Slug     string
	Title    string
	Config   *WidgetConfig
	Document []byte
	Format   Format
	Metadata map[string]any
}

// SavePage validates and stores a page, assigning a UUID when the id is empty.
func (s *Service) SavePage(ctx context.Context, req SavePageRequest) (Page, error) {
	store, err := s.pageStore()
	if err != nil {
		return Page{}, err
	}
	cfg, err := s.configFrom(req)
	if err != nil {
		return Page{}, err
	}
	if err := s.ValidateConfig(cfg); err != nil {
		return Page{}, err
	}
	page := Page{
		ID:        strings.TrimSpace(req.ID),
		Slug:      strings.TrimSpace(req.Slug),
		Title:     strings.TrimSpace(req.Title),
		Config:    cfg,
		Metadata:  cloneMetadata(req.Metadata),
		UpdatedAt: s.opts.Now().UTC(),
	}
	created := page.ID == ""
	if created {
		page.ID = uuid.NewString()
	} else if _, err := store.Get(ctx, page.ID); err != nil {
		if !errors.Is(err, ErrPageNotFound) {
			return Page{}, fmt.Errorf("widgets: load page %s: %w", page.ID, err)
		}
		created = true
	}
	saved, err := store.Save(ctx, page)
	if err != nil {
		return Page{}, fmt.Errorf("widgets: save page %s: %w", page.ID, err)
	}
	reason := "update"
	if created {
		reason = "create"
	}
	if err := s.opts.RefreshHook.PageUpdated(ctx, PageEvent{PageID: saved.ID, Slug: saved.Slug, Reason: reason}); err != nil {
		return Page{}, err
	}
	s.recordTelemetry(ctx, "widgets.page.save", map[string]any{
		"page_id": saved.ID,
		"type":    string(saved.Config.Type),
		"reason":  reason,
	})
	s.emitActivity(ctx, "widgets.page."+reason, saved.ID, map[string]any{
		"slug":    saved.Slug,
		"type":    string(saved.Config.Type),
		"widgets": countWidgets(saved.Config),
	})
	return saved, nil
}

func (s *Service) configFrom(req SavePageRequest) (WidgetConfig, error) {
	if req.Config != nil {
		return *req.Config, nil
	}
	if len(req.Document) == 0 {
		return WidgetConfig{}, ErrEmptyConfig
	}
	return s.opts.Decoder.DecodeBytes(req.Document, req.Format)
}

// ValidateConfig checks a config before it is stored. Unlike rendering, which
// drops unknown widgets, authoring rejects them so typos surface early.
func (s *Service) ValidateConfig(cfg WidgetConfig) error {
	reg := s.opts.Widget.Registry()
	var errs []error
	var walk func(cfg WidgetConfig, path string)
	walk = func(cfg WidgetConfig, path string) {
		if strings.TrimSpace(string(cfg.Type)) == "" {
			errs = append(errs, fmt.Errorf("widgets: %s: type is required", path))
			return
		}
		if cfg.Type == TypeGrid {
			grid, ok := gridPayload(cfg.Data)
			if !ok {
				errs = append(errs, fmt.Errorf("widgets: %s: grid data must hold a widgets list", path))
				return
			}
			for idx, entry := range grid.Widgets {
				entryPath := fmt.Sprintf("%s.data.widgets[%d]", path, idx)
				if entry.Type == TypeGrid || entry.IsBatch() {
					errs = append(errs, fmt.Errorf("widgets: %s: grid entries must be single widgets", entryPath))
					continue
				}
				walk(entry, entryPath)
			}
			return
		}
		if _, ok := reg.Descriptor(cfg.Type); !ok {
			msg := fmt.Sprintf("widgets: %s: unknown widget type %q", path, cfg.Type)
			if suggestion := suggestType(cfg.Type, reg.Types()); suggestion != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
			}
			errs = append(errs, errors.New(msg))
		}
	}
	walk(cfg, "config")
	return errors.Join(errs...)
}

// DeletePage removes a page.
func (s *Service) DeletePage(ctx context.Context, id string) error {
	store, err := s.pageStore()
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errMissingPageID
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.PageUpdated(ctx, PageEvent{PageID: id, Reason: "delete"}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "widgets.page.delete", map[string]any{"page_id": id})
	s.emitActivity(ctx, "widgets.page.delete", id, nil)
	return nil
}

// Page fetches a stored page.
func (s *Service) Page(ctx context.Context, id string) (Page, error) {
	store, err := s.pageStore()
	if err != nil {
		return Page{}, err
	}
	if strings.TrimSpace(id) == "" {
		return Page{}, errMissingPageID
	}
	return store.Get(ctx, id)
}

// Pages lists stored pages.
func (s *Service) Pages(ctx context.Context) ([]Page, error) {
	store, err := s.pageStore()
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

// RenderPage renders a stored page. A page that renders nothing yields a nil node.
func (s *Service) RenderPage(ctx context.Context, id string, opts ...RenderOption) (*Node, error) {
	page, err := s.Page(ctx, id)
	if err != nil {
		return nil, err
	}
	node := s.opts.Widget.Render(ctx, page.Config, opts...)
	s.recordTelemetry(ctx, "widgets.page.render", map[string]any{
		"page_id": page.ID,
		"widgets": len(node.Widgets()),
	})
	return node, nil
}

// Preview renders an unsaved config.
func (s *Service) Preview(ctx context.Context, cfg WidgetConfig, opts ...RenderOption) *Node {
	node := s.opts.Widget.Render(ctx, cfg, opts...)
	s.recordTelemetry(ctx, "widgets.preview", map[string]any{
		"type":    string(cfg.Type),
		"widgets": len(node.Widgets()),
	})
	return node
}

// NotifyPageUpdated exposes the refresh hook to commands and transports.
func (s *Service) NotifyPageUpdated(ctx context.Context, event PageEvent) error {
	if err := s.opts.RefreshHook.PageUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "widgets.page.event", map[string]any{
		"page_id": event.PageID,
		"reason":  event.Reason,
	})
	return nil
}

func (s *Service) pageStore() (PageStore, error) {
	if s.opts.Pages == nil {
		return nil, errMissingPageStore
	}
	return s.opts.Pages, nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) emitActivity(ctx context.Context, verb, pageID string, meta map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	actor := ActivityFromContext(ctx)
	err := s.activity.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    actor.ActorID,
		UserID:     actor.UserID,
		TenantID:   actor.TenantID,
		ObjectType: "widget_page",
		ObjectID:   pageID,
		Metadata:   meta,
		OccurredAt: s.opts.Now().UTC(),
	})
	if err != nil {
		s.recordTelemetry(ctx, "widgets.activity.error", map[string]any{
			"verb":  verb,
			"error": err.Error(),
		})
	}
}

// countWidgets reports how many widget slots a config describes.
func countWidgets(cfg WidgetConfig) int {
	switch {
	case cfg.Type == TypeGrid:
		grid, _ := gridPayload(cfg.Data)
		return len(grid.Widgets)
	case cfg.IsBatch():
		return len(cfg.Items)
	default:
		return 1
	}
}
