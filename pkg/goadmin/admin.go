package goadmin

import (
	"context"
	"errors"
	"strings"

	widgetspkg "github.com/goliatone/go-widgets/pkg/widgets"
)

// MenuBuilder ensures page entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures page link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the widget page service and feature flags into an admin shell.
type Config struct {
	EnablePages bool
	MenuCode    string
	MenuBuilder MenuBuilder
	Service     *widgetspkg.Service
	RoutePrefix string
	Icon        string
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed page menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnablePages && cfg.Service == nil {
		return nil, errors.New("goadmin: widget service is required when pages are enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.RoutePrefix == "" {
		cfg.RoutePrefix = "admin.pages"
	}
	if cfg.Icon == "" {
		cfg.Icon = "layout"
	}
	return &Admin{cfg: cfg}, nil
}

// Pages exposes the configured service when pages are enabled.
func (a *Admin) Pages() *widgetspkg.Service {
	if !a.cfg.EnablePages {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap adds one menu entry per stored page, in page order.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnablePages || a.cfg.MenuBuilder == nil {
		return nil
	}
	pages, err := a.cfg.Service.Pages(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for idx, page := range pages {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.menuItem(page.ID, page.Slug, page.Title, idx)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *Admin) menuItem(id, slug, title string, position int) MenuItem {
	key := strings.TrimSpace(slug)
	if key == "" {
		key = id
	}
	label := strings.TrimSpace(title)
	if label == "" {
		label = key
	}
	return MenuItem{
		Label:    label,
		Route:    a.cfg.RoutePrefix + "." + key,
		Icon:     a.cfg.Icon,
		Position: position,
	}
}
