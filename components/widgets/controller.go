package widgets

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

// PageRenderer is the slice of Service the controller needs.
type PageRenderer interface {
	Page(ctx context.Context, id string) (Page, error)
	RenderPage(ctx context.Context, id string, opts ...RenderOption) (*Node, error)
}

// ControllerOptions configures the HTML controller.
type ControllerOptions struct {
	Service  PageRenderer
	Renderer TemplateRenderer
	Template string
	// ChartAssetsHost is exposed to templates so they can load echarts.
	ChartAssetsHost string
	// RefreshURL points templates at the SSE endpoint, when one is mounted.
	RefreshURL string
}

// Controller renders stored pages into the page template.
type Controller struct {
	opts ControllerOptions
}

// NewController wires a page service and renderer.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = DefaultPageTemplate
	}
	if opts.ChartAssetsHost == "" {
		opts.ChartAssetsHost = DefaultChartAssetsHost
	}
	return &Controller{opts: opts}
}

// Render returns the page and its rendered widget tree.
func (c *Controller) Render(ctx context.Context, pageID string, opts ...RenderOption) (Page, *Node, error) {
	if c.opts.Service == nil {
		return Page{}, nil, errors.New("widgets: controller service not configured")
	}
	page, err := c.opts.Service.Page(ctx, pageID)
	if err != nil {
		return Page{}, nil, err
	}
	node, err := c.opts.Service.RenderPage(ctx, pageID, opts...)
	if err != nil {
		return Page{}, nil, err
	}
	return page, node, nil
}

// RenderTemplate renders the page template to out.
func (c *Controller) RenderTemplate(ctx context.Context, pageID string, out io.Writer, opts ...RenderOption) error {
	if c.opts.Renderer == nil {
		return errors.New("widgets: template renderer not configured")
	}
	page, node, err := c.Render(ctx, pageID, opts...)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, c.templateData(page, node), out)
	return err
}

func (c *Controller) templateData(page Page, node *Node) map[string]any {
	title := strings.TrimSpace(page.Title)
	if title == "" {
		title = page.ID
	}
	updated := ""
	if !page.UpdatedAt.IsZero() {
		updated = page.UpdatedAt.UTC().Format(time.RFC3339)
	}
	data := map[string]any{
		"title": title,
		"body":  node.HTML(),
		"page": map[string]any{
			"id":         page.ID,
			"slug":       page.Slug,
			"title":      title,
			"updated_at": updated,
			"metadata":   page.Metadata,
		},
		"widgets":     len(node.Widgets()),
		"refresh_url": c.opts.RefreshURL,
	}
	if hasCharts(node) {
		data["chart_assets"] = c.opts.ChartAssetsHost
	}
	return data
}

func hasCharts(node *Node) bool {
	for _, w := range node.Widgets() {
		if w.Type == TypeChart {
			return true
		}
	}
	return false
}
