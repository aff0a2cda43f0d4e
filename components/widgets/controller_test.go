package widgets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func seededService(t *testing.T) *Service {
	t.Helper()
	service := newTestService(Options{})
	require.NoError(t, SeedPages(context.Background(), service))
	return service
}

func TestControllerRenderTemplate(t *testing.T) {
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{
		Service:    seededService(t),
		Renderer:   renderer,
		RefreshURL: "/widgets/events",
	})

	var buf bytes.Buffer
	if err := controller.RenderTemplate(context.Background(), "overview", &buf); err != nil {
		t.Fatalf("RenderTemplate returned error: %v", err)
	}
	if renderer.lastTemplate != DefaultPageTemplate {
		t.Fatalf("expected page template to render, got %s", renderer.lastTemplate)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected rendered output")
	}
	payload := renderer.lastPayload
	assert.Equal(t, "Overview", payload["title"])
	assert.Equal(t, 5, payload["widgets"])
	assert.Equal(t, DefaultChartAssetsHost, payload["chart_assets"])
	assert.Equal(t, "/widgets/events", payload["refresh_url"])
	assert.Contains(t, payload["body"], "IntelligentGrid")
	page := payload["page"].(map[string]any)
	assert.Equal(t, "overview", page["id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", page["updated_at"])
}

func TestControllerOmitsChartAssetsWithoutCharts(t *testing.T) {
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{Service: seededService(t), Renderer: renderer})
	require.NoError(t, controller.RenderTemplate(context.Background(), "storefront", io.Discard))
	_, ok := renderer.lastPayload["chart_assets"]
	assert.False(t, ok)
}

func TestControllerErrors(t *testing.T) {
	assert.Error(t, NewController(ControllerOptions{Renderer: &stubRenderer{}}).RenderTemplate(context.Background(), "x", io.Discard))
	assert.Error(t, NewController(ControllerOptions{Service: seededService(t)}).RenderTemplate(context.Background(), "overview", io.Discard))

	controller := NewController(ControllerOptions{Service: seededService(t), Renderer: &stubRenderer{}})
	err := controller.RenderTemplate(context.Background(), "missing", io.Discard)
	assert.True(t, errors.Is(err, ErrPageNotFound))

	failing := NewController(ControllerOptions{Service: seededService(t), Renderer: &stubRenderer{err: errors.New("tpl")}})
	assert.EqualError(t, failing.RenderTemplate(context.Background(), "overview", io.Discard), "tpl")
}

func TestEmbeddedTemplateRendersPage(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller := NewController(ControllerOptions{
		Service:    seededService(t),
		Renderer:   renderer,
		RefreshURL: "/widgets/events",
	})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), "storefront", &buf))
	html := buf.String()
	assert.Contains(t, html, "<title>Storefront</title>")
	assert.Contains(t, html, `data-component="ProductWidget"`)
	assert.Contains(t, html, "Canvas tote")
	assert.Contains(t, html, `new EventSource("/widgets/events")`)
	assert.False(t, strings.Contains(html, "echarts.min.js"))
}
