package widgets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestPayload = `
version: "1"
name: marketing
pages:
  - id: home
    slug: home
    title: Home
    metadata:
      owner: marketing
    config:
      type: grid
      grid:
        desktop: 2
      data:
        widgets:
          - type: header
            data:
              title: Welcome
          - type: testimonial
            data:
              quote: Great
              author: Sam
              showRating: false
  - id: promos
    config:
      type: product
      data:
        - name: Mug
          price: 12
        - name: Cap
`

func TestDecodeManifest(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(manifestPayload))
	require.NoError(t, err)
	assert.Equal(t, "marketing", doc.Name)
	require.Len(t, doc.Pages, 2)

	requests, err := doc.Requests(NewDecoder())
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "home", requests[0].ID)
	assert.Equal(t, "marketing", requests[0].Metadata["owner"])
	grid := requests[0].Config.Data.(GridData)
	require.Len(t, grid.Widgets, 2)
	assert.False(t, grid.Widgets[1].Data.(TestimonialData).ResolveSettings().ShowRating)
	assert.Len(t, requests[1].Config.Items, 2)
}

func TestDecodeManifestErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"unknown key":  "version: \"1\"\nwidgets: []\n",
		"bad version":  "version: \"2\"\npages: []\n",
		"missing id":   "pages:\n  - config: {type: text}\n",
		"duplicate id": "pages:\n  - id: a\n    config: {type: text}\n  - id: a\n    config: {type: text}\n",
		"no config":    "pages:\n  - id: a\n",
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeManifest(strings.NewReader(payload))
			assert.Error(t, err)
		})
	}
}

func TestManifestRequestsReportBadConfigs(t *testing.T) {
	doc := &PageManifest{Version: ManifestVersion, Pages: []ManifestPage{
		{ID: "a", Config: map[string]any{"type": "text", "data": map[string]any{"nope": 1}}},
		{ID: "b", Config: map[string]any{"data": map[string]any{}}},
	}}
	_, err := doc.Requests(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest page a")
	assert.Contains(t, err.Error(), "manifest page b")
}

func TestReadManifestAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifestPayload), 0o644))

	doc, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	hook := &collectingHook{}
	service := newTestService(Options{RefreshHook: hook})
	require.NoError(t, service.ApplyManifest(context.Background(), doc))
	pages, err := service.Pages(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "home", pages[0].ID)
	assert.Len(t, hook.events, 2)

	assert.Error(t, service.ApplyManifest(context.Background(), nil))
	_, err = ReadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeedPages(t *testing.T) {
	service := newTestService(Options{})
	require.NoError(t, SeedPages(context.Background(), service))

	pages, err := service.Pages(context.Background())
	require.NoError(t, err)
	ids := []string{}
	for _, page := range pages {
		ids = append(ids, page.ID)
		assert.NoError(t, service.ValidateConfig(page.Config))
	}
	assert.Equal(t, []string{"overview", "storefront"}, ids)

	err = SeedPages(context.Background(), service, SavePageRequest{ID: "bad", Config: &WidgetConfig{Type: "nope"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed page bad")
	assert.Error(t, SeedPages(context.Background(), nil))
}
