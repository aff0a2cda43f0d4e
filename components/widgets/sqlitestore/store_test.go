package sqlitestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-widgets/components/widgets"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	updated := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	page := widgets.Page{
		ID:    "home",
		Slug:  "home",
		Title: "Home",
		Config: widgets.WidgetConfig{
			Type:    widgets.TypeMetric,
			Variant: widgets.VariantSuccess,
			Data:    widgets.MetricData{Label: "Users", Value: "42"},
		},
		Metadata:  map[string]any{"owner": "ops"},
		UpdatedAt: updated,
	}
	_, err := store.Save(ctx, page)
	require.NoError(t, err)

	got, err := store.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Title)
	assert.Equal(t, widgets.TypeMetric, got.Config.Type)
	assert.Equal(t, widgets.VariantSuccess, got.Config.Variant)
	assert.Equal(t, "ops", got.Metadata["owner"])
	assert.True(t, got.UpdatedAt.Equal(updated))

	metric, ok := got.Config.Data.(widgets.MetricData)
	require.True(t, ok, "expected MetricData, got %T", got.Config.Data)
	assert.Equal(t, "Users", metric.Label)
	assert.Equal(t, widgets.Scalar("42"), metric.Value)
}

func TestStoreUpsertAndList(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	for _, id := range []string{"b", "a"} {
		_, err := store.Save(ctx, widgets.Page{ID: id, Config: widgets.WidgetConfig{Type: widgets.TypeText, Data: widgets.TextData{Body: id}}})
		require.NoError(t, err)
	}
	_, err := store.Save(ctx, widgets.Page{ID: "a", Title: "Updated", Config: widgets.WidgetConfig{Type: widgets.TypeText, Data: widgets.TextData{Body: "a"}}})
	require.NoError(t, err)

	pages, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "a", pages[0].ID)
	assert.Equal(t, "Updated", pages[0].Title)
	assert.Equal(t, "b", pages[1].ID)
}

func TestStoreDeleteMissing(t *testing.T) {
	store := newStore(t)
	err := store.Delete(context.Background(), "nope")
	assert.True(t, errors.Is(err, widgets.ErrPageNotFound))
	_, err = store.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, widgets.ErrPageNotFound))
}

func TestStoreKeepsGridConfigs(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	cfg := widgets.WidgetConfig{
		Type: widgets.TypeGrid,
		Data: widgets.GridData{Widgets: []widgets.WidgetConfig{
			{Type: widgets.TypeHeader, Data: widgets.HeaderData{Title: "Hi"}},
			{Type: widgets.TypeMetric, Data: widgets.MetricData{Label: "Users", Value: "1"}},
		}},
		Grid: &widgets.GridConfig{Desktop: 2},
	}
	_, err := store.Save(ctx, widgets.Page{ID: "grid", Config: cfg})
	require.NoError(t, err)

	got, err := store.Get(ctx, "grid")
	require.NoError(t, err)
	require.Equal(t, widgets.TypeGrid, got.Config.Type)
	require.NotNil(t, got.Config.Grid)
	assert.Equal(t, 2, got.Config.Grid.Desktop)

	node := widgets.New(widgets.WithDiagnostics(widgets.NoopDiagnostics())).Render(ctx, got.Config)
	assert.Len(t, node.Widgets(), 2)
}
