package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-widgets/components/widgets"
)

func TestColumnsPrint(t *testing.T) {
	tests := []struct {
		name string
		cmd  columnsCmd
		want string
	}{
		{name: "auto four", cmd: columnsCmd{Count: 4}, want: "mobile=1 tablet=2 desktop=4 spacing=md align=stretch\n"},
		{name: "static base", cmd: columnsCmd{Count: 9, NoAuto: true}, want: "mobile=1 tablet=2 desktop=3 spacing=md align=stretch\n"},
		{name: "explicit desktop", cmd: columnsCmd{Count: 2, Desktop: 20, Spacing: "lg", Align: "center"}, want: "mobile=1 tablet=2 desktop=12 spacing=lg align=center\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, tt.cmd.print(&out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestColumnsRejectsNegativeCount(t *testing.T) {
	cmd := columnsCmd{Count: -1}
	assert.Error(t, cmd.print(&bytes.Buffer{}))
}

func TestTypesPrint(t *testing.T) {
	var out bytes.Buffer
	cmd := typesCmd{}
	require.NoError(t, cmd.print(&out, widgets.NewRegistry()))
	assert.Contains(t, out.String(), "TYPE")
	assert.Contains(t, out.String(), "MetricWidget")
	assert.Contains(t, out.String(), "gridCarousel")

	out.Reset()
	cmd.JSON = true
	require.NoError(t, cmd.print(&out, widgets.NewRegistry()))
	assert.Contains(t, out.String(), `"component": "ChartWidget"`)
}

func TestValidateCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte("type: metric\ndata:\n  label: Users\n  value: 10\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"type":"metirc","data":{}}`), 0o644))

	var out bytes.Buffer
	cmd := validateCmd{Config: []string{good, bad}}
	err := cmd.check(&out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "✓ "+good)
	assert.Contains(t, out.String(), "✗ "+bad)
	assert.Contains(t, out.String(), `did you mean "metric"`)
}

func TestScaffoldDocumentsDecode(t *testing.T) {
	decoder := widgets.NewDecoder()
	formats := []widgets.Format{widgets.FormatJSON, widgets.FormatYAML, widgets.FormatTOML}
	for _, typ := range widgets.NewRegistry().Types() {
		for _, format := range formats {
			data, err := scaffoldDocument(typ, 0, format)
			require.NoError(t, err, "%s/%s", typ, format)
			cfg, err := decoder.DecodeBytes(data, format)
			require.NoError(t, err, "%s/%s", typ, format)
			assert.Equal(t, typ, cfg.Type)
			require.NotNil(t, cfg.Data)
			assert.Equal(t, typ, cfg.Data.WidgetType())
		}
	}
}

func TestScaffoldBatch(t *testing.T) {
	data, err := scaffoldDocument(widgets.TypeProduct, 3, widgets.FormatYAML)
	require.NoError(t, err)
	cfg, err := widgets.NewDecoder().DecodeBytes(data, widgets.FormatYAML)
	require.NoError(t, err)
	assert.True(t, cfg.IsBatch())
	assert.Len(t, cfg.Items, 3)
}

func TestScaffoldRunWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "hero.json")
	cmd := scaffoldCmd{Type: "contentBlock", Format: "json", Out: out}
	require.NoError(t, cmd.Run())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"type": "contentBlock"`))

	again := scaffoldCmd{Type: "contentBlock", Format: "json", Out: out}
	assert.Error(t, again.Run())
	again.Overwrite = true
	assert.NoError(t, again.Run())
}

func TestScaffoldUnknownType(t *testing.T) {
	cmd := scaffoldCmd{Type: "banner", Format: "json", Out: filepath.Join(t.TempDir(), "x.json")}
	assert.Error(t, cmd.Run())
}

func TestLoadServerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":7070"
base_path: /pages
store:
  driver: SQLite
  dsn: file::memory:
seed:
  defaults: false
theme:
  tokens:
    color-primary: "#0044ff"
  variants:
    dark:
      color-primary: "#88aaff"
`), 0o644))
	t.Setenv("WIDGETS_ADDR", ":9090")

	cfg, err := loadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/pages", cfg.BasePath)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.False(t, cfg.Seed.Defaults)
	assert.Equal(t, "#0044ff", cfg.Theme.Tokens["color-primary"])
	assert.Equal(t, "#88aaff", cfg.Theme.Variants["dark"]["color-primary"])
}

func TestLoadServerConfigRejectsDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: postgres\n"), 0o644))

	_, err := loadServerConfig(path)
	assert.Error(t, err)
}

func TestThemeConfigSelector(t *testing.T) {
	assert.Nil(t, themeConfig{}.selector())

	selector := themeConfig{
		Tokens:   map[string]string{"color.primary": "#000"},
		Variants: map[string]map[string]string{"dark": {"color.primary": "#fff"}},
	}.selector()
	require.NotNil(t, selector)

	selection, err := selector.Select("modern", "dark")
	require.NoError(t, err)
	vars := widgets.CSSVariables(selection)
	assert.Equal(t, "#fff", vars["--color-primary"])
}
