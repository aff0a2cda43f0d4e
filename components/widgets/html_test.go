package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRichText(t *testing.T) {
	out := sanitizeRichText(`<p class="lead">Hi <script>alert(1)</script><a href="https://x.test" onclick="evil()">link</a></p>`)
	assert.Contains(t, out, `<p class="lead">Hi `)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, `rel="nofollow"`)
	assert.Empty(t, sanitizeRichText("   "))
}

func TestSanitizeClassList(t *testing.T) {
	assert.Equal(t, "a b", sanitizeClassList("  a   b "))
	assert.Equal(t, "ok", sanitizeClassList(`ok x"><script`))
	assert.Empty(t, sanitizeClassList(""))
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "color: red; margin: 0", Style{"margin": "0", "color": "red", "": "x", "gap": " "}.String())
	assert.Empty(t, Style(nil).String())
}

func TestTextWidgetSanitizesBody(t *testing.T) {
	w := New(WithDiagnostics(NoopDiagnostics()))
	node := w.Render(t.Context(), WidgetConfig{Type: TypeText, Data: TextData{Body: `<img src=x onerror="x()"><b>bold</b>`, Align: "center"}})
	html := node.HTML()
	assert.Contains(t, html, "<b>bold</b>")
	assert.NotContains(t, html, "onerror")
	assert.Contains(t, html, "text-center")
}

func TestSafeURL(t *testing.T) {
	cases := map[string]string{
		"https://shop.test/p/1":  "https://shop.test/p/1",
		" /products/1 ":          "/products/1",
		"#reviews":               "#reviews",
		"mailto:team@shop.test":  "mailto:team@shop.test",
		"javascript:alert(1)":    "",
		"JavaScript:alert(1)":    "",
		"data:text/html;base64,": "",
		"vbscript:msgbox(1)":     "",
		"java\tscript:alert(1)":  "",
		"":                       "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, safeURL(raw), raw)
	}
}

func TestRenderersDropUnsafeURLs(t *testing.T) {
	w := New(WithDiagnostics(NoopDiagnostics()))
	configs := []WidgetConfig{
		{Type: TypeInfo, Data: InfoData{Title: "Docs", Link: &Link{Label: "Open", Href: "javascript:alert(1)"}}},
		{Type: TypeProduct, Data: ProductData{Name: "Lamp", Href: "javascript:alert(1)", Image: &Image{Src: "javascript:alert(1)"}}},
		{Type: TypeList, Data: ListData{Items: []ListItem{{Title: "Row", Href: "javascript:alert(1)"}}}},
	}
	for _, cfg := range configs {
		html := w.Render(t.Context(), cfg).HTML()
		assert.NotContains(t, html, "javascript:", cfg.Type)
	}

	info := w.Render(t.Context(), configs[0]).HTML()
	assert.Contains(t, info, ">Open</span>")

	safe := w.Render(t.Context(), WidgetConfig{Type: TypeInfo, Data: InfoData{Link: &Link{Label: "Open", Href: "/docs"}}}).HTML()
	assert.Contains(t, safe, `href="/docs"`)
}
