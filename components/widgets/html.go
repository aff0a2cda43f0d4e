package widgets

import (
	"bytes"
	"html"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// sanitizeRichText strips unsafe markup from caller supplied HTML bodies.
func sanitizeRichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("p", "span", "div", "ul", "ol", "li")
		policy.RequireNoFollowOnLinks(true)
		richTextPolicy = policy
	})
	return strings.TrimSpace(richTextPolicy.Sanitize(trimmed))
}

// safeURLSchemes mirrors the schemes the rich text policy lets through.
var safeURLSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// safeURL returns raw when it is relative or uses an allowed scheme, and ""
// otherwise. markup.open skips empty attribute values, so unsafe links and
// sources are dropped instead of rendered.
func safeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	if u.Scheme != "" && !safeURLSchemes[u.Scheme] {
		return ""
	}
	return trimmed
}

func sanitizeClassList(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	out := fields[:0]
	for _, field := range fields {
		if strings.ContainsAny(field, `"'<>`) {
			continue
		}
		out = append(out, field)
	}
	return strings.Join(out, " ")
}

// markup writes escaped HTML into a buffer.
type markup struct {
	buf *bytes.Buffer
}

// open writes a start tag. attrs are name/value pairs; empty values are skipped.
func (m markup) open(tag, class string, attrs ...string) {
	m.buf.WriteString("<")
	m.buf.WriteString(tag)
	if class = strings.TrimSpace(class); class != "" {
		m.attr("class", class)
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		m.attr(attrs[i], attrs[i+1])
	}
	m.buf.WriteString(">")
}

func (m markup) attr(name, value string) {
	m.buf.WriteString(" ")
	m.buf.WriteString(name)
	m.buf.WriteString(`="`)
	m.buf.WriteString(html.EscapeString(value))
	m.buf.WriteString(`"`)
}

func (m markup) close(tag string) {
	m.buf.WriteString("</")
	m.buf.WriteString(tag)
	m.buf.WriteString(">")
}

func (m markup) text(s string) {
	m.buf.WriteString(html.EscapeString(s))
}

func (m markup) raw(s string) {
	m.buf.WriteString(s)
}

// element writes tag with escaped text content. Empty text omits the element.
func (m markup) element(tag, class, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.open(tag, class)
	m.text(text)
	m.close(tag)
}

func (m markup) link(class string, link *Link) {
	if link == nil || strings.TrimSpace(link.Href) == "" {
		return
	}
	href := safeURL(link.Href)
	label := link.Label
	if strings.TrimSpace(label) == "" {
		label = href
	}
	if href == "" {
		m.element("span", class, label)
		return
	}
	m.open("a", class, "href", href)
	m.text(label)
	m.close("a")
}

func (m markup) image(class string, img *Image) {
	if img == nil {
		return
	}
	src := safeURL(img.Src)
	if src == "" {
		return
	}
	m.buf.WriteString("<img")
	if class != "" {
		m.attr("class", class)
	}
	m.attr("src", src)
	m.attr("alt", img.Alt)
	m.buf.WriteString(` loading="lazy">`)
}

// openRoot writes the shared root element every renderer starts with.
func openRoot(m markup, in RenderInput, extra ...string) {
	classes := []string{
		"widget",
		"widget--" + in.Block,
		"theme-" + string(in.Theme),
		"variant-" + string(in.Variant),
		"size-" + string(in.Size),
	}
	classes = append(classes, extra...)
	if custom := sanitizeClassList(in.ClassName); custom != "" {
		classes = append(classes, custom)
	}
	m.open("div", strings.Join(classes, " "),
		"data-component", in.Component,
		"data-widget-type", string(in.Type),
		"style", in.Style.String(),
	)
}
