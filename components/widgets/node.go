package widgets

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
)

// ComponentGrid names the grid container component.
const ComponentGrid = "IntelligentGrid"

// NodeKind distinguishes rendered tree elements.
type NodeKind string

const (
	KindWidget NodeKind = "widget"
	KindGrid   NodeKind = "grid"
	KindCell   NodeKind = "cell"
)

// Style is an inline style map. Output is sorted by property name.
type Style map[string]string

// String renders the style as a CSS declaration list.
func (s Style) String() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for key := range s {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(s[key]) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, strings.TrimSpace(key)+": "+strings.TrimSpace(s[key]))
	}
	return strings.Join(parts, "; ")
}

func (s Style) merge(other Style) Style {
	if len(s) == 0 && len(other) == 0 {
		return nil
	}
	out := make(Style, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Node is an element of the rendered widget tree.
type Node struct {
	Kind      NodeKind    `json:"kind"`
	Component string      `json:"component,omitempty"`
	Type      WidgetType  `json:"type,omitempty"`
	Key       string      `json:"key,omitempty"`
	Hints     Hints       `json:"hints"`
	ClassName string      `json:"className,omitempty"`
	Style     Style       `json:"style,omitempty"`
	Layout    *GridLayout `json:"layout,omitempty"`
	Markup    string      `json:"markup,omitempty"`
	Children  []*Node     `json:"children,omitempty"`
}

// Widgets returns the widget nodes under n in document order.
func (n *Node) Widgets() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(node *Node) {
		if node.Kind == KindWidget {
			out = append(out, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// HTML renders the tree to a string. A nil node renders as empty.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	_ = n.WriteHTML(&buf)
	return buf.String()
}

// WriteHTML writes the tree markup to w.
func (n *Node) WriteHTML(w io.Writer) error {
	if n == nil {
		return nil
	}
	var buf bytes.Buffer
	n.write(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}

func (n *Node) write(buf *bytes.Buffer) {
	switch n.Kind {
	case KindWidget:
		buf.WriteString(n.Markup)
	case KindGrid:
		n.writeGrid(buf)
	case KindCell:
		buf.WriteString(`<div class="widget-grid__cell" data-key="`)
		buf.WriteString(html.EscapeString(n.Key))
		buf.WriteString(`">`)
		for _, child := range n.Children {
			child.write(buf)
		}
		buf.WriteString(`</div>`)
	}
}

func (n *Node) writeGrid(buf *bytes.Buffer) {
	layout := GridLayout{Columns: AutoColumns(len(n.Children)), Spacing: SpacingMedium, Align: AlignStretch}
	if n.Layout != nil {
		layout = *n.Layout
	}
	classes := []string{
		"widget-grid",
		"grid",
		fmt.Sprintf("grid-cols-%d", layout.Mobile),
		fmt.Sprintf("md:grid-cols-%d", layout.Tablet),
		fmt.Sprintf("lg:grid-cols-%d", layout.Desktop),
		gapClass(layout.Spacing),
		"items-" + string(layout.Align),
	}
	if extra := sanitizeClassList(n.ClassName); extra != "" {
		classes = append(classes, extra)
	}
	buf.WriteString(`<div class="`)
	buf.WriteString(html.EscapeString(strings.Join(classes, " ")))
	buf.WriteString(`" data-component="`)
	buf.WriteString(ComponentGrid)
	buf.WriteString(`" data-columns="`)
	fmt.Fprintf(buf, "%d/%d/%d", layout.Mobile, layout.Tablet, layout.Desktop)
	buf.WriteString(`"`)
	if style := n.Style.String(); style != "" {
		buf.WriteString(` style="`)
		buf.WriteString(html.EscapeString(style))
		buf.WriteString(`"`)
	}
	buf.WriteString(`>`)
	for _, child := range n.Children {
		child.write(buf)
	}
	buf.WriteString(`</div>`)
}

func gapClass(spacing Spacing) string {
	switch spacing {
	case SpacingNone:
		return "gap-0"
	case SpacingSmall:
		return "gap-2"
	case SpacingLarge:
		return "gap-6"
	default:
		return "gap-4"
	}
}
