package widgets_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	core "github.com/goliatone/go-widgets/components/widgets"
	"github.com/goliatone/go-widgets/pkg/widgets"
)

func TestRenderHTML(t *testing.T) {
	doc := []byte("type: metric\ndata:\n  - {label: A, value: 10}\n  - {label: B, value: 20}\n")
	var buf bytes.Buffer
	if err := widgets.RenderHTML(context.Background(), doc, core.FormatYAML, &buf); err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	out := buf.String()
	if strings.Index(out, ">A<") > strings.Index(out, ">B<") {
		t.Fatalf("expected A before B, got %s", out)
	}
	if strings.Count(out, `data-component="MetricWidget"`) != 2 {
		t.Fatalf("expected two metric widgets, got %s", out)
	}
}

func TestRenderHTMLRejectsEmptyDocuments(t *testing.T) {
	var buf bytes.Buffer
	if err := widgets.RenderHTML(context.Background(), nil, core.FormatJSON, &buf); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestRenderHTMLSkipsMalformedGridEntries(t *testing.T) {
	doc := []byte(`{"type":"grid","data":{"widgets":[
		{"type":"metric","data":{"label":"A","value":1,"typo":true}},
		{"type":"metric","data":{"label":"B","value":2}}
	]}}`)
	var buf bytes.Buffer
	if err := widgets.RenderHTML(context.Background(), doc, core.FormatJSON, &buf); err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	out := buf.String()
	if strings.Count(out, `data-component="MetricWidget"`) != 1 || !strings.Contains(out, ">B<") {
		t.Fatalf("expected only the valid sibling to render, got %s", out)
	}
}
