package widgets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Widget turns WidgetConfig values into rendered node trees.
type Widget struct {
	registry    *Registry
	diagnostics Diagnostics
	themes      *themeTokens
}

// Option configures a Widget.
type Option func(*Widget)

// WithRegistry swaps the renderer dispatch table.
func WithRegistry(reg *Registry) Option {
	return func(w *Widget) {
		if reg != nil {
			w.registry = reg
		}
	}
}

// WithDiagnostics sets the sink for unknown types and renderer failures.
func WithDiagnostics(d Diagnostics) Option {
	return func(w *Widget) {
		w.diagnostics = normalizeDiagnostics(d)
	}
}

// WithThemeSelector enables go-theme tokens as CSS variables on widget roots.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(w *Widget) {
		w.themes = newThemeTokens(selector)
	}
}

// New builds a dispatcher with the built-in registry and slog diagnostics.
func New(opts ...Option) *Widget {
	w := &Widget{
		diagnostics: LogDiagnostics{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	if w.registry == nil {
		w.registry = NewRegistry()
	}
	return w
}

// Registry exposes the dispatch table.
func (w *Widget) Registry() *Registry {
	return w.registry
}

type renderOptions struct {
	className string
	style     Style
}

// RenderOption customizes the outermost rendered element.
type RenderOption func(*renderOptions)

// WithClassName appends classes to the outermost element.
func WithClassName(className string) RenderOption {
	return func(o *renderOptions) {
		o.className = className
	}
}

// WithStyle sets inline styles on the outermost element.
func WithStyle(style Style) RenderOption {
	return func(o *renderOptions) {
		o.style = style
	}
}

// Render dispatches cfg. Grid configs and array data render inside an
// IntelligentGrid; anything else goes through single dispatch. Failures are
// reported to the diagnostics sink and leave an empty slot; Render never
// panics and returns nil when nothing can be rendered.
func (w *Widget) Render(ctx context.Context, cfg WidgetConfig, opts ...RenderOption) *Node {
	if ctx == nil {
		ctx = context.Background()
	}
	options := renderOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	switch {
	case cfg.Type == TypeGrid:
		return w.renderGrid(ctx, cfg, options)
	case cfg.IsBatch():
		return w.renderBatch(ctx, cfg, options)
	default:
		return w.renderSingle(ctx, cfg, -1, options)
	}
}

// RenderHTML renders cfg and writes the markup to out.
func (w *Widget) RenderHTML(ctx context.Context, cfg WidgetConfig, out io.Writer, opts ...RenderOption) error {
	if out == nil {
		return errors.New("widgets: output writer is nil")
	}
	return w.Render(ctx, cfg, opts...).WriteHTML(out)
}

func (w *Widget) renderGrid(ctx context.Context, cfg WidgetConfig, options renderOptions) *Node {
	data, ok := gridPayload(cfg.Data)
	if !ok {
		w.report(ctx, Diagnostic{
			Code:       CodeInvalidGrid,
			WidgetType: TypeGrid,
			Index:      -1,
			Message:    fmt.Sprintf("grid data must hold a widgets list, got %T", cfg.Data),
		})
	}
	node := IntelligentGrid(data.Widgets, cfg.Grid, func(entry WidgetConfig, idx int) *Node {
		if entry.Type == TypeGrid || entry.IsBatch() {
			w.report(ctx, Diagnostic{
				Code:       CodeInvalidGrid,
				WidgetType: entry.Type,
				Index:      idx,
				Message:    "grid entries must be single widgets",
			})
			return nil
		}
		return w.renderSingle(ctx, entry, idx, renderOptions{})
	})
	node.ClassName = options.className
	node.Style = options.style
	return node
}

func (w *Widget) renderBatch(ctx context.Context, cfg WidgetConfig, options renderOptions) *Node {
	desc, ok := w.registry.Descriptor(cfg.Type)
	if !ok {
		w.reportUnknown(ctx, cfg.Type, -1)
		return nil
	}
	node := IntelligentGrid(cfg.Items, cfg.Grid, func(item Payload, idx int) *Node {
		entry := cfg
		entry.Data = item
		entry.Items = nil
		return w.renderDescriptor(ctx, desc, entry, idx, renderOptions{})
	})
	node.ClassName = options.className
	node.Style = options.style
	return node
}

func (w *Widget) renderSingle(ctx context.Context, cfg WidgetConfig, index int, options renderOptions) *Node {
	desc, ok := w.registry.Descriptor(cfg.Type)
	if !ok {
		w.reportUnknown(ctx, cfg.Type, index)
		return nil
	}
	return w.renderDescriptor(ctx, desc, cfg, index, options)
}

func (w *Widget) renderDescriptor(ctx context.Context, desc Descriptor, cfg WidgetConfig, index int, options renderOptions) (node *Node) {
	hints := cfg.hints()
	data := cfg.Data
	if isNilPayload(data) {
		data = derefPayload(desc.NewPayload())
	}
	data, err := resolveUnknown(desc, data)
	if err != nil {
		w.report(ctx, Diagnostic{
			Code:       CodeInvalidInput,
			WidgetType: desc.Type,
			Index:      index,
			Message:    fmt.Sprintf("%s payload does not match its contract", desc.Component),
			Err:        err,
		})
		return nil
	}
	style := options.style
	if w.themes != nil {
		vars, err := w.themes.style(hints)
		if err != nil {
			w.report(ctx, Diagnostic{
				Code:       CodeThemeUnavailable,
				WidgetType: cfg.Type,
				Index:      index,
				Message:    "theme tokens unavailable",
				Err:        err,
			})
		}
		style = vars.merge(style)
	}
	in := RenderInput{
		Hints:     hints,
		Type:      desc.Type,
		Component: desc.Component,
		Block:     desc.Block,
		Data:      data,
		Key:       slotKey(data, index),
		ClassName: options.className,
		Style:     style,
	}

	defer func() {
		if rec := recover(); rec != nil {
			w.report(ctx, Diagnostic{
				Code:       CodeRenderPanic,
				WidgetType: desc.Type,
				Index:      index,
				Message:    fmt.Sprintf("%s panicked", desc.Component),
				Err:        fmt.Errorf("widgets: panic: %v", rec),
			})
			node = nil
		}
	}()

	var buf bytes.Buffer
	if err := desc.Render(&buf, in); err != nil {
		w.report(ctx, Diagnostic{
			Code:       CodeRenderError,
			WidgetType: desc.Type,
			Index:      index,
			Message:    fmt.Sprintf("%s failed to render", desc.Component),
			Err:        err,
		})
		return nil
	}
	return &Node{
		Kind:      KindWidget,
		Component: desc.Component,
		Type:      desc.Type,
		Key:       itemID(data),
		Hints:     hints,
		ClassName: options.className,
		Style:     style,
		Markup:    buf.String(),
	}
}

func slotKey(data Payload, index int) string {
	if index < 0 {
		return itemID(data)
	}
	return ItemKey(data, index)
}

func (w *Widget) reportUnknown(ctx context.Context, t WidgetType, index int) {
	w.report(ctx, Diagnostic{
		Code:       CodeUnknownType,
		WidgetType: t,
		Index:      index,
		Message:    fmt.Sprintf("unknown widget type %q", t),
		Suggestion: suggestType(t, w.registry.Types()),
	})
}

func (w *Widget) report(ctx context.Context, d Diagnostic) {
	normalizeDiagnostics(w.diagnostics).Report(ctx, d)
}

func gridPayload(p Payload) (GridData, bool) {
	switch v := p.(type) {
	case GridData:
		return v, true
	case *GridData:
		if v != nil {
			return *v, true
		}
	}
	return GridData{}, false
}

func isNilPayload(p Payload) bool {
	if p == nil {
		return true
	}
	rv := reflect.ValueOf(p)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// derefPayload returns the value form of pointer payloads produced by
// Descriptor.NewPayload so renderers and settings helpers see one shape.
func derefPayload(p Payload) Payload {
	if isNilPayload(p) {
		return p
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Pointer {
		return p
	}
	if value, ok := rv.Elem().Interface().(Payload); ok {
		return value
	}
	return p
}
