// Package widgets is the public entry point for applications embedding the
// widget dispatcher and page service.
package widgets

import (
	"context"
	"io"

	core "github.com/goliatone/go-widgets/components/widgets"
)

// Service exposes the underlying components/widgets.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Widget is the dispatcher.
type Widget = core.Widget

// Config is the root widget configuration.
type Config = core.WidgetConfig

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// New builds a dispatcher with the built-in renderers.
func New(opts ...core.Option) *Widget {
	return core.New(opts...)
}

// RenderHTML decodes a document and writes its markup using a default
// dispatcher. Malformed grid entries are logged and skipped instead of
// failing the whole document.
func RenderHTML(ctx context.Context, document []byte, format core.Format, out io.Writer) error {
	diagnostics := core.LogDiagnostics{}
	cfg, err := core.NewDecoder(core.WithLenientGrids(diagnostics)).DecodeBytes(document, format)
	if err != nil {
		return err
	}
	return core.New(core.WithDiagnostics(diagnostics)).RenderHTML(ctx, cfg, out)
}
