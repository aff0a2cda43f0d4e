package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-widgets/components/widgets"
)

type renderCmd struct {
	Config string `required:"" type:"existingfile" help:"Configuration file (JSON, YAML or TOML)."`
	Format string `help:"Override the format inferred from the file extension."`
	Out    string `type:"path" help:"Write HTML to this file instead of stdout."`
	Page   bool   `help:"Wrap the output in the embedded page template."`
	Title  string `default:"Preview" help:"Page title used with --page."`
	Class  string `help:"Extra classes for the outermost element."`
}

func (cmd *renderCmd) Run(ctx context.Context, logger *slog.Logger) error {
	diagnostics := widgets.LogDiagnostics{Logger: logger}
	dispatcher := widgets.New(widgets.WithDiagnostics(diagnostics))
	var decodeOpts []widgets.DecoderOption
	if !cmd.Page {
		// pages are validated on save, so only plain renders skip bad grid entries
		decodeOpts = append(decodeOpts, widgets.WithLenientGrids(diagnostics))
	}
	cfg, err := decodeFile(cmd.Config, cmd.Format, dispatcher.Registry(), decodeOpts...)
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(cmd.Out)
	if err != nil {
		return err
	}
	defer closeOut()

	var opts []widgets.RenderOption
	if cmd.Class != "" {
		opts = append(opts, widgets.WithClassName(cmd.Class))
	}
	if !cmd.Page {
		return dispatcher.RenderHTML(ctx, cfg, out, opts...)
	}
	return renderPage(ctx, dispatcher, cfg, cmd.Title, out, opts...)
}

func renderPage(ctx context.Context, dispatcher *widgets.Widget, cfg widgets.WidgetConfig, title string, out io.Writer, opts ...widgets.RenderOption) error {
	service := widgets.NewService(widgets.Options{
		Pages:  widgets.NewInMemoryPageStore(),
		Widget: dispatcher,
	})
	page, err := service.SavePage(ctx, widgets.SavePageRequest{Title: title, Config: &cfg})
	if err != nil {
		return err
	}
	renderer, err := widgets.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("widgetctl: template renderer: %w", err)
	}
	controller := widgets.NewController(widgets.ControllerOptions{
		Service:  service,
		Renderer: renderer,
	})
	return controller.RenderTemplate(ctx, page.ID, out, opts...)
}

func decodeFile(path, format string, registry *widgets.Registry, opts ...widgets.DecoderOption) (widgets.WidgetConfig, error) {
	decoder := widgets.NewDecoder(append([]widgets.DecoderOption{
		widgets.WithDecoderRegistry(registry),
		widgets.WithValidator(widgets.NewJSONSchemaValidator()),
	}, opts...)...)
	if format == "" {
		return decoder.DecodeFile(path)
	}
	f, err := widgets.ParseFormat(format)
	if err != nil {
		return widgets.WidgetConfig{}, err
	}
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return widgets.WidgetConfig{}, fmt.Errorf("widgetctl: read %s: %w", path, err)
	}
	return decoder.DecodeBytes(data, f)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return nil, nil, fmt.Errorf("widgetctl: create %s: %w", path, err)
	}
	return file, func() { _ = file.Close() }, nil
}
