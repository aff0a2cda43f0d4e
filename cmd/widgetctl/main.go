package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Verbose bool `short:"v" help:"Log debug diagnostics."`

	Render   renderCmd   `cmd:"" help:"Decode a widget configuration and render it to HTML."`
	Columns  columnsCmd  `cmd:"" help:"Print the responsive grid columns for an item count."`
	Validate validateCmd `cmd:"" help:"Strictly decode and schema-validate a configuration."`
	Types    typesCmd    `cmd:"" help:"List registered widget types."`
	Serve    serveCmd    `cmd:"" help:"Run the page preview server."`
	Scaffold scaffoldCmd `cmd:"" help:"Write a starter configuration for a widget type."`
}

func main() {
	var app cli
	logger := newLogger(os.Stderr, false)
	parser := kong.Must(&app,
		kong.Name("widgetctl"),
		kong.Description("Render, validate and serve widget configurations."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	if app.Verbose {
		logger = newLogger(os.Stderr, true)
	}
	ctx.Bind(logger)
	ctx.FatalIfErrorf(ctx.Run())
}

func newLogger(out *os.File, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
