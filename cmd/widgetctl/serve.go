package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-widgets/components/widgets"
	"github.com/goliatone/go-widgets/components/widgets/commands"
	"github.com/goliatone/go-widgets/components/widgets/gorouter"
	"github.com/goliatone/go-widgets/components/widgets/httpapi"
	"github.com/goliatone/go-widgets/components/widgets/queries"
	"github.com/goliatone/go-widgets/components/widgets/sqlitestore"
)

type serveCmd struct {
	Config string `type:"path" help:"Server config file (defaults to ./widgets.yaml when present)."`
	Addr   string `help:"Listen address, overrides the config file."`
}

func (cmd *serveCmd) Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := loadServerConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	hook := widgets.NewBroadcastHook()
	defer hook.Close()

	widgetOpts := []widgets.Option{widgets.WithDiagnostics(widgets.LogDiagnostics{Logger: logger})}
	if selector := cfg.Theme.selector(); selector != nil {
		widgetOpts = append(widgetOpts, widgets.WithThemeSelector(selector))
	}
	service := widgets.NewService(widgets.Options{
		Pages:       store,
		Widget:      widgets.New(widgetOpts...),
		RefreshHook: hook,
		Telemetry:   widgets.LogTelemetry{Logger: logger},
	})

	seed := commands.NewSeedPagesCommand(service, widgets.LogTelemetry{Logger: logger})
	if cfg.Seed.Manifest != "" {
		if err := seed.Execute(ctx, commands.SeedPagesInput{ManifestPath: cfg.Seed.Manifest}); err != nil {
			return err
		}
	} else if cfg.Seed.Defaults {
		if err := seed.Execute(ctx, commands.SeedPagesInput{}); err != nil {
			return err
		}
	}

	renderer, err := widgets.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("widgetctl: template renderer: %w", err)
	}
	controller := widgets.NewController(widgets.ControllerOptions{
		Service:  service,
		Renderer: renderer,
	})

	executor := &httpapi.CommandExecutor{
		SaveCommander:    commands.NewSavePageCommand(service, nil),
		DeleteCommander:  commands.NewDeletePageCommand(service, nil),
		RefreshCommander: commands.NewRefreshPageCommand(service, nil),
		RenderQuerier:    queries.NewRenderPageQuery(service),
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        executor,
		Preview:    service,
		Broadcast:  hook,
		BasePath:   cfg.BasePath,
	}); err != nil {
		return fmt.Errorf("widgetctl: register routes: %w", err)
	}

	logger.Info("widget preview server ready",
		slog.String("addr", cfg.Addr),
		slog.String("pages", cfg.BasePath+"/pages/:id"),
		slog.String("store", cfg.Store.Driver),
	)
	return server.Serve(cfg.Addr)
}

func openStore(ctx context.Context, cfg storeConfig) (widgets.PageStore, func(), error) {
	if cfg.Driver != "sqlite" {
		return widgets.NewInMemoryPageStore(), func() {}, nil
	}
	store, err := sqlitestore.Open(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func (cfg themeConfig) selector() widgets.ThemeSelector {
	if len(cfg.Tokens) == 0 && len(cfg.Variants) == 0 {
		return nil
	}
	manifest := &theme.Manifest{
		Name:     "widgets",
		Version:  "1",
		Tokens:   cfg.Tokens,
		Variants: make(map[string]theme.Variant, len(cfg.Variants)),
	}
	for name, tokens := range cfg.Variants {
		manifest.Variants[name] = theme.Variant{Tokens: tokens}
	}
	return widgets.ManifestSelector{string(widgets.ThemeDefault): manifest}
}
