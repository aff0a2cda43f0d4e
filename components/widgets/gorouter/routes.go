package gorouter

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-widgets/components/widgets"
	"github.com/goliatone/go-widgets/components/widgets/commands"
	"github.com/goliatone/go-widgets/components/widgets/httpapi"
	"github.com/goliatone/go-widgets/components/widgets/queries"
)

// ActorResolver extracts the activity actor from a request.
type ActorResolver func(router.Context) widgets.ActivityContext

// Config wires go-router with the widget page controller, API, and hooks.
type Config[T any] struct {
	Router        router.Router[T]
	Controller    *widgets.Controller
	API           httpapi.Executor
	Preview       *widgets.Service
	Broadcast     *widgets.BroadcastHook
	ActorResolver ActorResolver
	BasePath      string
	Routes        RouteConfig
}

// RouteConfig customizes the relative paths used for page endpoints.
type RouteConfig struct {
	Page      string
	View      string
	Pages     string
	PageID    string
	Preview   string
	Refresh   string
	WebSocket string
}

// Register mounts page routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/widgets"
	}
	resolver := cfg.ActorResolver
	if resolver == nil {
		resolver = defaultActorResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), ctx.Param("id"), &buf, renderOptions(ctx)...); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, resolver, routes)
	}

	if cfg.Preview != nil {
		group.Post(routes.Preview, router.WrapHandler(func(ctx router.Context) error {
			format, err := widgets.ParseFormat(ctx.Query("format"))
			if err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			doc, err := cfg.Preview.Decoder().DecodeBytes(ctx.Body(), format)
			if err != nil {
				return respondError(ctx, http.StatusUnprocessableEntity, err)
			}
			node := cfg.Preview.Preview(ctx.Context(), doc, renderOptions(ctx)...)
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send([]byte(node.HTML()))
		}))
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ActorResolver, routes RouteConfig) {
	r.Get(routes.View, router.WrapHandler(func(ctx router.Context) error {
		view, err := api.Render(ctx.Context(), queries.RenderPageInput{
			PageID:    ctx.Param("id"),
			ClassName: ctx.Query("class"),
		})
		if err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, view)
	}))

	save := func(status int) router.HandlerFunc {
		return router.WrapHandler(func(ctx router.Context) error {
			format, err := widgets.ParseFormat(ctx.Query("format"))
			if err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			actor := resolver(ctx)
			var page widgets.Page
			input := commands.SavePageInput{
				PageID:   ctx.Param("id"),
				Slug:     ctx.Query("slug"),
				Title:    ctx.Query("title"),
				Document: ctx.Body(),
				Format:   format,
				ActorID:  actor.ActorID,
				UserID:   actor.UserID,
				TenantID: actor.TenantID,
				Result:   &page,
			}
			if err := api.Save(ctx.Context(), input); err != nil {
				return respondError(ctx, http.StatusUnprocessableEntity, err)
			}
			return ctx.JSON(status, page)
		})
	}
	r.Post(routes.Pages, save(http.StatusCreated))
	r.Put(routes.PageID, save(http.StatusOK))

	r.Delete(routes.PageID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("page id is required"))
		}
		actor := resolver(ctx)
		input := commands.DeletePageInput{
			PageID:   id,
			ActorID:  actor.ActorID,
			UserID:   actor.UserID,
			TenantID: actor.TenantID,
		}
		if err := api.Delete(ctx.Context(), input); err != nil {
			return respondError(ctx, statusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		input := commands.RefreshPageInput{Event: widgets.PageEvent{
			PageID: ctx.Param("id"),
			Reason: ctx.Query("reason"),
		}}
		if err := api.Refresh(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *widgets.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func renderOptions(ctx router.Context) []widgets.RenderOption {
	if class := strings.TrimSpace(ctx.Query("class")); class != "" {
		return []widgets.RenderOption{widgets.WithClassName(class)}
	}
	return nil
}

func defaultActorResolver(ctx router.Context) widgets.ActivityContext {
	var actor widgets.ActivityContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		actor.UserID = v
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("actor_id").(string); ok && v != "" {
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		actor.TenantID = v
	}
	return actor
}

func statusFor(err error) int {
	if errors.Is(err, widgets.ErrPageNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Page == "" {
		routes.Page = "/pages/:id"
	}
	if routes.View == "" {
		routes.View = "/pages/:id/_view"
	}
	if routes.Pages == "" {
		routes.Pages = "/api/pages"
	}
	if routes.PageID == "" {
		routes.PageID = "/api/pages/:id"
	}
	if routes.Preview == "" {
		routes.Preview = "/api/preview"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/api/pages/:id/refresh"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
