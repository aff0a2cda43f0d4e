package widgets

import (
	"context"
	"errors"
)

// NotificationsClient is the minimal publisher contract expected from an
// external notifications service.
type NotificationsClient interface {
	PublishPageEvent(ctx context.Context, channel string, event PageEvent) error
}

// NotificationsHook forwards page events to a notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// PageUpdated publishes the event on the configured channel.
func (h *NotificationsHook) PageUpdated(ctx context.Context, event PageEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	channel := h.Channel
	if channel == "" {
		channel = "widgets.pages"
	}
	return h.Client.PublishPageEvent(ctx, channel, event)
}

// RefreshHooks fans a page event out to several hooks, joining their errors.
type RefreshHooks []RefreshHook

// PageUpdated calls every non-nil hook.
func (hooks RefreshHooks) PageUpdated(ctx context.Context, event PageEvent) error {
	var errs []error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.PageUpdated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
