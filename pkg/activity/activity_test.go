package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled")
	}
	err := em.Emit(context.Background(), Event{
		Verb:       "widgets.page.create",
		ObjectType: "widget_page",
		ObjectID:   "home",
	})
	if err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected event emitted, got %d", len(hook.events))
	}
	if hook.events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel %q, got %q", DefaultChannel, hook.events[0].Channel)
	}
}

func TestEmitterDisabled(t *testing.T) {
	if NewEmitter(nil, Config{Enabled: true}).Enabled() {
		t.Fatalf("expected emitter disabled without hooks")
	}
	if NewEmitter(Hooks{&recordingHook{}}, Config{}).Enabled() {
		t.Fatalf("expected emitter disabled when config is off")
	}
}

func TestHooksNotifySkipsInvalidAndJoinsErrors(t *testing.T) {
	var called int
	failing := errors.New("sink down")
	hooks := Hooks{
		HookFunc(func(_ context.Context, evt Event) error {
			called++
			if evt.Verb != "widgets.page.update" || evt.ObjectID != "home" {
				t.Fatalf("expected trimmed event, got %+v", evt)
			}
			return nil
		}),
		nil,
		HookFunc(func(context.Context, Event) error { return failing }),
	}

	if err := hooks.Notify(context.Background(), Event{ObjectType: "widget_page"}); err != nil {
		t.Fatalf("expected invalid event to be skipped silently, got %v", err)
	}
	if called != 0 {
		t.Fatalf("expected no calls for invalid event")
	}

	err := hooks.Notify(context.Background(), Event{
		Verb:       " widgets.page.update ",
		ObjectType: " widget_page ",
		ObjectID:   " home ",
	})
	if called != 1 {
		t.Fatalf("expected hook to be called once, got %d", called)
	}
	if !errors.Is(err, failing) {
		t.Fatalf("expected joined hook error, got %v", err)
	}
}

func TestNormalizeEventClones(t *testing.T) {
	meta := map[string]any{"k": "v"}
	recipients := []string{"a@example.com"}
	now := time.Now()

	evt := Event{
		Verb:       "verb",
		ObjectType: "obj",
		ObjectID:   "id",
		Metadata:   meta,
		Recipients: recipients,
		OccurredAt: now,
	}
	n := NormalizeEvent(evt)

	n.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("original metadata mutated")
	}
	n.Recipients[0] = "b@example.com"
	if recipients[0] != "a@example.com" {
		t.Fatalf("original recipients mutated")
	}
	if !n.OccurredAt.Equal(now) {
		t.Fatalf("occurred_at should be preserved when set")
	}
	if NormalizeEvent(Event{Verb: "v"}).OccurredAt.IsZero() {
		t.Fatalf("occurred_at should be stamped when missing")
	}
}

func TestCaptureHook(t *testing.T) {
	capture := &CaptureHook{}
	em := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "audit"})
	_ = em.Emit(context.Background(), Event{Verb: "v", ObjectType: "widget_page"})
	if len(capture.Events) != 1 || capture.Events[0].Channel != "audit" {
		t.Fatalf("expected captured event on audit channel, got %+v", capture.Events)
	}
}
