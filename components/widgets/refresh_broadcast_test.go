package widgets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := PageEvent{PageID: "overview", Reason: "update"}
	if err := hook.PageUpdated(context.Background(), event); err != nil {
		t.Fatalf("PageUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.PageID != event.PageID {
			t.Fatalf("expected page %s, got %s", event.PageID, e.PageID)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookDropsWhenFull(t *testing.T) {
	hook := NewBroadcastHook(1)
	ch, cancel := hook.Subscribe()
	defer cancel()
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "a"}))
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "b"}))

	assert.Equal(t, "a", (<-ch).PageID)
	select {
	case e := <-ch:
		t.Fatalf("expected second event to be dropped, got %+v", e)
	default:
	}
}

func TestBroadcastHookCancelAndClose(t *testing.T) {
	hook := NewBroadcastHook()
	ch1, cancel1 := hook.Subscribe()
	ch2, _ := hook.Subscribe()
	assert.Equal(t, 2, hook.Subscribers())

	cancel1()
	cancel1()
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, hook.Subscribers())

	hook.Close()
	hook.Close()
	_, open = <-ch2
	assert.False(t, open)
	assert.Zero(t, hook.Subscribers())

	late, cancel := hook.Subscribe()
	cancel()
	_, open = <-late
	assert.False(t, open)
}

func waitForSubscribers(t *testing.T, hook *BroadcastHook, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hook.Subscribers() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d subscribers", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastHookServeSSE(t *testing.T) {
	hook := NewBroadcastHook()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		hook.ServeSSE(rec, req)
	}()
	waitForSubscribers(t, hook, 1)
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "p1", Reason: "update"}))
	hook.Close()
	<-done

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: page\ndata: "), body)
	assert.Contains(t, body, `{"page_id":"p1","reason":"update"}`)
}

func TestBroadcastHookServeWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForSubscribers(t, hook, 1)
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "p2", Slug: "home", Reason: "create"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var event PageEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, PageEvent{PageID: "p2", Slug: "home", Reason: "create"}, event)
}

func TestRefreshHooksFanOut(t *testing.T) {
	first := &collectingHook{}
	second := &collectingHook{err: assert.AnError}
	third := &collectingHook{}
	hooks := RefreshHooks{first, nil, second, third}

	err := hooks.PageUpdated(context.Background(), PageEvent{PageID: "x"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, first.events, 1)
	assert.Len(t, third.events, 1)
}

type recordingClient struct {
	channel string
	event   PageEvent
}

func (c *recordingClient) PublishPageEvent(_ context.Context, channel string, event PageEvent) error {
	c.channel = channel
	c.event = event
	return nil
}

func TestNotificationsHook(t *testing.T) {
	client := &recordingClient{}
	hook := &NotificationsHook{Client: client}
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "p"}))
	assert.Equal(t, "widgets.pages", client.channel)
	assert.Equal(t, "p", client.event.PageID)

	hook.Channel = "ops"
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "q"}))
	assert.Equal(t, "ops", client.channel)

	var empty *NotificationsHook
	assert.NoError(t, empty.PageUpdated(context.Background(), PageEvent{}))
}
