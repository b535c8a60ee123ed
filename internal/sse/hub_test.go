package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/eventease/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "attendee_checked_in",
			data:      `{"event_id":1}`,
			expected:  "event: attendee_checked_in\ndata: {\"event_id\":1}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "session-updated",
			data:      "{\n  \"id\": \"x\"\n}",
			expected:  "event: session-updated\ndata: {\ndata:   \"id\": \"x\"\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"hello"}, splitLines("hello"))
	assert.Equal(t, []string{"line1", "line2"}, splitLines("line1\nline2"))
	assert.Equal(t, []string{"line1"}, splitLines("line1\n"))
	assert.Equal(t, []string{""}, splitLines(""))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n\n"))
}

func receive(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg := <-c.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return ""
	}
}

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := NewHub("event:1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	a := NewClient("a")
	b := NewClient("b")
	require.True(t, hub.Register(a))
	require.True(t, hub.Register(b))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("ping", "hi")
	assert.Equal(t, "event: ping\ndata: hi\n\n", receive(t, a))
	assert.Equal(t, "event: ping\ndata: hi\n\n", receive(t, b))

	hub.Unregister(a)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	_, open := <-a.send
	assert.False(t, open, "unregistering closes the client channel")
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub("event:1", testutil.NopLogger())
	go hub.Run()

	client := NewClient("a")
	require.True(t, hub.Register(client))

	hub.Close()
	hub.Close()

	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}

	assert.False(t, hub.Register(NewClient("late")))
	hub.Unregister(client) // must not block once closed
}

func TestHubManager(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	defer m.Close()

	assert.Nil(t, m.GetHub("event:1"))

	hub := m.GetOrCreateHub("event:1")
	assert.Same(t, hub, m.GetOrCreateHub("event:1"))
	assert.Same(t, hub, m.GetHub("event:1"))

	assert.Equal(t, 1, m.CleanupEmptyHubs())
	assert.Nil(t, m.GetHub("event:1"))

	m.GetOrCreateHub("event:2")
	m.RemoveHub("event:2")
	assert.Nil(t, m.GetHub("event:2"))
}

func TestServeSSEStreamsUntilRequestEnds(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	defer m.Close()
	hub := m.GetOrCreateHub("event:1")

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, hub, "test")
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastEvent("attendee_checked_in", `{"event_id":1}`)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ServeSSE did not return after cancellation")
	}

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "event: connected\n"))
	assert.Contains(t, body, "event: attendee_checked_in\ndata: {\"event_id\":1}\n\n")
}
