package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/services/session"
	"github.com/mcoot/eventease/internal/testutil"
)

func setupBroadcaster(t *testing.T, topic string) (*Broadcaster, *Client) {
	t.Helper()
	m := NewHubManager(testutil.NopLogger())
	t.Cleanup(m.Close)

	client := NewClient("test")
	require.True(t, m.GetOrCreateHub(topic).Register(client))
	return NewBroadcaster(m, testutil.NopLogger()), client
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "event:7", EventTopic(7))
	assert.Equal(t, "session:abc", SessionTopic("abc"))
}

func TestPublishForwardsToEventTopic(t *testing.T) {
	b, client := setupBroadcaster(t, EventTopic(7))

	err := b.Publish(context.Background(), model.Notification{
		Type:           model.NotificationCheckedIn,
		Timestamp:      time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
		EventID:        7,
		RegistrationID: 3,
		AttendanceID:   1,
	})
	require.NoError(t, err)

	msg := receive(t, client)
	assert.Contains(t, msg, "event: attendee_checked_in\n")
	assert.Contains(t, msg, `"registration_id":3`)
	assert.Contains(t, msg, `"attendance_id":1`)
}

func TestPublishWithoutListenersIsNoop(t *testing.T) {
	b := NewBroadcaster(NewHubManager(testutil.NopLogger()), testutil.NopLogger())
	assert.NoError(t, b.Publish(context.Background(), model.Notification{EventID: 99}))
}

func TestSessionChangedForwardsSnapshot(t *testing.T) {
	b, client := setupBroadcaster(t, SessionTopic("s1"))

	b.SessionChanged(context.Background(), session.Change{
		ID: "s1",
		Session: &model.Session{
			ID:               "s1",
			CurrentUser:      &model.SessionUser{Email: "ada@example.com", FullName: "Ada"},
			RecentActivities: []string{"09:00:00 - Logged in"},
			SearchHistory:    []string{},
		},
	})

	msg := receive(t, client)
	assert.Contains(t, msg, "event: session-updated\n")
	assert.Contains(t, msg, `"logged_in":true`)
	assert.Contains(t, msg, `"user_email":"ada@example.com"`)
}

func TestSessionDeletedEvent(t *testing.T) {
	b, client := setupBroadcaster(t, SessionTopic("s1"))

	b.SessionChanged(context.Background(), session.Change{ID: "s1"})

	assert.Equal(t, "event: session-deleted\ndata: {\"id\":\"s1\"}\n\n", receive(t, client))
}
