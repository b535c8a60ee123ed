package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/notify"
	"github.com/mcoot/eventease/internal/services/session"
)

// SSE event names for session streams
const (
	EventSessionUpdated = "session-updated"
	EventSessionDeleted = "session-deleted"
)

// EventTopic is the stream of registration and attendance changes for an event
func EventTopic(eventID int) string {
	return fmt.Sprintf("event:%d", eventID)
}

// SessionTopic is the stream of changes to one session
func SessionTopic(id model.SessionID) string {
	return "session:" + string(id)
}

// Broadcaster pushes domain notifications and session changes to the hubs
// that have listeners. Topics without a hub are skipped.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

var (
	_ notify.Publisher = (*Broadcaster)(nil)
	_ session.Listener = (*Broadcaster)(nil)
)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// notificationView is the SSE payload for a domain notification
type notificationView struct {
	Type           model.NotificationType `json:"type"`
	Timestamp      time.Time              `json:"timestamp"`
	EventID        int                    `json:"event_id"`
	RegistrationID int                    `json:"registration_id,omitempty"`
	AttendanceID   int                    `json:"attendance_id,omitempty"`
}

// Publish forwards a notification to the event's stream
func (b *Broadcaster) Publish(_ context.Context, n model.Notification) error {
	hub := b.hubManager.GetHub(EventTopic(n.EventID))
	if hub == nil {
		return nil
	}

	data, err := json.Marshal(notificationView{
		Type:           n.Type,
		Timestamp:      n.Timestamp,
		EventID:        n.EventID,
		RegistrationID: n.RegistrationID,
		AttendanceID:   n.AttendanceID,
	})
	if err != nil {
		return err
	}

	hub.BroadcastEvent(string(n.Type), string(data))
	return nil
}

// sessionView is the SSE payload for a session change
type sessionView struct {
	ID               model.SessionID `json:"id"`
	LoggedIn         bool            `json:"logged_in"`
	UserEmail        string          `json:"user_email,omitempty"`
	UserName         string          `json:"user_name,omitempty"`
	RecentActivities []string        `json:"recent_activities"`
	SearchHistory    []string        `json:"search_history"`
}

// SessionChanged forwards a session change to the session's stream
func (b *Broadcaster) SessionChanged(_ context.Context, change session.Change) {
	topic := SessionTopic(change.ID)
	hub := b.hubManager.GetHub(topic)
	if hub == nil {
		return
	}

	if change.Deleted() {
		hub.BroadcastEvent(EventSessionDeleted, `{"id":"`+string(change.ID)+`"}`)
		return
	}

	s := change.Session
	view := sessionView{
		ID:               s.ID,
		LoggedIn:         s.IsLoggedIn(),
		RecentActivities: s.RecentActivities,
		SearchHistory:    s.SearchHistory,
	}
	if s.CurrentUser != nil {
		view.UserEmail = s.CurrentUser.Email
		view.UserName = s.CurrentUser.FullName
	}

	data, err := json.Marshal(view)
	if err != nil {
		b.logger.Error("sse failed to encode session",
			slog.String("session_id", string(change.ID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventSessionUpdated, string(data))
}
