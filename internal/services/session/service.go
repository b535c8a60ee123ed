package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/eventease/internal/dependencies/clock"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/storage"
)

// activityTimeFormat prefixes recent activity entries
const activityTimeFormat = "15:04:05"

// Change describes a session mutation. Session is nil when the session was deleted.
type Change struct {
	ID      model.SessionID
	Session *model.Session
}

// Deleted returns true if the change removed the session
func (c Change) Deleted() bool {
	return c.Session == nil
}

// Listener is notified after every session mutation
type Listener interface {
	SessionChanged(ctx context.Context, change Change)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(ctx context.Context, change Change)

// SessionChanged calls f(ctx, change)
func (f ListenerFunc) SessionChanged(ctx context.Context, change Change) {
	f(ctx, change)
}

// Service manages typed per-client session state
type Service struct {
	mu sync.Mutex

	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	listenersMu    sync.RWMutex
	listeners      map[int]Listener
	nextListenerID int
}

// New creates a new session service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		clock:     clock,
		logger:    logger.With(slog.String("component", "session")),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener for every session change. The returned
// function removes it; calling it more than once is harmless.
func (s *Service) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// Create starts a new empty session
func (s *Service) Create(ctx context.Context) (*model.Session, error) {
	now := s.clock.Now()
	session := &model.Session{
		ID:               model.SessionID(uuid.NewString()),
		RecentActivities: []string{},
		SearchHistory:    []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "session created", slog.String("session_id", string(session.ID)))
	return session.Clone(), nil
}

// Get returns the session with the given id
func (s *Service) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return s.storage.GetSession(ctx, id)
}

// IsLoggedIn reports whether the session has a current user
func (s *Service) IsLoggedIn(ctx context.Context, id model.SessionID) (bool, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return false, err
	}
	return session.IsLoggedIn(), nil
}

// SetCurrentUser makes the session act as the given user
func (s *Service) SetCurrentUser(ctx context.Context, id model.SessionID, email, fullName string) (*model.Session, error) {
	return s.mutate(ctx, id, func(session *model.Session, now time.Time) bool {
		session.CurrentUser = &model.SessionUser{
			Email:     email,
			FullName:  fullName,
			LoginTime: now,
		}
		return true
	})
}

// Logout clears the current user
func (s *Service) Logout(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return s.mutate(ctx, id, func(session *model.Session, _ time.Time) bool {
		session.CurrentUser = nil
		return true
	})
}

// AddRecentActivity records an activity, newest first, keeping the last
// model.MaxRecentActivities entries
func (s *Service) AddRecentActivity(ctx context.Context, id model.SessionID, activity string) (*model.Session, error) {
	return s.mutate(ctx, id, func(session *model.Session, now time.Time) bool {
		entry := now.Format(activityTimeFormat) + " - " + activity
		session.RecentActivities = prepend(session.RecentActivities, entry, model.MaxRecentActivities)
		return true
	})
}

// AddSearchTerm records a search term, newest first, without duplicates,
// keeping the last model.MaxSearchHistory terms. Empty terms are ignored.
func (s *Service) AddSearchTerm(ctx context.Context, id model.SessionID, term string) (*model.Session, error) {
	return s.mutate(ctx, id, func(session *model.Session, _ time.Time) bool {
		if strings.TrimSpace(term) == "" {
			return false
		}
		history := make([]string, 0, len(session.SearchHistory))
		for _, t := range session.SearchHistory {
			if t != term {
				history = append(history, t)
			}
		}
		session.SearchHistory = prepend(history, term, model.MaxSearchHistory)
		return true
	})
}

// Clear resets the session to its empty state, keeping its id
func (s *Service) Clear(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return s.mutate(ctx, id, func(session *model.Session, _ time.Time) bool {
		session.CurrentUser = nil
		session.RecentActivities = []string{}
		session.SearchHistory = []string{}
		return true
	})
}

// Delete removes the session
func (s *Service) Delete(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	if _, err := s.storage.GetSession(ctx, id); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.storage.DeleteSession(ctx, id); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(ctx, Change{ID: id})
	return nil
}

// mutate applies fn to the stored session and saves it. fn returns false to
// leave the session untouched.
func (s *Service) mutate(ctx context.Context, id model.SessionID, fn func(*model.Session, time.Time) bool) (*model.Session, error) {
	s.mu.Lock()
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	now := s.clock.Now()
	if !fn(session, now) {
		s.mu.Unlock()
		return session, nil
	}
	session.UpdatedAt = now

	if err := s.storage.SaveSession(ctx, session); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.notify(ctx, Change{ID: id, Session: session.Clone()})
	return session, nil
}

func (s *Service) notify(ctx context.Context, change Change) {
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l.SessionChanged(ctx, change)
	}
}

// prepend inserts entry at the front and truncates to limit
func prepend(list []string, entry string, limit int) []string {
	result := append([]string{entry}, list...)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
