package model

import "time"

// SessionID identifies a browsing session
type SessionID string

// Session limits
const (
	MaxRecentActivities = 10
	MaxSearchHistory    = 5
)

// SessionUser is the identity a session is currently acting as
type SessionUser struct {
	Email     string
	FullName  string
	LoginTime time.Time
}

// Session holds ephemeral per-client UI state
type Session struct {
	ID               SessionID
	CurrentUser      *SessionUser // nil when logged out
	RecentActivities []string     // newest first
	SearchHistory    []string     // newest first, no duplicates
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLoggedIn returns true if a current user is set
func (s *Session) IsLoggedIn() bool {
	return s.CurrentUser != nil
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		c.CurrentUser = &u
	}
	c.RecentActivities = append([]string(nil), s.RecentActivities...)
	c.SearchHistory = append([]string(nil), s.SearchHistory...)
	return &c
}
