package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/eventease/internal/api/apierr"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/services/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Where clients send their session id
const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session"
)

// RequireSession rejects requests without a valid session
func RequireSession(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ExtractSessionID(r)
			if id == "" {
				apierr.WriteError(w, apierr.NewSessionRequiredError())
				return
			}

			s, err := sessions.Get(r.Context(), id)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey, s)))
		})
	}
}

// OptionalSession attaches the session if the request carries a valid one
func OptionalSession(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := ExtractSessionID(r); id != "" {
				if s, err := sessions.Get(r.Context(), id); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, s))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractSessionID returns the session id from the header or cookie
func ExtractSessionID(r *http.Request) model.SessionID {
	if id := r.Header.Get(SessionHeader); id != "" {
		return model.SessionID(id)
	}

	// Fall back to cookie
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return model.SessionID(cookie.Value)
	}

	return ""
}

// GetSession returns the session attached to the request context, or nil
func GetSession(ctx context.Context) *model.Session {
	s, _ := ctx.Value(sessionContextKey).(*model.Session)
	return s
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *model.Session {
	s := GetSession(ctx)
	if s == nil {
		panic("no session in context - session middleware not applied?")
	}
	return s
}
