package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/eventease/internal/api/apierr"
	"github.com/mcoot/eventease/internal/api/middleware"
	"github.com/mcoot/eventease/internal/services/session"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// pathID parses an integer route variable
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, apierr.NewInvalidRequestError("invalid " + name)
	}
	return id, nil
}

// decode reads a JSON request body into dst
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}

// Activity records what a request did in the caller's session, if it has one.
// Failures are logged and otherwise ignored.
type Activity struct {
	sessions *session.Service
	logger   *slog.Logger
}

// NewActivity creates an activity recorder
func NewActivity(sessions *session.Service, logger *slog.Logger) *Activity {
	return &Activity{sessions: sessions, logger: logger}
}

// Record adds an entry to the session's recent activities
func (a *Activity) Record(r *http.Request, activity string) {
	s := middleware.GetSession(r.Context())
	if s == nil {
		return
	}
	if _, err := a.sessions.AddRecentActivity(r.Context(), s.ID, activity); err != nil {
		a.logger.Debug("failed to record session activity", slog.String("error", err.Error()))
	}
}

// Search adds a term to the session's search history
func (a *Activity) Search(r *http.Request, term string) {
	s := middleware.GetSession(r.Context())
	if s == nil || term == "" {
		return
	}
	if _, err := a.sessions.AddSearchTerm(r.Context(), s.ID, term); err != nil {
		a.logger.Debug("failed to record search term", slog.String("error", err.Error()))
	}
}
