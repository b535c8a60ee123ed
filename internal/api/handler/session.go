package handler

import (
	"net/http"
	"strings"

	"github.com/mcoot/eventease/internal/api/apierr"
	"github.com/mcoot/eventease/internal/api/middleware"
	"github.com/mcoot/eventease/internal/api/request"
	"github.com/mcoot/eventease/internal/api/response"
	"github.com/mcoot/eventease/internal/services/session"
	"github.com/mcoot/eventease/internal/sse"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	sessions   *session.Service
	hubManager *sse.HubManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Service, hubManager *sse.HubManager) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		hubManager: hubManager,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Create(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    string(s.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusCreated, response.SessionFromModel(s))
}

// Me handles GET /api/v1/sessions/me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SessionFromModel(middleware.MustGetSession(r.Context())))
}

// SetUser handles POST /api/v1/sessions/me/user
func (h *SessionHandler) SetUser(w http.ResponseWriter, r *http.Request) {
	var req request.SetUserRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		WriteError(w, apierr.NewInvalidRequestError("email is required"))
		return
	}

	current := middleware.MustGetSession(r.Context())
	s, err := h.sessions.SetCurrentUser(r.Context(), current.ID, email, strings.TrimSpace(req.FullName))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Logout handles DELETE /api/v1/sessions/me/user
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	current := middleware.MustGetSession(r.Context())
	s, err := h.sessions.Logout(r.Context(), current.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Clear handles POST /api/v1/sessions/me/clear
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	current := middleware.MustGetSession(r.Context())
	s, err := h.sessions.Clear(r.Context(), current.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Delete handles DELETE /api/v1/sessions/me
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current := middleware.MustGetSession(r.Context())
	if err := h.sessions.Delete(r.Context(), current.ID); err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   middleware.SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	response.NoContent(w)
}

// Stream handles GET /api/v1/sessions/me/stream
func (h *SessionHandler) Stream(w http.ResponseWriter, r *http.Request) {
	current := middleware.MustGetSession(r.Context())
	hub := h.hubManager.GetOrCreateHub(sse.SessionTopic(current.ID))
	sse.ServeSSE(w, r, hub, string(current.ID))
}
