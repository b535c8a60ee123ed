package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/eventease/internal/api/handler"
	"github.com/mcoot/eventease/internal/api/middleware"
	"github.com/mcoot/eventease/internal/dependencies/clock"
	requestlog "github.com/mcoot/eventease/internal/middleware"
	"github.com/mcoot/eventease/internal/qr"
	"github.com/mcoot/eventease/internal/services/attendance"
	"github.com/mcoot/eventease/internal/services/catalog"
	"github.com/mcoot/eventease/internal/services/registration"
	"github.com/mcoot/eventease/internal/services/session"
	"github.com/mcoot/eventease/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Clock         clock.Clock
	Catalog       *catalog.Service
	Registrations *registration.Service
	Attendance    *attendance.Service
	Sessions      *session.Service
	QR            *qr.Generator
	HubManager    *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	activity := handler.NewActivity(cfg.Sessions, cfg.Logger)
	eventHandler := handler.NewEventHandler(cfg.Catalog, cfg.HubManager, activity, cfg.Clock)
	registrationHandler := handler.NewRegistrationHandler(cfg.Catalog, cfg.Registrations, cfg.QR, activity)
	attendanceHandler := handler.NewAttendanceHandler(cfg.Catalog, cfg.Registrations, cfg.Attendance, activity)
	sessionHandler := handler.NewSessionHandler(cfg.Sessions, cfg.HubManager)

	// Create middleware
	requireSession := middleware.RequireSession(cfg.Sessions)
	optionalSession := middleware.OptionalSession(cfg.Sessions)
	loggingMiddleware := requestlog.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(optionalSession)

	// Health check endpoint
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Event routes
	api.HandleFunc("/events", eventHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/events", eventHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}", eventHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", eventHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/events/{id}", eventHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/events/{id}/stats", eventHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/stream", eventHandler.Stream).Methods(http.MethodGet)

	// Registration routes
	api.HandleFunc("/events/{id}/registrations", registrationHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/registrations", registrationHandler.ListForEvent).Methods(http.MethodGet)
	api.HandleFunc("/registrations", registrationHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/registrations/code/{code}", registrationHandler.GetByCode).Methods(http.MethodGet)
	api.HandleFunc("/registrations/code/{code}/confirm", registrationHandler.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/registrations/code/{code}/qr", registrationHandler.QR).Methods(http.MethodGet)
	api.HandleFunc("/registrations/{id}", registrationHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/registrations/{id}", registrationHandler.Cancel).Methods(http.MethodDelete)

	// Attendance routes
	api.HandleFunc("/events/{id}/registrations/{reg}/check-in", attendanceHandler.CheckIn).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/registrations/{reg}/attendance", attendanceHandler.Active).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/attendance", attendanceHandler.ListForEvent).Methods(http.MethodGet)
	api.HandleFunc("/attendance/{id}/check-out", attendanceHandler.CheckOut).Methods(http.MethodPost)

	// Session routes (creating a session needs none)
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)

	me := api.PathPrefix("/sessions/me").Subrouter()
	me.Use(requireSession)
	me.HandleFunc("", sessionHandler.Me).Methods(http.MethodGet)
	me.HandleFunc("", sessionHandler.Delete).Methods(http.MethodDelete)
	me.HandleFunc("/user", sessionHandler.SetUser).Methods(http.MethodPost)
	me.HandleFunc("/user", sessionHandler.Logout).Methods(http.MethodDelete)
	me.HandleFunc("/clear", sessionHandler.Clear).Methods(http.MethodPost)
	me.HandleFunc("/stream", sessionHandler.Stream).Methods(http.MethodGet)

	return r
}
