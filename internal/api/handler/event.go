package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/eventease/internal/api/request"
	"github.com/mcoot/eventease/internal/api/response"
	"github.com/mcoot/eventease/internal/dependencies/clock"
	requestlog "github.com/mcoot/eventease/internal/middleware"
	"github.com/mcoot/eventease/internal/services/catalog"
	"github.com/mcoot/eventease/internal/sse"
)

// EventHandler handles catalog endpoints
type EventHandler struct {
	catalog    *catalog.Service
	hubManager *sse.HubManager
	activity   *Activity
	clock      clock.Clock
}

// NewEventHandler creates a new event handler
func NewEventHandler(catalog *catalog.Service, hubManager *sse.HubManager, activity *Activity, clock clock.Clock) *EventHandler {
	return &EventHandler{
		catalog:    catalog,
		hubManager: hubManager,
		activity:   activity,
		clock:      clock,
	}
}

// List handles GET /api/v1/events?q=&upcoming=true
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	upcoming, _ := strconv.ParseBool(r.URL.Query().Get("upcoming"))

	events, err := h.catalog.Search(r.Context(), term)
	if err != nil {
		WriteError(w, err)
		return
	}

	now := h.clock.Now()
	if upcoming {
		filtered := events[:0]
		for _, e := range events {
			if e.IsActive && e.IsUpcoming(now) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	h.activity.Search(r, term)
	response.JSON(w, http.StatusOK, response.EventsFromModel(events, now))
}

// Create handles POST /api/v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.EventRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	event, err := h.catalog.Create(r.Context(), req.ToModel(0))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.activity.Record(r, "Created event "+event.Title)
	response.JSON(w, http.StatusCreated, response.EventFromModel(event, h.clock.Now()))
}

// Get handles GET /api/v1/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	event, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.activity.Record(r, "Viewed event "+event.Title)
	response.JSON(w, http.StatusOK, response.EventFromModel(event, h.clock.Now()))
}

// Update handles PUT /api/v1/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.EventRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	event, err := h.catalog.Update(r.Context(), req.ToModel(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EventFromModel(event, h.clock.Now()))
}

// Delete handles DELETE /api/v1/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Stats handles GET /api/v1/events/{id}/stats
func (h *EventHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	stats, err := h.catalog.Stats(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EventStatsFromModel(stats, h.clock.Now()))
}

// Stream handles GET /api/v1/events/{id}/stream
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.catalog.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(sse.EventTopic(id))
	sse.ServeSSE(w, r, hub, requestlog.RequestID(r.Context()))
}
