package handler

import (
	"fmt"
	"net/http"

	"github.com/mcoot/eventease/internal/api/response"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/services/attendance"
	"github.com/mcoot/eventease/internal/services/catalog"
	"github.com/mcoot/eventease/internal/services/registration"
)

// AttendanceHandler handles check-in and check-out endpoints
type AttendanceHandler struct {
	catalog       *catalog.Service
	registrations *registration.Service
	attendance    *attendance.Service
	activity      *Activity
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(
	catalog *catalog.Service,
	registrations *registration.Service,
	attendance *attendance.Service,
	activity *Activity,
) *AttendanceHandler {
	return &AttendanceHandler{
		catalog:       catalog,
		registrations: registrations,
		attendance:    attendance,
		activity:      activity,
	}
}

// CheckIn handles POST /api/v1/events/{id}/registrations/{reg}/check-in
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	eventID, registrationID, err := h.pair(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	reg, err := h.registrations.GetByID(r.Context(), registrationID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if reg.EventID != eventID {
		WriteError(w, model.ErrRegistrationMismatch)
		return
	}
	if !reg.IsConfirmed {
		WriteError(w, model.ErrNotConfirmed)
		return
	}

	record, err := h.attendance.CheckIn(r.Context(), eventID, registrationID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.activity.Record(r, fmt.Sprintf("Checked in %s", reg.FullName()))
	response.JSON(w, http.StatusOK, response.AttendanceFromModel(record))
}

// Active handles GET /api/v1/events/{id}/registrations/{reg}/attendance
func (h *AttendanceHandler) Active(w http.ResponseWriter, r *http.Request) {
	eventID, registrationID, err := h.pair(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	record, err := h.attendance.GetActive(r.Context(), eventID, registrationID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AttendanceFromModel(record))
}

// ListForEvent handles GET /api/v1/events/{id}/attendance
func (h *AttendanceHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.catalog.Get(r.Context(), eventID); err != nil {
		WriteError(w, err)
		return
	}

	records, err := h.attendance.GetByEventID(r.Context(), eventID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AttendanceListFromModel(records))
}

// CheckOut handles POST /api/v1/attendance/{id}/check-out
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	// Look the record up first so a closed interval and an unknown id can be told apart
	if _, err := h.attendance.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	ok, err := h.attendance.CheckOut(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !ok {
		WriteError(w, model.ErrAlreadyCheckedOut)
		return
	}

	record, err := h.attendance.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.activity.Record(r, fmt.Sprintf("Checked out attendance #%d", id))
	response.JSON(w, http.StatusOK, response.AttendanceFromModel(record))
}

// pair parses the event and registration route variables and checks the event exists
func (h *AttendanceHandler) pair(r *http.Request) (eventID, registrationID int, err error) {
	if eventID, err = pathID(r, "id"); err != nil {
		return 0, 0, err
	}
	if registrationID, err = pathID(r, "reg"); err != nil {
		return 0, 0, err
	}
	if _, err = h.catalog.Get(r.Context(), eventID); err != nil {
		return 0, 0, err
	}
	return eventID, registrationID, nil
}
