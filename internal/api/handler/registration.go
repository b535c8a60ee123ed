package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/eventease/internal/api/apierr"
	"github.com/mcoot/eventease/internal/api/request"
	"github.com/mcoot/eventease/internal/api/response"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/qr"
	"github.com/mcoot/eventease/internal/services/catalog"
	"github.com/mcoot/eventease/internal/services/registration"
)

// RegistrationHandler handles registration endpoints
type RegistrationHandler struct {
	catalog       *catalog.Service
	registrations *registration.Service
	qr            *qr.Generator
	activity      *Activity
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(
	catalog *catalog.Service,
	registrations *registration.Service,
	qr *qr.Generator,
	activity *Activity,
) *RegistrationHandler {
	return &RegistrationHandler{
		catalog:       catalog,
		registrations: registrations,
		qr:            qr,
		activity:      activity,
	}
}

// Create handles POST /api/v1/events/{id}/registrations
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.RegisterRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	stats, err := h.catalog.Stats(r.Context(), eventID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !stats.Event.IsActive {
		WriteError(w, model.ErrEventInactive)
		return
	}
	if stats.IsFull() {
		WriteError(w, model.ErrEventFull)
		return
	}

	reg := req.ToModel(eventID)
	if err := reg.Validate(); err != nil {
		WriteError(w, err)
		return
	}

	created, err := h.registrations.Register(r.Context(), reg)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.activity.Record(r, fmt.Sprintf("Registered for %s", stats.Event.Title))
	response.JSON(w, http.StatusCreated, response.RegistrationFromModel(created))
}

// ListForEvent handles GET /api/v1/events/{id}/registrations
func (h *RegistrationHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.catalog.Get(r.Context(), eventID); err != nil {
		WriteError(w, err)
		return
	}

	regs, err := h.registrations.GetByEventID(r.Context(), eventID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RegistrationsFromModel(regs))
}

// Search handles GET /api/v1/registrations?q=
func (h *RegistrationHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	regs, err := h.registrations.Search(r.Context(), term)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.activity.Search(r, term)
	response.JSON(w, http.StatusOK, response.RegistrationsFromModel(regs))
}

// Get handles GET /api/v1/registrations/{id}
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	reg, err := h.registrations.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RegistrationFromModel(reg))
}

// Cancel handles DELETE /api/v1/registrations/{id}
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	cancelled, err := h.registrations.Cancel(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !cancelled {
		WriteError(w, model.ErrRegistrationNotFound)
		return
	}

	h.activity.Record(r, fmt.Sprintf("Cancelled registration #%d", id))
	response.NoContent(w)
}

// GetByCode handles GET /api/v1/registrations/code/{code}
func (h *RegistrationHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	reg, err := h.registrations.GetByConfirmationCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RegistrationFromModel(reg))
}

// Confirm handles POST /api/v1/registrations/code/{code}/confirm
func (h *RegistrationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	confirmed, err := h.registrations.ConfirmByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !confirmed {
		WriteError(w, model.ErrRegistrationNotFound)
		return
	}

	reg, err := h.registrations.GetByConfirmationCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.activity.Record(r, "Confirmed registration "+code)
	response.JSON(w, http.StatusOK, response.RegistrationFromModel(reg))
}

// QR handles GET /api/v1/registrations/code/{code}/qr
func (h *RegistrationHandler) QR(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.registrations.GetByConfirmationCode(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	png, err := h.qr.Encode(code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.PNG(w, png)
}

// pathCode returns the normalized confirmation code route variable
func pathCode(r *http.Request) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["code"]))
	if code == "" {
		return "", apierr.NewInvalidRequestError("confirmation code is required")
	}
	return code, nil
}
