package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/eventease/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeEventNotFound        = "EVENT_NOT_FOUND"
	CodeEventFull            = "EVENT_FULL"
	CodeEventInactive        = "EVENT_INACTIVE"
	CodeRegistrationNotFound = "REGISTRATION_NOT_FOUND"
	CodeAlreadyRegistered    = "ALREADY_REGISTERED"
	CodeNotConfirmed         = "NOT_CONFIRMED"
	CodeRegistrationMismatch = "REGISTRATION_MISMATCH"
	CodeAttendanceNotFound   = "ATTENDANCE_NOT_FOUND"
	CodeAlreadyCheckedOut    = "ALREADY_CHECKED_OUT"
	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodeSessionRequired      = "SESSION_REQUIRED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidEvent), errors.Is(err, model.ErrInvalidRegistration):
		// Validation messages are written for the client
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, err.Error()}}
	case errors.Is(err, model.ErrEventNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEventNotFound, "Event not found"}}
	case errors.Is(err, model.ErrEventFull):
		return &httpError{http.StatusConflict, APIError{CodeEventFull, "Event is full"}}
	case errors.Is(err, model.ErrEventInactive):
		return &httpError{http.StatusConflict, APIError{CodeEventInactive, "Event is not accepting registrations"}}
	case errors.Is(err, model.ErrRegistrationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRegistrationNotFound, "Registration not found"}}
	case errors.Is(err, model.ErrAlreadyRegistered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRegistered, "This email is already registered for the event"}}
	case errors.Is(err, model.ErrNotConfirmed):
		return &httpError{http.StatusConflict, APIError{CodeNotConfirmed, "Registration must be confirmed before check-in"}}
	case errors.Is(err, model.ErrRegistrationMismatch):
		return &httpError{http.StatusConflict, APIError{CodeRegistrationMismatch, "Registration does not belong to this event"}}
	case errors.Is(err, model.ErrAttendanceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAttendanceNotFound, "Attendance record not found"}}
	case errors.Is(err, model.ErrAlreadyCheckedOut):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyCheckedOut, "Attendee has already checked out"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewSessionRequiredError creates an error for requests without a session
func NewSessionRequiredError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeSessionRequired, "Session required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
