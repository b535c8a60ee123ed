package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/eventease/internal/model"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrEventNotFound, http.StatusNotFound},
		{model.ErrRegistrationNotFound, http.StatusNotFound},
		{model.ErrAttendanceNotFound, http.StatusNotFound},
		{model.ErrSessionNotFound, http.StatusNotFound},
		{model.ErrAlreadyRegistered, http.StatusConflict},
		{model.ErrEventFull, http.StatusConflict},
		{model.ErrEventInactive, http.StatusConflict},
		{model.ErrNotConfirmed, http.StatusConflict},
		{model.ErrRegistrationMismatch, http.StatusConflict},
		{model.ErrAlreadyCheckedOut, http.StatusConflict},
		{fmt.Errorf("%w: email is required", model.ErrInvalidRegistration), http.StatusBadRequest},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{NewSessionRequiredError(), http.StatusUnauthorized},
		{errors.New("redis: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
		})
	}
}

func TestWriteErrorBody(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, fmt.Errorf("%w: email is required", model.ErrInvalidRegistration))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, CodeValidationFailed, body.Error.Code)
	assert.Equal(t, "invalid registration: email is required", body.Error.Message)
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("dial tcp 10.0.0.1:6379: refused"))

	assert.NotContains(t, rr.Body.String(), "10.0.0.1")
	assert.Contains(t, rr.Body.String(), CodeInternalError)
}
