package model

import "errors"

// Common errors used across the application
var (
	// Event catalog errors
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
	ErrEventFull     = errors.New("event is full")
	ErrEventInactive = errors.New("event is not accepting registrations")

	// Registration errors
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidRegistration  = errors.New("invalid registration")
	ErrAlreadyRegistered    = errors.New("email is already registered for this event")
	ErrNotConfirmed         = errors.New("registration is not confirmed")
	ErrRegistrationMismatch = errors.New("registration does not belong to this event")
	ErrCodeSpaceExhausted   = errors.New("could not generate a unique confirmation code")

	// Attendance errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedOut  = errors.New("attendance record is already checked out")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
