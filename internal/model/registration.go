package model

import (
	"fmt"
	"time"
)

// Field limits for registration input
const (
	MaxNameLength                = 50
	MaxSpecialRequirementsLength = 500
)

// Registration is an attendee's claim on a spot at an event
type Registration struct {
	ID                  int
	EventID             int    `validate:"gt=0"`
	FirstName           string `validate:"notblank,max=50"`
	LastName            string `validate:"notblank,max=50"`
	Email               string `validate:"notblank,email"`
	PhoneNumber         string `validate:"omitempty,phone"` // optional
	SpecialRequirements string `validate:"max=500"`         // optional
	IsConfirmed         bool
	RegistrationDate    time.Time
	ConfirmationCode    string
}

// FullName returns the attendee's first and last name
func (r *Registration) FullName() string {
	return r.FirstName + " " + r.LastName
}

// StatusText returns a human-readable confirmation status
func (r *Registration) StatusText() string {
	if r.IsConfirmed {
		return "Confirmed"
	}
	return "Pending"
}

// Clone returns a copy that shares no memory with r
func (r *Registration) Clone() *Registration {
	c := *r
	return &c
}

// Validate checks the attendee-supplied fields. Server-assigned fields are ignored.
// Lengths count characters, not bytes.
func (r *Registration) Validate() error {
	return validateStruct(r, ErrInvalidRegistration, registrationMessages)
}

var registrationMessages = fieldMessages{
	"EventID.gt":              "event id is required",
	"FirstName.notblank":      "first name is required",
	"FirstName.max":           fmt.Sprintf("first name must be less than %d characters", MaxNameLength),
	"LastName.notblank":       "last name is required",
	"LastName.max":            fmt.Sprintf("last name must be less than %d characters", MaxNameLength),
	"Email.notblank":          "email is required",
	"Email.email":             "please enter a valid email address",
	"PhoneNumber.phone":       "please enter a valid phone number",
	"SpecialRequirements.max": fmt.Sprintf("special requirements must be less than %d characters", MaxSpecialRequirementsLength),
}
