package request

import (
	"strings"
	"time"

	"github.com/mcoot/eventease/internal/model"
)

// EventRequest is the request body for creating or updating an event
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url,omitempty"`
	// IsActive defaults to true when omitted
	IsActive *bool `json:"is_active,omitempty"`
}

// ToModel converts the request into an event with the given id
func (r EventRequest) ToModel(id int) *model.Event {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &model.Event{
		ID:          id,
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		EventDate:   r.EventDate,
		Location:    strings.TrimSpace(r.Location),
		MaxCapacity: r.MaxCapacity,
		PriceCents:  r.PriceCents,
		ImageURL:    strings.TrimSpace(r.ImageURL),
		IsActive:    active,
	}
}

// RegisterRequest is the request body for registering for an event
type RegisterRequest struct {
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Email               string `json:"email"`
	PhoneNumber         string `json:"phone_number,omitempty"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
}

// ToModel converts the request into a registration for the event
func (r RegisterRequest) ToModel(eventID int) *model.Registration {
	return &model.Registration{
		EventID:             eventID,
		FirstName:           strings.TrimSpace(r.FirstName),
		LastName:            strings.TrimSpace(r.LastName),
		Email:               strings.TrimSpace(r.Email),
		PhoneNumber:         strings.TrimSpace(r.PhoneNumber),
		SpecialRequirements: strings.TrimSpace(r.SpecialRequirements),
	}
}

// SetUserRequest is the request body for setting the session's current user
type SetUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
