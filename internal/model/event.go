package model

import (
	"fmt"
	"time"
)

// Field limits for catalog events
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxLocationLength    = 200
	MinCapacity          = 1
	MaxCapacity          = 1000
	DefaultCapacity      = 50
)

// Event is a catalog entry attendees can register for
type Event struct {
	ID          int
	Title       string    `validate:"notblank,max=100"`
	Description string    `validate:"notblank,max=500"`
	EventDate   time.Time `validate:"required"`
	Location    string    `validate:"notblank,max=200"`
	MaxCapacity int       `validate:"min=1,max=1000"`
	PriceCents  int64     `validate:"gte=0"`
	ImageURL    string
	IsActive    bool
	CreatedDate time.Time
}

// IsUpcoming returns true if the event takes place after now
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.EventDate.After(now)
}

// StatusText returns "Upcoming" or "Past"
func (e *Event) StatusText(now time.Time) string {
	if e.IsUpcoming(now) {
		return "Upcoming"
	}
	return "Past"
}

// Clone returns a copy of the event
func (e *Event) Clone() *Event {
	c := *e
	return &c
}

// Validate checks the editable fields of an event
func (e *Event) Validate() error {
	return validateStruct(e, ErrInvalidEvent, eventMessages)
}

var eventMessages = fieldMessages{
	"Title.notblank":       "event title is required",
	"Title.max":            fmt.Sprintf("title must be less than %d characters", MaxTitleLength),
	"Description.notblank": "description is required",
	"Description.max":      fmt.Sprintf("description must be less than %d characters", MaxDescriptionLength),
	"EventDate.required":   "event date is required",
	"Location.notblank":    "location is required",
	"Location.max":         fmt.Sprintf("location must be less than %d characters", MaxLocationLength),
	"MaxCapacity.min":      fmt.Sprintf("capacity must be between %d and %d", MinCapacity, MaxCapacity),
	"MaxCapacity.max":      fmt.Sprintf("capacity must be between %d and %d", MinCapacity, MaxCapacity),
	"PriceCents.gte":       "price must be a positive value",
}

// EventStats combines an event with its registration and attendance counts
type EventStats struct {
	Event           *Event
	RegisteredCount int // confirmed registrations
	PresentCount    int // attendance records flagged present, including checked-out ones
	OpenCount       int // attendance records without a checkout
}

// AvailableSpots returns the remaining capacity
func (s EventStats) AvailableSpots() int {
	return s.Event.MaxCapacity - s.RegisteredCount
}

// IsFull returns true when no spots remain
func (s EventStats) IsFull() bool {
	return s.AvailableSpots() <= 0
}
