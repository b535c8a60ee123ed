package response

import (
	"time"

	"github.com/mcoot/eventease/internal/model"
)

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}

// Event represents a catalog event in API responses
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	Status      string    `json:"status"`
	CreatedDate time.Time `json:"created_date"`
}

// EventFromModel converts model.Event; now decides the status text
func EventFromModel(e *model.Event, now time.Time) Event {
	return Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate,
		Location:    e.Location,
		MaxCapacity: e.MaxCapacity,
		PriceCents:  e.PriceCents,
		ImageURL:    e.ImageURL,
		IsActive:    e.IsActive,
		Status:      e.StatusText(now),
		CreatedDate: e.CreatedDate,
	}
}

// EventsFromModel converts a list of events
func EventsFromModel(events []*model.Event, now time.Time) []Event {
	result := make([]Event, len(events))
	for i, e := range events {
		result[i] = EventFromModel(e, now)
	}
	return result
}

// EventStats combines an event with its counts
type EventStats struct {
	Event           Event `json:"event"`
	RegisteredCount int   `json:"registered_count"`
	AvailableSpots  int   `json:"available_spots"`
	IsFull          bool  `json:"is_full"`
	PresentCount    int   `json:"present_count"`
	OpenCount       int   `json:"open_count"`
}

// EventStatsFromModel converts model.EventStats
func EventStatsFromModel(s *model.EventStats, now time.Time) EventStats {
	return EventStats{
		Event:           EventFromModel(s.Event, now),
		RegisteredCount: s.RegisteredCount,
		AvailableSpots:  s.AvailableSpots(),
		IsFull:          s.IsFull(),
		PresentCount:    s.PresentCount,
		OpenCount:       s.OpenCount,
	}
}

// Registration represents a registration in API responses
type Registration struct {
	ID                  int       `json:"id"`
	EventID             int       `json:"event_id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
	SpecialRequirements string    `json:"special_requirements,omitempty"`
	IsConfirmed         bool      `json:"is_confirmed"`
	Status              string    `json:"status"`
	RegistrationDate    time.Time `json:"registration_date"`
	ConfirmationCode    string    `json:"confirmation_code"`
}

// RegistrationFromModel converts model.Registration
func RegistrationFromModel(r *model.Registration) Registration {
	return Registration{
		ID:                  r.ID,
		EventID:             r.EventID,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		FullName:            r.FullName(),
		Email:               r.Email,
		PhoneNumber:         r.PhoneNumber,
		SpecialRequirements: r.SpecialRequirements,
		IsConfirmed:         r.IsConfirmed,
		Status:              r.StatusText(),
		RegistrationDate:    r.RegistrationDate,
		ConfirmationCode:    r.ConfirmationCode,
	}
}

// RegistrationsFromModel converts a list of registrations
func RegistrationsFromModel(regs []*model.Registration) []Registration {
	result := make([]Registration, len(regs))
	for i, r := range regs {
		result[i] = RegistrationFromModel(r)
	}
	return result
}

// Attendance represents an attendance record in API responses
type Attendance struct {
	ID             int        `json:"id"`
	EventID        int        `json:"event_id"`
	RegistrationID int        `json:"registration_id"`
	CheckInTime    time.Time  `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time"`
	IsPresent      bool       `json:"is_present"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status"`
	Duration       string     `json:"duration"`
}

// AttendanceFromModel converts model.AttendanceRecord
func AttendanceFromModel(a *model.AttendanceRecord) Attendance {
	return Attendance{
		ID:             a.ID,
		EventID:        a.EventID,
		RegistrationID: a.RegistrationID,
		CheckInTime:    a.CheckInTime,
		CheckOutTime:   a.CheckOutTime,
		IsPresent:      a.IsPresent,
		Notes:          a.Notes,
		Status:         a.StatusText(),
		Duration:       a.DurationText(),
	}
}

// AttendanceListFromModel converts a list of attendance records
func AttendanceListFromModel(records []*model.AttendanceRecord) []Attendance {
	result := make([]Attendance, len(records))
	for i, a := range records {
		result[i] = AttendanceFromModel(a)
	}
	return result
}

// SessionUser is the identity a session acts as
type SessionUser struct {
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	LoginTime time.Time `json:"login_time"`
}

// Session represents session state in API responses
type Session struct {
	ID               string       `json:"id"`
	LoggedIn         bool         `json:"logged_in"`
	User             *SessionUser `json:"user"`
	RecentActivities []string     `json:"recent_activities"`
	SearchHistory    []string     `json:"search_history"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	result := Session{
		ID:               string(s.ID),
		LoggedIn:         s.IsLoggedIn(),
		RecentActivities: nonNil(s.RecentActivities),
		SearchHistory:    nonNil(s.SearchHistory),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if s.CurrentUser != nil {
		result.User = &SessionUser{
			Email:     s.CurrentUser.Email,
			FullName:  s.CurrentUser.FullName,
			LoginTime: s.CurrentUser.LoginTime,
		}
	}
	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
