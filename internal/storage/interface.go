package storage

import (
	"context"

	"github.com/mcoot/eventease/internal/model"
)

// Storage defines the interface for data persistence.
//
// Getters return the model's not-found sentinel for unknown keys. Returned values
// are copies: mutating them has no effect until they are saved again.
type Storage interface {
	// Id allocation. Ids start at 1 and are never reused.
	NextEventID(ctx context.Context) (int, error)
	NextRegistrationID(ctx context.Context) (int, error)
	NextAttendanceID(ctx context.Context) (int, error)

	// Event catalog operations
	SaveEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id int) (*model.Event, error)
	ListEvents(ctx context.Context) ([]*model.Event, error)
	DeleteEvent(ctx context.Context, id int) error

	// Registration operations
	SaveRegistration(ctx context.Context, reg *model.Registration) error
	GetRegistration(ctx context.Context, id int) (*model.Registration, error)
	GetRegistrationByCode(ctx context.Context, code string) (*model.Registration, error)
	ListRegistrations(ctx context.Context) ([]*model.Registration, error)
	ListRegistrationsForEvent(ctx context.Context, eventID int) ([]*model.Registration, error)
	// FindRegistrationsByEmail matches email case-insensitively within one event
	FindRegistrationsByEmail(ctx context.Context, eventID int, email string) ([]*model.Registration, error)
	DeleteRegistration(ctx context.Context, id int) error

	// Attendance operations
	SaveAttendance(ctx context.Context, record *model.AttendanceRecord) error
	GetAttendance(ctx context.Context, id int) (*model.AttendanceRecord, error)
	// GetOpenAttendance returns the record for the pair that has no checkout time
	GetOpenAttendance(ctx context.Context, eventID, registrationID int) (*model.AttendanceRecord, error)
	ListAttendanceForEvent(ctx context.Context, eventID int) ([]*model.AttendanceRecord, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
}
