package attendance

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/mcoot/eventease/internal/dependencies/clock"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/notify"
	"github.com/mcoot/eventease/internal/storage"
)

// Service tracks check-in and check-out per (event, registration) pair.
//
// A pair moves from no record to checked in to checked out. Checking in again
// after a checkout appends a new record; closed records are never reopened.
type Service struct {
	mu sync.Mutex

	storage   storage.Storage
	clock     clock.Clock
	publisher notify.Publisher
	logger    *slog.Logger
}

// New creates a new attendance service
func New(
	storage storage.Storage,
	clock clock.Clock,
	publisher notify.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:   storage,
		clock:     clock,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "attendance")),
	}
}

// CheckIn opens an attendance interval for the pair. If one is already open
// it is returned unchanged.
func (s *Service) CheckIn(ctx context.Context, eventID, registrationID int) (*model.AttendanceRecord, error) {
	s.mu.Lock()
	open, err := s.storage.GetOpenAttendance(ctx, eventID, registrationID)
	if err == nil {
		s.mu.Unlock()
		return open, nil
	}
	if !errors.Is(err, model.ErrAttendanceNotFound) {
		s.mu.Unlock()
		return nil, err
	}

	id, err := s.storage.NextAttendanceID(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	record := &model.AttendanceRecord{
		ID:             id,
		EventID:        eventID,
		RegistrationID: registrationID,
		CheckInTime:    s.clock.Now(),
		IsPresent:      true,
	}
	if err := s.storage.SaveAttendance(ctx, record); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "attendee checked in",
		slog.Int("attendance_id", id),
		slog.Int("event_id", eventID),
		slog.Int("registration_id", registrationID),
	)
	s.publish(ctx, model.NotificationCheckedIn, record)
	return record.Clone(), nil
}

// CheckOut closes an open interval. Returns false without changing anything
// if the record is unknown or already checked out.
func (s *Service) CheckOut(ctx context.Context, attendanceID int) (bool, error) {
	s.mu.Lock()
	record, err := s.storage.GetAttendance(ctx, attendanceID)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, model.ErrAttendanceNotFound) {
			return false, nil
		}
		return false, err
	}
	if !record.IsOpen() {
		s.mu.Unlock()
		return false, nil
	}

	now := s.clock.Now()
	record.CheckOutTime = &now
	if err := s.storage.SaveAttendance(ctx, record); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "attendee checked out", slog.Int("attendance_id", attendanceID))
	s.publish(ctx, model.NotificationCheckedOut, record)
	return true, nil
}

// GetActive returns the open record for the pair, or model.ErrAttendanceNotFound
func (s *Service) GetActive(ctx context.Context, eventID, registrationID int) (*model.AttendanceRecord, error) {
	return s.storage.GetOpenAttendance(ctx, eventID, registrationID)
}

// Get returns a record by id
func (s *Service) Get(ctx context.Context, id int) (*model.AttendanceRecord, error) {
	return s.storage.GetAttendance(ctx, id)
}

// GetByEventID returns every record for the event, latest check-in first
func (s *Service) GetByEventID(ctx context.Context, eventID int) ([]*model.AttendanceRecord, error) {
	records, err := s.storage.ListAttendanceForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CheckInTime.After(records[j].CheckInTime)
	})
	return records, nil
}

// CountPresent counts the records for the event flagged present. The flag is
// never cleared, so checked-out attendees are included. See CountOpen.
func (s *Service) CountPresent(ctx context.Context, eventID int) (int, error) {
	return s.count(ctx, eventID, func(r *model.AttendanceRecord) bool { return r.IsPresent })
}

// CountOpen counts the attendees currently checked in to the event
func (s *Service) CountOpen(ctx context.Context, eventID int) (int, error) {
	return s.count(ctx, eventID, (*model.AttendanceRecord).IsOpen)
}

func (s *Service) count(ctx context.Context, eventID int, pred func(*model.AttendanceRecord) bool) (int, error) {
	records, err := s.storage.ListAttendanceForEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n, nil
}

func (s *Service) publish(ctx context.Context, typ model.NotificationType, record *model.AttendanceRecord) {
	notify.Send(ctx, s.publisher, s.logger, model.Notification{
		Type:           typ,
		Timestamp:      s.clock.Now(),
		EventID:        record.EventID,
		RegistrationID: record.RegistrationID,
		AttendanceID:   record.ID,
		Payload:        record.Clone(),
	})
}
