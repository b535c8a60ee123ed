package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/eventease/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) registration(id, eventID int, email, code string) *model.Registration {
	return &model.Registration{
		ID:               id,
		EventID:          eventID,
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Email:            email,
		RegistrationDate: time.Now(),
		ConfirmationCode: code,
	}
}

// Id allocation tests

func (s *StorageSuite) TestIDsAreMonotonicPerKind() {
	first, _ := s.storage.NextRegistrationID(s.ctx)
	second, _ := s.storage.NextRegistrationID(s.ctx)
	attendance, _ := s.storage.NextAttendanceID(s.ctx)
	event, _ := s.storage.NextEventID(s.ctx)

	s.Equal(1, first)
	s.Equal(2, second)
	s.Equal(1, attendance)
	s.Equal(1, event)
}

// Event tests

func (s *StorageSuite) TestSaveAndGetEvent() {
	event := &model.Event{ID: 1, Title: "Meetup", MaxCapacity: 10}
	s.Require().NoError(s.storage.SaveEvent(s.ctx, event))

	retrieved, err := s.storage.GetEvent(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Meetup", retrieved.Title)
}

func (s *StorageSuite) TestDeleteEvent() {
	_ = s.storage.SaveEvent(s.ctx, &model.Event{ID: 1})
	s.Require().NoError(s.storage.DeleteEvent(s.ctx, 1))

	_, err := s.storage.GetEvent(s.ctx, 1)
	s.ErrorIs(err, model.ErrEventNotFound)
}

func (s *StorageSuite) TestListEventsInIDOrder() {
	_ = s.storage.SaveEvent(s.ctx, &model.Event{ID: 2})
	_ = s.storage.SaveEvent(s.ctx, &model.Event{ID: 1})

	events, err := s.storage.ListEvents(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(1, events[0].ID)
	s.Equal(2, events[1].ID)
}

// Registration tests

func (s *StorageSuite) TestSaveAndGetRegistration() {
	reg := s.registration(1, 1, "a@x.com", "AAAA0001")
	s.Require().NoError(s.storage.SaveRegistration(s.ctx, reg))

	byID, err := s.storage.GetRegistration(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("a@x.com", byID.Email)

	byCode, err := s.storage.GetRegistrationByCode(s.ctx, "AAAA0001")
	s.Require().NoError(err)
	s.Equal(1, byCode.ID)
}

func (s *StorageSuite) TestGetRegistrationNotFound() {
	_, err := s.storage.GetRegistration(s.ctx, 99)
	s.ErrorIs(err, model.ErrRegistrationNotFound)

	_, err = s.storage.GetRegistrationByCode(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrRegistrationNotFound)
}

func (s *StorageSuite) TestReturnedRegistrationIsACopy() {
	_ = s.storage.SaveRegistration(s.ctx, s.registration(1, 1, "a@x.com", "AAAA0001"))

	reg, _ := s.storage.GetRegistration(s.ctx, 1)
	reg.IsConfirmed = true

	again, _ := s.storage.GetRegistration(s.ctx, 1)
	s.False(again.IsConfirmed)
}

func (s *StorageSuite) TestDeleteRegistrationFreesCode() {
	_ = s.storage.SaveRegistration(s.ctx, s.registration(1, 1, "a@x.com", "AAAA0001"))
	s.Require().NoError(s.storage.DeleteRegistration(s.ctx, 1))

	_, err := s.storage.GetRegistrationByCode(s.ctx, "AAAA0001")
	s.ErrorIs(err, model.ErrRegistrationNotFound)
}

func (s *StorageSuite) TestListRegistrationsForEvent() {
	_ = s.storage.SaveRegistration(s.ctx, s.registration(1, 1, "a@x.com", "C1"))
	_ = s.storage.SaveRegistration(s.ctx, s.registration(2, 2, "b@x.com", "C2"))
	_ = s.storage.SaveRegistration(s.ctx, s.registration(3, 1, "c@x.com", "C3"))

	regs, err := s.storage.ListRegistrationsForEvent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(regs, 2)
	s.Equal(1, regs[0].ID)
	s.Equal(3, regs[1].ID)

	all, _ := s.storage.ListRegistrations(s.ctx)
	s.Len(all, 3)
}

func (s *StorageSuite) TestFindRegistrationsByEmailIgnoresCase() {
	_ = s.storage.SaveRegistration(s.ctx, s.registration(1, 1, "Ada@Example.com", "C1"))
	_ = s.storage.SaveRegistration(s.ctx, s.registration(2, 2, "ada@example.com", "C2"))

	regs, err := s.storage.FindRegistrationsByEmail(s.ctx, 1, "ADA@EXAMPLE.COM")
	s.Require().NoError(err)
	s.Require().Len(regs, 1)
	s.Equal(1, regs[0].ID)

	none, err := s.storage.FindRegistrationsByEmail(s.ctx, 3, "ada@example.com")
	s.Require().NoError(err)
	s.Empty(none)
}

// Attendance tests

func (s *StorageSuite) TestOpenAttendanceIndex() {
	record := &model.AttendanceRecord{ID: 1, EventID: 1, RegistrationID: 5, CheckInTime: time.Now(), IsPresent: true}
	s.Require().NoError(s.storage.SaveAttendance(s.ctx, record))

	open, err := s.storage.GetOpenAttendance(s.ctx, 1, 5)
	s.Require().NoError(err)
	s.Equal(1, open.ID)

	out := time.Now()
	record.CheckOutTime = &out
	s.Require().NoError(s.storage.SaveAttendance(s.ctx, record))

	_, err = s.storage.GetOpenAttendance(s.ctx, 1, 5)
	s.ErrorIs(err, model.ErrAttendanceNotFound)

	closed, err := s.storage.GetAttendance(s.ctx, 1)
	s.Require().NoError(err)
	s.NotNil(closed.CheckOutTime)
}

func (s *StorageSuite) TestListAttendanceForEvent() {
	_ = s.storage.SaveAttendance(s.ctx, &model.AttendanceRecord{ID: 1, EventID: 1, RegistrationID: 1})
	_ = s.storage.SaveAttendance(s.ctx, &model.AttendanceRecord{ID: 2, EventID: 2, RegistrationID: 1})

	records, err := s.storage.ListAttendanceForEvent(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *StorageSuite) TestGetAttendanceNotFound() {
	_, err := s.storage.GetAttendance(s.ctx, 42)
	s.ErrorIs(err, model.ErrAttendanceNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveGetDeleteSession() {
	session := &model.Session{ID: "sess-1", SearchHistory: []string{"go"}}
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal([]string{"go"}, retrieved.SearchHistory)

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "sess-1"))
	_, err = s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
