package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/eventease/internal/dependencies/mocks"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/notify"
	"github.com/mcoot/eventease/internal/storage/memory"
	"github.com/mcoot/eventease/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage       *memory.Storage
	clock         *mocks.MockClock
	service       *Service
	ctx           context.Context
	notifications []model.Notification
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC))
	s.notifications = nil
	publisher := notify.PublisherFunc(func(_ context.Context, n model.Notification) error {
		s.notifications = append(s.notifications, n)
		return nil
	})
	s.service = New(s.storage, s.clock, publisher, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) checkIn(eventID, registrationID int) *model.AttendanceRecord {
	record, err := s.service.CheckIn(s.ctx, eventID, registrationID)
	s.Require().NoError(err)
	return record
}

// CheckIn tests

func (s *ServiceSuite) TestCheckInCreatesOpenRecord() {
	record := s.checkIn(1, 1)

	s.Equal(1, record.ID)
	s.Equal(1, record.EventID)
	s.Equal(1, record.RegistrationID)
	s.Equal(s.clock.Now(), record.CheckInTime)
	s.Nil(record.CheckOutTime)
	s.True(record.IsPresent)
	s.Equal("Present", record.StatusText())
	s.Require().Len(s.notifications, 1)
	s.Equal(model.NotificationCheckedIn, s.notifications[0].Type)
}

func (s *ServiceSuite) TestCheckInTwiceReturnsSameRecord() {
	first := s.checkIn(1, 1)
	s.clock.Advance(5 * time.Minute)
	second := s.checkIn(1, 1)

	s.Equal(first.ID, second.ID)
	s.Equal(first.CheckInTime, second.CheckInTime)
	s.Len(s.notifications, 1)

	records, _ := s.service.GetByEventID(s.ctx, 1)
	s.Len(records, 1)
}

func (s *ServiceSuite) TestCheckInAfterCheckOutAppendsNewRecord() {
	first := s.checkIn(1, 1)
	_, _ = s.service.CheckOut(s.ctx, first.ID)
	s.clock.Advance(time.Hour)

	second := s.checkIn(1, 1)
	s.NotEqual(first.ID, second.ID)
	s.Nil(second.CheckOutTime)

	old, err := s.service.Get(s.ctx, first.ID)
	s.Require().NoError(err)
	s.NotNil(old.CheckOutTime, "closed records are never reopened")
}

func (s *ServiceSuite) TestCheckInIsPerPair() {
	a := s.checkIn(1, 1)
	b := s.checkIn(1, 2)
	c := s.checkIn(2, 1)

	s.NotEqual(a.ID, b.ID)
	s.NotEqual(a.ID, c.ID)
}

func (s *ServiceSuite) TestConcurrentCheckInKeepsOneOpenRecord() {
	var wg sync.WaitGroup
	ids := make(chan int, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := s.service.CheckIn(s.ctx, 1, 1)
			if s.NoError(err) {
				ids <- record.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		s.Equal(1, id)
	}
	records, _ := s.service.GetByEventID(s.ctx, 1)
	s.Len(records, 1)
}

// CheckOut tests

func (s *ServiceSuite) TestCheckOutClosesRecord() {
	record := s.checkIn(1, 1)
	s.clock.Advance(90 * time.Minute)

	ok, err := s.service.CheckOut(s.ctx, record.ID)
	s.Require().NoError(err)
	s.True(ok)

	stored, _ := s.service.Get(s.ctx, record.ID)
	s.Require().NotNil(stored.CheckOutTime)
	s.Equal(s.clock.Now(), *stored.CheckOutTime)
	s.Equal("Checked Out", stored.StatusText())
	s.Equal("01:30", stored.DurationText())
	s.True(stored.IsPresent, "present flag is never cleared")

	_, err = s.service.GetActive(s.ctx, 1, 1)
	s.ErrorIs(err, model.ErrAttendanceNotFound)
}

func (s *ServiceSuite) TestSecondCheckOutFailsWithoutChange() {
	record := s.checkIn(1, 1)
	s.clock.Advance(time.Minute)
	_, _ = s.service.CheckOut(s.ctx, record.ID)
	firstOut, _ := s.service.Get(s.ctx, record.ID)

	s.clock.Advance(time.Hour)
	ok, err := s.service.CheckOut(s.ctx, record.ID)
	s.Require().NoError(err)
	s.False(ok)

	after, _ := s.service.Get(s.ctx, record.ID)
	s.Equal(*firstOut.CheckOutTime, *after.CheckOutTime)
	s.Len(s.notifications, 2)
}

func (s *ServiceSuite) TestCheckOutUnknownReturnsFalse() {
	ok, err := s.service.CheckOut(s.ctx, 42)
	s.NoError(err)
	s.False(ok)
}

// Query tests

func (s *ServiceSuite) TestGetActive() {
	_, err := s.service.GetActive(s.ctx, 1, 1)
	s.ErrorIs(err, model.ErrAttendanceNotFound)

	record := s.checkIn(1, 1)
	active, err := s.service.GetActive(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Equal(record.ID, active.ID)
}

func (s *ServiceSuite) TestGetByEventIDLatestCheckInFirst() {
	s.checkIn(1, 1)
	s.clock.Advance(time.Minute)
	s.checkIn(2, 1)
	s.clock.Advance(time.Minute)
	s.checkIn(1, 2)

	records, err := s.service.GetByEventID(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(2, records[0].RegistrationID)
	s.Equal(1, records[1].RegistrationID)
}

func (s *ServiceSuite) TestCountPresentIncludesCheckedOut() {
	a := s.checkIn(1, 1)
	s.checkIn(1, 2)
	_, _ = s.service.CheckOut(s.ctx, a.ID)
	s.checkIn(1, 1)

	present, err := s.service.CountPresent(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(3, present)

	open, err := s.service.CountOpen(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(2, open)
}

func (s *ServiceSuite) TestCountsForUnknownEventAreZero() {
	present, err := s.service.CountPresent(s.ctx, 99)
	s.NoError(err)
	s.Zero(present)
}
