package factory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/services/session"
	"github.com/mcoot/eventease/internal/storage"
	"github.com/mcoot/eventease/internal/storage/memory"
	redisstorage "github.com/mcoot/eventease/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	newStorage func(t *testing.T) storage.Storage

	app *TestApp
	ctx context.Context

	mu            sync.Mutex
	notifications []model.NotificationType
}

func TestIntegrationMemory(t *testing.T) {
	suite.Run(t, &IntegrationSuite{
		newStorage: func(*testing.T) storage.Storage { return memory.New() },
	})
}

func TestIntegrationRedis(t *testing.T) {
	suite.Run(t, &IntegrationSuite{
		newStorage: func(t *testing.T) storage.Storage {
			mini := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return redisstorage.NewWithClient(client, redisstorage.DefaultConfig())
		},
	})
}

func (s *IntegrationSuite) SetupTest() {
	s.notifications = nil
	recorder := publisherFunc(func(n model.Notification) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.notifications = append(s.notifications, n.Type)
	})
	s.app = NewTestAppWithStorage(s.newStorage(s.T()), recorder)
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.NoError(s.app.Close())
}

// Test: the full registration and attendance lifecycle for one attendee
func (s *IntegrationSuite) TestRegistrationAndAttendanceScenario() {
	// Step 1: Create a registration
	reg, err := s.app.Registrations.Create(s.ctx, &model.Registration{
		EventID:   1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "a@x.com",
	})
	s.Require().NoError(err)
	s.Equal(1, reg.ID)
	s.False(reg.IsConfirmed)
	s.Len(reg.ConfirmationCode, 8)

	// Step 2: Confirm by code
	ok, err := s.app.Registrations.ConfirmByCode(s.ctx, reg.ConfirmationCode)
	s.Require().NoError(err)
	s.True(ok)
	stored, err := s.app.Registrations.GetByID(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.True(stored.IsConfirmed)

	// Step 3: Check in
	record, err := s.app.Attendance.CheckIn(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Equal(1, record.ID)
	s.Nil(record.CheckOutTime)

	// Step 4: Check in again returns the same record
	s.app.MockClock.Advance(time.Minute)
	again, err := s.app.Attendance.CheckIn(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Equal(1, again.ID)

	// Step 5: Check out
	s.app.MockClock.Advance(time.Hour)
	ok, err = s.app.Attendance.CheckOut(s.ctx, 1)
	s.Require().NoError(err)
	s.True(ok)
	closed, err := s.app.Attendance.Get(s.ctx, 1)
	s.Require().NoError(err)
	s.NotNil(closed.CheckOutTime)
	s.Equal("01:01", closed.DurationText())

	// Step 6: Second checkout fails
	ok, err = s.app.Attendance.CheckOut(s.ctx, 1)
	s.Require().NoError(err)
	s.False(ok)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Equal([]model.NotificationType{
		model.NotificationRegistrationCreated,
		model.NotificationRegistrationConfirmed,
		model.NotificationCheckedIn,
		model.NotificationCheckedOut,
	}, s.notifications)
}

// Test: catalog stats reflect registrations and attendance across services
func (s *IntegrationSuite) TestEventStatsAcrossServices() {
	seeded, err := s.app.Catalog.Seed(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(seeded, 4)
	event := seeded[0]

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		reg, err := s.app.Registrations.Register(s.ctx, &model.Registration{EventID: event.ID, Email: email})
		s.Require().NoError(err)
		_, err = s.app.Registrations.ConfirmByCode(s.ctx, reg.ConfirmationCode)
		s.Require().NoError(err)
		_, err = s.app.Attendance.CheckIn(s.ctx, event.ID, reg.ID)
		s.Require().NoError(err)
	}

	_, err = s.app.Registrations.Register(s.ctx, &model.Registration{EventID: event.ID, Email: "A@X.COM"})
	s.ErrorIs(err, model.ErrAlreadyRegistered)

	stats, err := s.app.Catalog.Stats(s.ctx, event.ID)
	s.Require().NoError(err)
	s.Equal(3, stats.RegisteredCount)
	s.Equal(event.MaxCapacity-3, stats.AvailableSpots())
	s.Equal(3, stats.PresentCount)
	s.Equal(3, stats.OpenCount)
}

// Test: cancelling a registration keeps its attendance history
func (s *IntegrationSuite) TestCancelDoesNotCascade() {
	reg, err := s.app.Registrations.Create(s.ctx, &model.Registration{EventID: 1, Email: "a@x.com"})
	s.Require().NoError(err)
	_, err = s.app.Attendance.CheckIn(s.ctx, 1, reg.ID)
	s.Require().NoError(err)

	ok, err := s.app.Registrations.Cancel(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.True(ok)

	records, err := s.app.Attendance.GetByEventID(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(records, 1)

	registered, err := s.app.Registrations.IsEmailRegisteredForEvent(s.ctx, "a@x.com", 1)
	s.Require().NoError(err)
	s.False(registered)
}

// Test: session changes reach subscribers with typed fields
func (s *IntegrationSuite) TestSessionLifecycle() {
	var changes []session.Change
	unsubscribe := s.app.Sessions.Subscribe(session.ListenerFunc(func(_ context.Context, c session.Change) {
		changes = append(changes, c)
	}))
	defer unsubscribe()

	sess, err := s.app.Sessions.Create(s.ctx)
	s.Require().NoError(err)

	_, err = s.app.Sessions.SetCurrentUser(s.ctx, sess.ID, "a@x.com", "Ada Lovelace")
	s.Require().NoError(err)
	_, err = s.app.Sessions.AddSearchTerm(s.ctx, sess.ID, "jazz")
	s.Require().NoError(err)

	stored, err := s.app.Sessions.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.True(stored.IsLoggedIn())
	s.Equal([]string{"jazz"}, stored.SearchHistory)
	s.Len(changes, 2)

	s.Require().NoError(s.app.Sessions.Delete(s.ctx, sess.ID))
	s.Require().Len(changes, 3)
	s.True(changes[2].Deleted())
}

type publisherFunc func(n model.Notification)

func (f publisherFunc) Publish(_ context.Context, n model.Notification) error {
	f(n)
	return nil
}
