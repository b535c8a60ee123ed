package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/eventease/internal/dependencies/clock"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/storage"
)

// RegistrationCounter counts confirmed registrations for an event
type RegistrationCounter interface {
	CountConfirmedForEvent(ctx context.Context, eventID int) (int, error)
}

// AttendanceCounter counts attendance records for an event
type AttendanceCounter interface {
	CountPresent(ctx context.Context, eventID int) (int, error)
	CountOpen(ctx context.Context, eventID int) (int, error)
}

// Service manages the event catalog
type Service struct {
	mu sync.Mutex

	storage       storage.Storage
	registrations RegistrationCounter
	attendance    AttendanceCounter
	clock         clock.Clock
	logger        *slog.Logger
}

// New creates a new catalog service
func New(
	storage storage.Storage,
	registrations RegistrationCounter,
	attendance AttendanceCounter,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:       storage,
		registrations: registrations,
		attendance:    attendance,
		clock:         clock,
		logger:        logger.With(slog.String("component", "catalog")),
	}
}

// List returns every event, soonest first
func (s *Service) List(ctx context.Context) ([]*model.Event, error) {
	events, err := s.storage.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	sortByDate(events)
	return events, nil
}

// Upcoming returns the active events that have not started yet, soonest first
func (s *Service) Upcoming(ctx context.Context) ([]*model.Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.filterUpcoming(events), nil
}

// Get returns the event with the given id
func (s *Service) Get(ctx context.Context, id int) (*model.Event, error) {
	return s.storage.GetEvent(ctx, id)
}

// Search returns events whose title, description or location contains term,
// ignoring case. Only an empty term lists all events.
func (s *Service) Search(ctx context.Context, term string) ([]*model.Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	if term == "" {
		return events, nil
	}

	result := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.Location), term) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Create validates and stores a new event
func (s *Service) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	created := event.Clone()
	if created.MaxCapacity == 0 {
		created.MaxCapacity = model.DefaultCapacity
	}
	if err := created.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.storage.NextEventID(ctx)
	if err != nil {
		return nil, err
	}
	created.ID = id
	created.CreatedDate = s.clock.Now()

	if err := s.storage.SaveEvent(ctx, created); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "event created",
		slog.Int("event_id", created.ID),
		slog.String("title", created.Title),
	)
	return created.Clone(), nil
}

// Update replaces the editable fields of an existing event
func (s *Service) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.storage.GetEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = event.Title
	existing.Description = event.Description
	existing.EventDate = event.EventDate
	existing.Location = event.Location
	existing.MaxCapacity = event.MaxCapacity
	existing.PriceCents = event.PriceCents
	existing.ImageURL = event.ImageURL
	existing.IsActive = event.IsActive

	if err := s.storage.SaveEvent(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an event. Registrations and attendance for it are kept.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.storage.GetEvent(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "event deleted", slog.Int("event_id", id))
	return nil
}

// Count returns the number of events in the catalog
func (s *Service) Count(ctx context.Context) (int, error) {
	events, err := s.storage.ListEvents(ctx)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// UpcomingCount returns the number of upcoming active events
func (s *Service) UpcomingCount(ctx context.Context) (int, error) {
	events, err := s.Upcoming(ctx)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// Stats returns the event together with its registration and attendance counts
func (s *Service) Stats(ctx context.Context, id int) (*model.EventStats, error) {
	event, err := s.storage.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &model.EventStats{Event: event}
	if stats.RegisteredCount, err = s.registrations.CountConfirmedForEvent(ctx, id); err != nil {
		return nil, err
	}
	if stats.PresentCount, err = s.attendance.CountPresent(ctx, id); err != nil {
		return nil, err
	}
	if stats.OpenCount, err = s.attendance.CountOpen(ctx, id); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) filterUpcoming(events []*model.Event) []*model.Event {
	now := s.clock.Now()
	result := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if e.IsActive && e.IsUpcoming(now) {
			result = append(result, e)
		}
	}
	return result
}

// sortByDate orders events by date ascending, keeping storage order among equal dates
func sortByDate(events []*model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
}
