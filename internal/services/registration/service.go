package registration

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/eventease/internal/dependencies/clock"
	"github.com/mcoot/eventease/internal/dependencies/random"
	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/notify"
	"github.com/mcoot/eventease/internal/storage"
)

const (
	// CodeLength is the length of generated confirmation codes
	CodeLength = 8
	// CodeAlphabet is the characters used in confirmation codes
	CodeAlphabet = random.HexAlphabet
	// maxCodeAttempts bounds the regenerate-until-unique loop
	maxCodeAttempts = 32
)

// Service owns the registrations for all events
type Service struct {
	// mu serializes id assignment and every read-modify-write sequence
	mu sync.Mutex

	storage   storage.Storage
	clock     clock.Clock
	random    random.Random
	publisher notify.Publisher
	logger    *slog.Logger
}

// New creates a new registration service
func New(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	publisher notify.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:   storage,
		clock:     clock,
		random:    random,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "registration")),
	}
}

// Create stores a new registration with a fresh id, registration date and
// confirmation code. It does not check that the email is free for the event:
// callers must check IsEmailRegisteredForEvent first, or use Register.
func (s *Service) Create(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
	s.mu.Lock()
	created, err := s.createLocked(ctx, reg)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.NotificationRegistrationCreated, created)
	return created.Clone(), nil
}

// Register checks the email/event uniqueness and creates the registration
// as one atomic step. Returns model.ErrAlreadyRegistered on a duplicate.
func (s *Service) Register(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
	s.mu.Lock()
	registered, err := s.isEmailRegisteredLocked(ctx, reg.Email, reg.EventID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if registered {
		s.mu.Unlock()
		return nil, model.ErrAlreadyRegistered
	}
	created, err := s.createLocked(ctx, reg)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.publish(ctx, model.NotificationRegistrationCreated, created)
	return created.Clone(), nil
}

func (s *Service) createLocked(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
	code, err := s.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.storage.NextRegistrationID(ctx)
	if err != nil {
		return nil, err
	}

	created := reg.Clone()
	created.ID = id
	created.RegistrationDate = s.clock.Now()
	created.ConfirmationCode = code
	created.IsConfirmed = false

	if err := s.storage.SaveRegistration(ctx, created); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "registration created",
		slog.Int("registration_id", created.ID),
		slog.Int("event_id", created.EventID),
	)
	return created, nil
}

// generateCode returns a code that no live registration holds
func (s *Service) generateCode(ctx context.Context) (string, error) {
	for range maxCodeAttempts {
		code := s.random.String(CodeLength, CodeAlphabet)
		if len(code) != CodeLength {
			continue
		}
		_, err := s.storage.GetRegistrationByCode(ctx, code)
		if errors.Is(err, model.ErrRegistrationNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", model.ErrCodeSpaceExhausted
}

// IsEmailRegisteredForEvent reports whether a live registration exists for
// the email (case-insensitive) and event
func (s *Service) IsEmailRegisteredForEvent(ctx context.Context, email string, eventID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isEmailRegisteredLocked(ctx, email, eventID)
}

func (s *Service) isEmailRegisteredLocked(ctx context.Context, email string, eventID int) (bool, error) {
	matches, err := s.storage.FindRegistrationsByEmail(ctx, eventID, email)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// ConfirmByCode marks the registration holding code as confirmed. Returns
// false if no registration has the code. Confirming twice succeeds both times.
func (s *Service) ConfirmByCode(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	reg, err := s.storage.GetRegistrationByCode(ctx, code)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, model.ErrRegistrationNotFound) {
			return false, nil
		}
		return false, err
	}

	wasConfirmed := reg.IsConfirmed
	reg.IsConfirmed = true
	if !wasConfirmed {
		if err := s.storage.SaveRegistration(ctx, reg); err != nil {
			s.mu.Unlock()
			return false, err
		}
	}
	s.mu.Unlock()

	if !wasConfirmed {
		s.publish(ctx, model.NotificationRegistrationConfirmed, reg)
	}
	return true, nil
}

// Cancel removes a registration. Returns false if the id is unknown.
// Attendance records for the registration are kept.
func (s *Service) Cancel(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	reg, err := s.storage.GetRegistration(ctx, id)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, model.ErrRegistrationNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.storage.DeleteRegistration(ctx, id); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "registration cancelled", slog.Int("registration_id", id))
	s.publish(ctx, model.NotificationRegistrationCancelled, reg)
	return true, nil
}

// GetByID returns the registration with the given id
func (s *Service) GetByID(ctx context.Context, id int) (*model.Registration, error) {
	return s.storage.GetRegistration(ctx, id)
}

// GetByConfirmationCode returns the registration holding code
func (s *Service) GetByConfirmationCode(ctx context.Context, code string) (*model.Registration, error) {
	return s.storage.GetRegistrationByCode(ctx, code)
}

// GetByEventID returns the registrations for an event, most recent first
func (s *Service) GetByEventID(ctx context.Context, eventID int) ([]*model.Registration, error) {
	regs, err := s.storage.ListRegistrationsForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(regs)
	return regs, nil
}

// List returns every registration, most recent first
func (s *Service) List(ctx context.Context) ([]*model.Registration, error) {
	regs, err := s.storage.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(regs)
	return regs, nil
}

// Search returns registrations whose first name, last name, email or
// confirmation code contains term, ignoring case. Only an empty term lists all;
// whitespace in term is matched as given.
func (s *Service) Search(ctx context.Context, term string) ([]*model.Registration, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	if term == "" {
		return all, nil
	}

	result := make([]*model.Registration, 0, len(all))
	for _, reg := range all {
		if matches(reg, term) {
			result = append(result, reg)
		}
	}
	return result, nil
}

// CountConfirmedForEvent counts the confirmed registrations for an event
func (s *Service) CountConfirmedForEvent(ctx context.Context, eventID int) (int, error) {
	regs, err := s.storage.ListRegistrationsForEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, reg := range regs {
		if reg.IsConfirmed {
			count++
		}
	}
	return count, nil
}

func (s *Service) publish(ctx context.Context, typ model.NotificationType, reg *model.Registration) {
	notify.Send(ctx, s.publisher, s.logger, model.Notification{
		Type:           typ,
		Timestamp:      s.clock.Now(),
		EventID:        reg.EventID,
		RegistrationID: reg.ID,
		Payload:        reg.Clone(),
	})
}

func matches(reg *model.Registration, term string) bool {
	for _, field := range []string{reg.FirstName, reg.LastName, reg.Email, reg.ConfirmationCode} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// sortNewestFirst orders by registration date descending, keeping storage
// order among equal dates
func sortNewestFirst(regs []*model.Registration) {
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].RegistrationDate.After(regs[j].RegistrationDate)
	})
}
