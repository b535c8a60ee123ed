package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	events        map[int]*model.Event
	registrations map[int]*model.Registration
	codeIndex     map[string]int
	attendance    map[int]*model.AttendanceRecord
	openIndex     map[attendanceKey]int
	sessions      map[model.SessionID]*model.Session

	lastEventID        int
	lastRegistrationID int
	lastAttendanceID   int
}

type attendanceKey struct {
	eventID        int
	registrationID int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		events:        make(map[int]*model.Event),
		registrations: make(map[int]*model.Registration),
		codeIndex:     make(map[string]int),
		attendance:    make(map[int]*model.AttendanceRecord),
		openIndex:     make(map[attendanceKey]int),
		sessions:      make(map[model.SessionID]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Id allocation

func (s *Storage) NextEventID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEventID++
	return s.lastEventID, nil
}

func (s *Storage) NextRegistrationID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRegistrationID++
	return s.lastRegistrationID, nil
}

func (s *Storage) NextAttendanceID(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAttendanceID++
	return s.lastAttendanceID, nil
}

// Event operations

func (s *Storage) SaveEvent(ctx context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event.Clone()
	return nil
}

func (s *Storage) GetEvent(ctx context.Context, id int) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	return event.Clone(), nil
}

func (s *Storage) ListEvents(ctx context.Context) ([]*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]*model.Event, 0, len(s.events))
	for _, id := range sortedKeys(s.events) {
		events = append(events, s.events[id].Clone())
	}
	return events, nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	return nil
}

// Registration operations

func (s *Storage) SaveRegistration(ctx context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.registrations[reg.ID]; ok && prev.ConfirmationCode != reg.ConfirmationCode {
		delete(s.codeIndex, prev.ConfirmationCode)
	}
	s.registrations[reg.ID] = reg.Clone()
	s.codeIndex[reg.ConfirmationCode] = reg.ID
	return nil
}

func (s *Storage) GetRegistration(ctx context.Context, id int) (*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.registrations[id]
	if !ok {
		return nil, model.ErrRegistrationNotFound
	}
	return reg.Clone(), nil
}

func (s *Storage) GetRegistrationByCode(ctx context.Context, code string) (*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrRegistrationNotFound
	}
	reg, ok := s.registrations[id]
	if !ok {
		return nil, model.ErrRegistrationNotFound
	}
	return reg.Clone(), nil
}

func (s *Storage) ListRegistrations(ctx context.Context) ([]*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterRegistrations(func(*model.Registration) bool { return true }), nil
}

func (s *Storage) ListRegistrationsForEvent(ctx context.Context, eventID int) ([]*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterRegistrations(func(r *model.Registration) bool {
		return r.EventID == eventID
	}), nil
}

func (s *Storage) FindRegistrationsByEmail(ctx context.Context, eventID int, email string) ([]*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterRegistrations(func(r *model.Registration) bool {
		return r.EventID == eventID && strings.EqualFold(r.Email, email)
	}), nil
}

func (s *Storage) DeleteRegistration(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.registrations[id]; ok {
		if s.codeIndex[reg.ConfirmationCode] == id {
			delete(s.codeIndex, reg.ConfirmationCode)
		}
		delete(s.registrations, id)
	}
	return nil
}

// filterRegistrations returns copies in id order. Callers must hold the lock.
func (s *Storage) filterRegistrations(keep func(*model.Registration) bool) []*model.Registration {
	result := []*model.Registration{}
	for _, id := range sortedKeys(s.registrations) {
		if reg := s.registrations[id]; keep(reg) {
			result = append(result, reg.Clone())
		}
	}
	return result
}

// Attendance operations

func (s *Storage) SaveAttendance(ctx context.Context, record *model.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := attendanceKey{eventID: record.EventID, registrationID: record.RegistrationID}
	s.attendance[record.ID] = record.Clone()
	if record.IsOpen() {
		s.openIndex[key] = record.ID
	} else if s.openIndex[key] == record.ID {
		delete(s.openIndex, key)
	}
	return nil
}

func (s *Storage) GetAttendance(ctx context.Context, id int) (*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.attendance[id]
	if !ok {
		return nil, model.ErrAttendanceNotFound
	}
	return record.Clone(), nil
}

func (s *Storage) GetOpenAttendance(ctx context.Context, eventID, registrationID int) (*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.openIndex[attendanceKey{eventID: eventID, registrationID: registrationID}]
	if !ok {
		return nil, model.ErrAttendanceNotFound
	}
	record, ok := s.attendance[id]
	if !ok {
		return nil, model.ErrAttendanceNotFound
	}
	return record.Clone(), nil
}

func (s *Storage) ListAttendanceForEvent(ctx context.Context, eventID int) ([]*model.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := []*model.AttendanceRecord{}
	for _, id := range sortedKeys(s.attendance) {
		if record := s.attendance[id]; record.EventID == eventID {
			records = append(records, record.Clone())
		}
	}
	return records, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// sortedKeys returns map keys in ascending order so listings follow insertion order
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
