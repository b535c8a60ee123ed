package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/eventease/internal/model"
	"github.com/mcoot/eventease/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Id allocation

func (s *Storage) NextEventID(ctx context.Context) (int, error) {
	return s.nextID(ctx, "event")
}

func (s *Storage) NextRegistrationID(ctx context.Context) (int, error) {
	return s.nextID(ctx, "registration")
}

func (s *Storage) NextAttendanceID(ctx context.Context) (int, error) {
	return s.nextID(ctx, "attendance")
}

func (s *Storage) nextID(ctx context.Context, kind string) (int, error) {
	id, err := s.client.Incr(ctx, sequenceKey(kind)).Result()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// Event operations

func (s *Storage) SaveEvent(ctx context.Context, event *model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, eventKey(event.ID), data, 0)
	pipe.SAdd(ctx, eventsIndexKey(), event.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetEvent(ctx context.Context, id int) (*model.Event, error) {
	var event model.Event
	if err := s.getJSON(ctx, eventKey(id), &event, model.ErrEventNotFound); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Storage) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return listByIndex[model.Event](ctx, s.client, eventsIndexKey(), eventKey)
}

func (s *Storage) DeleteEvent(ctx context.Context, id int) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, eventKey(id))
	pipe.SRem(ctx, eventsIndexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// Registration operations

func (s *Storage) SaveRegistration(ctx context.Context, reg *model.Registration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}

	prev, err := s.GetRegistration(ctx, reg.ID)
	if err != nil && !errors.Is(err, model.ErrRegistrationNotFound) {
		return err
	}

	// Save record and every index in one transaction
	pipe := s.client.TxPipeline()
	if prev != nil {
		if prev.ConfirmationCode != reg.ConfirmationCode {
			pipe.Del(ctx, codeIndexKey(prev.ConfirmationCode))
		}
		if prev.EventID != reg.EventID {
			pipe.SRem(ctx, registrationsForEventIndexKey(prev.EventID), reg.ID)
		}
		if prev.EventID != reg.EventID || !sameEmailKey(prev.Email, reg.Email) {
			pipe.SRem(ctx, emailIndexKey(prev.EventID, prev.Email), reg.ID)
		}
	}
	pipe.Set(ctx, registrationKey(reg.ID), data, 0)
	pipe.SAdd(ctx, registrationsIndexKey(), reg.ID)
	pipe.SAdd(ctx, registrationsForEventIndexKey(reg.EventID), reg.ID)
	pipe.SAdd(ctx, emailIndexKey(reg.EventID, reg.Email), reg.ID)
	pipe.Set(ctx, codeIndexKey(reg.ConfirmationCode), reg.ID, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegistration(ctx context.Context, id int) (*model.Registration, error) {
	var reg model.Registration
	if err := s.getJSON(ctx, registrationKey(id), &reg, model.ErrRegistrationNotFound); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Storage) GetRegistrationByCode(ctx context.Context, code string) (*model.Registration, error) {
	id, err := s.client.Get(ctx, codeIndexKey(code)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRegistrationNotFound
		}
		return nil, err
	}
	return s.GetRegistration(ctx, id)
}

func (s *Storage) ListRegistrations(ctx context.Context) ([]*model.Registration, error) {
	return listByIndex[model.Registration](ctx, s.client, registrationsIndexKey(), registrationKey)
}

func (s *Storage) ListRegistrationsForEvent(ctx context.Context, eventID int) ([]*model.Registration, error) {
	return listByIndex[model.Registration](ctx, s.client, registrationsForEventIndexKey(eventID), registrationKey)
}

func (s *Storage) FindRegistrationsByEmail(ctx context.Context, eventID int, email string) ([]*model.Registration, error) {
	return listByIndex[model.Registration](ctx, s.client, emailIndexKey(eventID, email), registrationKey)
}

func (s *Storage) DeleteRegistration(ctx context.Context, id int) error {
	reg, err := s.GetRegistration(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrRegistrationNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, registrationKey(id))
	pipe.SRem(ctx, registrationsIndexKey(), id)
	pipe.SRem(ctx, registrationsForEventIndexKey(reg.EventID), id)
	pipe.SRem(ctx, emailIndexKey(reg.EventID, reg.Email), id)
	pipe.Del(ctx, codeIndexKey(reg.ConfirmationCode))
	_, err = pipe.Exec(ctx)
	return err
}

// Attendance operations

func (s *Storage) SaveAttendance(ctx context.Context, record *model.AttendanceRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	openKey := openAttendanceKey(record.EventID, record.RegistrationID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, attendanceKey(record.ID), data, 0)
	pipe.SAdd(ctx, attendanceForEventIndexKey(record.EventID), record.ID)
	if record.IsOpen() {
		pipe.Set(ctx, openKey, record.ID, 0)
	} else {
		pipe.Del(ctx, openKey)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAttendance(ctx context.Context, id int) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	if err := s.getJSON(ctx, attendanceKey(id), &record, model.ErrAttendanceNotFound); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) GetOpenAttendance(ctx context.Context, eventID, registrationID int) (*model.AttendanceRecord, error) {
	id, err := s.client.Get(ctx, openAttendanceKey(eventID, registrationID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAttendanceNotFound
		}
		return nil, err
	}
	return s.GetAttendance(ctx, id)
}

func (s *Storage) ListAttendanceForEvent(ctx context.Context, eventID int) ([]*model.AttendanceRecord, error) {
	return listByIndex[model.AttendanceRecord](ctx, s.client, attendanceForEventIndexKey(eventID), attendanceKey)
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	var session model.Session
	if err := s.getJSON(ctx, sessionKey(id), &session, model.ErrSessionNotFound); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// getJSON loads key into dst, returning notFound when the key is missing
func (s *Storage) getJSON(ctx context.Context, key string, dst any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, dst)
}

// listByIndex loads every record whose id is in the SET at indexKey, in ascending id order
func listByIndex[T any](ctx context.Context, client *redis.Client, indexKey string, recordKey func(int) string) ([]*T, error) {
	members, err := client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue // Skip malformed index entries
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Record deleted after the index was read
		}
		var item T
		if err := json.Unmarshal([]byte(str), &item); err != nil {
			continue // Skip invalid data
		}
		result = append(result, &item)
	}
	return result, nil
}

func sameEmailKey(a, b string) bool {
	return emailIndexKey(0, a) == emailIndexKey(0, b)
}
