package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRegistration() *Registration {
	return &Registration{
		EventID:   1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Registration)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *Registration) {}},
		{name: "valid with phone", mutate: func(r *Registration) { r.PhoneNumber = "+90 (212) 555-0101" }},
		{name: "missing event", mutate: func(r *Registration) { r.EventID = 0 }, wantErr: true},
		{name: "missing first name", mutate: func(r *Registration) { r.FirstName = "  " }, wantErr: true},
		{name: "missing last name", mutate: func(r *Registration) { r.LastName = "" }, wantErr: true},
		{name: "long first name", mutate: func(r *Registration) { r.FirstName = strings.Repeat("a", 51) }, wantErr: true},
		{name: "multibyte first name", mutate: func(r *Registration) { r.FirstName = strings.Repeat("李", 19) }},
		{name: "multibyte name at limit", mutate: func(r *Registration) { r.LastName = strings.Repeat("ö", MaxNameLength) }},
		{name: "multibyte name over limit", mutate: func(r *Registration) { r.LastName = strings.Repeat("李", MaxNameLength+1) }, wantErr: true},
		{name: "multibyte special requirements", mutate: func(r *Registration) {
			r.SpecialRequirements = strings.Repeat("é", MaxSpecialRequirementsLength)
		}},
		{name: "long special requirements", mutate: func(r *Registration) {
			r.SpecialRequirements = strings.Repeat("x", MaxSpecialRequirementsLength+1)
		}, wantErr: true},
		{name: "bad email", mutate: func(r *Registration) { r.Email = "not-an-email" }, wantErr: true},
		{name: "display name email", mutate: func(r *Registration) { r.Email = "Ada <ada@example.com>" }, wantErr: true},
		{name: "bad phone", mutate: func(r *Registration) { r.PhoneNumber = "call me" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(r)
			err := r.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRegistration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistrationDerivedValues(t *testing.T) {
	r := validRegistration()
	assert.Equal(t, "Ada Lovelace", r.FullName())
	assert.Equal(t, "Pending", r.StatusText())

	r.IsConfirmed = true
	assert.Equal(t, "Confirmed", r.StatusText())
}

func TestAttendanceDerivedValues(t *testing.T) {
	checkIn := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	a := &AttendanceRecord{ID: 1, CheckInTime: checkIn, IsPresent: true}

	assert.True(t, a.IsOpen())
	assert.Equal(t, "Present", a.StatusText())
	assert.Equal(t, "Still present", a.DurationText())
	_, ok := a.Duration()
	assert.False(t, ok)

	out := checkIn.Add(2*time.Hour + 5*time.Minute)
	a.CheckOutTime = &out

	assert.False(t, a.IsOpen())
	assert.Equal(t, "Checked Out", a.StatusText())
	assert.Equal(t, "02:05", a.DurationText())
	d, ok := a.Duration()
	assert.True(t, ok)
	assert.Equal(t, 125*time.Minute, d)

	long := checkIn.Add(26*time.Hour + 5*time.Minute)
	a.CheckOutTime = &long
	assert.Equal(t, "26:05", a.DurationText())
}

func TestRegistrationValidateMessages(t *testing.T) {
	r := validRegistration()
	r.FirstName = ""
	assert.EqualError(t, r.Validate(), "invalid registration: first name is required")

	r = validRegistration()
	r.Email = "nope"
	assert.EqualError(t, r.Validate(), "invalid registration: please enter a valid email address")

	r = validRegistration()
	r.PhoneNumber = "12"
	assert.EqualError(t, r.Validate(), "invalid registration: please enter a valid phone number")
}

func TestAttendanceCloneIsDeep(t *testing.T) {
	out := time.Now()
	a := &AttendanceRecord{ID: 1, CheckOutTime: &out}

	c := a.Clone()
	*c.CheckOutTime = out.Add(time.Hour)

	assert.Equal(t, out, *a.CheckOutTime)
}

func TestEventValidateAndStats(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	e := &Event{
		Title:       "Tech Conference",
		Description: "Talks",
		EventDate:   now.Add(24 * time.Hour),
		Location:    "Istanbul",
		MaxCapacity: 2,
	}
	assert.NoError(t, e.Validate())
	assert.Equal(t, "Upcoming", e.StatusText(now))
	assert.Equal(t, "Past", e.StatusText(now.Add(48*time.Hour)))

	e.MaxCapacity = 0
	assert.ErrorIs(t, e.Validate(), ErrInvalidEvent)
	assert.ErrorContains(t, e.Validate(), "capacity must be between 1 and 1000")
	e.MaxCapacity = 2

	e.Title = strings.Repeat("会", MaxTitleLength)
	assert.NoError(t, e.Validate())
	e.Title = strings.Repeat("会", MaxTitleLength+1)
	assert.ErrorIs(t, e.Validate(), ErrInvalidEvent)
	e.Title = "Tech Conference"

	e.PriceCents = -1
	assert.ErrorContains(t, e.Validate(), "price must be a positive value")
	e.PriceCents = 0

	e.EventDate = time.Time{}
	assert.ErrorContains(t, e.Validate(), "event date is required")
	e.EventDate = now.Add(24 * time.Hour)

	stats := EventStats{Event: e, RegisteredCount: 1}
	assert.Equal(t, 1, stats.AvailableSpots())
	assert.False(t, stats.IsFull())

	stats.RegisteredCount = 2
	assert.True(t, stats.IsFull())
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := &Session{
		ID:               "s1",
		CurrentUser:      &SessionUser{Email: "a@x.com"},
		RecentActivities: []string{"one"},
	}

	c := s.Clone()
	c.CurrentUser.Email = "b@x.com"
	c.RecentActivities[0] = "two"

	assert.Equal(t, "a@x.com", s.CurrentUser.Email)
	assert.Equal(t, "one", s.RecentActivities[0])
}
