package model

import (
	"fmt"
	"time"
)

// AttendanceRecord is one check-in/check-out interval for a registrant at an event
type AttendanceRecord struct {
	ID             int
	EventID        int
	RegistrationID int
	CheckInTime    time.Time
	CheckOutTime   *time.Time // nil while the attendee is present
	IsPresent      bool       // set at check-in and never cleared
	Notes          string
}

// IsOpen returns true if the attendee has not checked out yet
func (a *AttendanceRecord) IsOpen() bool {
	return a.CheckOutTime == nil
}

// Duration returns the length of a closed interval. ok is false while the interval is open.
func (a *AttendanceRecord) Duration() (d time.Duration, ok bool) {
	if a.CheckOutTime == nil {
		return 0, false
	}
	return a.CheckOutTime.Sub(a.CheckInTime), true
}

// DurationText formats the duration as total hours and minutes (hh:mm, hours do not wrap at 24),
// or "Still present" for an open interval
func (a *AttendanceRecord) DurationText() string {
	d, ok := a.Duration()
	if !ok {
		return "Still present"
	}
	minutes := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// StatusText returns "Present" or "Checked Out"
func (a *AttendanceRecord) StatusText() string {
	if a.CheckOutTime == nil {
		return "Present"
	}
	return "Checked Out"
}

// Clone returns a deep copy of the record
func (a *AttendanceRecord) Clone() *AttendanceRecord {
	c := *a
	if a.CheckOutTime != nil {
		t := *a.CheckOutTime
		c.CheckOutTime = &t
	}
	return &c
}
