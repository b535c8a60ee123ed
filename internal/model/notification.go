package model

import "time"

// NotificationType identifies a registration or attendance change
type NotificationType string

const (
	// Registration notifications
	NotificationRegistrationCreated   NotificationType = "registration_created"
	NotificationRegistrationConfirmed NotificationType = "registration_confirmed"
	NotificationRegistrationCancelled NotificationType = "registration_cancelled"

	// Attendance notifications
	NotificationCheckedIn  NotificationType = "attendee_checked_in"
	NotificationCheckedOut NotificationType = "attendee_checked_out"
)

// Notification describes a change to registration or attendance state
type Notification struct {
	Type           NotificationType
	Timestamp      time.Time
	EventID        int
	RegistrationID int
	AttendanceID   int // zero for registration notifications
	Payload        any // *Registration or *AttendanceRecord
}
