package redis

import (
	"fmt"
	"strings"

	"github.com/mcoot/eventease/internal/model"
)

// Key prefix for all application data
const keyPrefix = "eventease"

// sequenceKey returns the counter key used to allocate ids of the given kind
func sequenceKey(kind string) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, kind)
}

func eventKey(id int) string {
	return fmt.Sprintf("%s:event:%d", keyPrefix, id)
}

// eventsIndexKey is the SET of all event ids
func eventsIndexKey() string {
	return fmt.Sprintf("%s:idx:events", keyPrefix)
}

func registrationKey(id int) string {
	return fmt.Sprintf("%s:registration:%d", keyPrefix, id)
}

// registrationsIndexKey is the SET of all registration ids
func registrationsIndexKey() string {
	return fmt.Sprintf("%s:idx:registrations", keyPrefix)
}

func registrationsForEventIndexKey(eventID int) string {
	return fmt.Sprintf("%s:idx:registrations_for_event:%d", keyPrefix, eventID)
}

// codeIndexKey maps a confirmation code to its registration id
func codeIndexKey(code string) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// emailIndexKey is the SET of registration ids for an (event, email) pair
func emailIndexKey(eventID int, email string) string {
	return fmt.Sprintf("%s:idx:event_email:%d:%s", keyPrefix, eventID, strings.ToLower(email))
}

func attendanceKey(id int) string {
	return fmt.Sprintf("%s:attendance:%d", keyPrefix, id)
}

func attendanceForEventIndexKey(eventID int) string {
	return fmt.Sprintf("%s:idx:attendance_for_event:%d", keyPrefix, eventID)
}

// openAttendanceKey maps an (event, registration) pair to its open record id
func openAttendanceKey(eventID, registrationID int) string {
	return fmt.Sprintf("%s:idx:open_attendance:%d:%d", keyPrefix, eventID, registrationID)
}

func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
