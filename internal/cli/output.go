package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Event:
		o.printEvent(v)
	case []Event:
		o.printEvents(v)
	case EventStats:
		o.printEventStats(v)
	case Registration:
		o.printRegistration(v)
	case []Registration:
		o.printRegistrations(v)
	case Attendance:
		o.printAttendance(v)
	case []Attendance:
		o.printAttendanceList(v)
	case Session:
		o.printSession(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Event response type (matches API)
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	Status      string    `json:"status"`
}

// EventStats response type
type EventStats struct {
	Event           Event `json:"event"`
	RegisteredCount int   `json:"registered_count"`
	AvailableSpots  int   `json:"available_spots"`
	IsFull          bool  `json:"is_full"`
	PresentCount    int   `json:"present_count"`
	OpenCount       int   `json:"open_count"`
}

// Registration response type
type Registration struct {
	ID                  int       `json:"id"`
	EventID             int       `json:"event_id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phone_number,omitempty"`
	SpecialRequirements string    `json:"special_requirements,omitempty"`
	IsConfirmed         bool      `json:"is_confirmed"`
	Status              string    `json:"status"`
	RegistrationDate    time.Time `json:"registration_date"`
	ConfirmationCode    string    `json:"confirmation_code"`
}

// Attendance response type
type Attendance struct {
	ID             int        `json:"id"`
	EventID        int        `json:"event_id"`
	RegistrationID int        `json:"registration_id"`
	CheckInTime    time.Time  `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time"`
	IsPresent      bool       `json:"is_present"`
	Status         string     `json:"status"`
	Duration       string     `json:"duration"`
}

// SessionUser response type
type SessionUser struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Session response type
type Session struct {
	ID               string       `json:"id"`
	LoggedIn         bool         `json:"logged_in"`
	User             *SessionUser `json:"user"`
	RecentActivities []string     `json:"recent_activities"`
	SearchHistory    []string     `json:"search_history"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func formatPrice(cents int64) string {
	if cents == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func (o *Output) printEvent(e Event) {
	fmt.Fprintf(o.w, "Event #%d: %s\n", e.ID, e.Title)
	fmt.Fprintf(o.w, "Date: %s (%s)\n", e.EventDate.Format("2006-01-02 15:04"), e.Status)
	fmt.Fprintf(o.w, "Location: %s\n", e.Location)
	fmt.Fprintf(o.w, "Capacity: %d\n", e.MaxCapacity)
	fmt.Fprintf(o.w, "Price: %s\n", formatPrice(e.PriceCents))
	if !e.IsActive {
		fmt.Fprintln(o.w, "Not accepting registrations")
	}
	fmt.Fprintf(o.w, "\n%s\n", e.Description)
}

func (o *Output) printEvents(events []Event) {
	if len(events) == 0 {
		fmt.Fprintln(o.w, "No events found")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tLOCATION\tPRICE\tSTATUS")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.EventDate.Format("2006-01-02"), e.Title, e.Location, formatPrice(e.PriceCents), e.Status)
	}
	_ = tw.Flush()
}

func (o *Output) printEventStats(s EventStats) {
	fmt.Fprintf(o.w, "Event #%d: %s\n", s.Event.ID, s.Event.Title)
	fmt.Fprintf(o.w, "Registered: %d/%d\n", s.RegisteredCount, s.Event.MaxCapacity)
	fmt.Fprintf(o.w, "Available: %d\n", s.AvailableSpots)
	if s.IsFull {
		fmt.Fprintln(o.w, "Event is full")
	}
	fmt.Fprintf(o.w, "Present: %d (%d checked in now)\n", s.PresentCount, s.OpenCount)
}

func (o *Output) printRegistration(r Registration) {
	fmt.Fprintf(o.w, "Registration #%d for event #%d\n", r.ID, r.EventID)
	fmt.Fprintf(o.w, "Name: %s\n", r.FullName)
	fmt.Fprintf(o.w, "Email: %s\n", r.Email)
	if r.PhoneNumber != "" {
		fmt.Fprintf(o.w, "Phone: %s\n", r.PhoneNumber)
	}
	if r.SpecialRequirements != "" {
		fmt.Fprintf(o.w, "Requirements: %s\n", r.SpecialRequirements)
	}
	fmt.Fprintf(o.w, "Code: %s\n", r.ConfirmationCode)
	fmt.Fprintf(o.w, "Status: %s\n", r.Status)
}

func (o *Output) printRegistrations(regs []Registration) {
	if len(regs) == 0 {
		fmt.Fprintln(o.w, "No registrations found")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEVENT\tNAME\tEMAIL\tCODE\tSTATUS")
	for _, r := range regs {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.EventID, r.FullName, r.Email, r.ConfirmationCode, r.Status)
	}
	_ = tw.Flush()
}

func (o *Output) printAttendance(a Attendance) {
	fmt.Fprintf(o.w, "Attendance #%d (event #%d, registration #%d)\n", a.ID, a.EventID, a.RegistrationID)
	fmt.Fprintf(o.w, "Checked in: %s\n", a.CheckInTime.Format("2006-01-02 15:04:05"))
	if a.CheckOutTime != nil {
		fmt.Fprintf(o.w, "Checked out: %s\n", a.CheckOutTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(o.w, "Status: %s\n", a.Status)
	fmt.Fprintf(o.w, "Duration: %s\n", a.Duration)
}

func (o *Output) printAttendanceList(records []Attendance) {
	if len(records) == 0 {
		fmt.Fprintln(o.w, "No attendance records")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREGISTRATION\tCHECK-IN\tSTATUS\tDURATION")
	for _, a := range records {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			a.ID, a.RegistrationID, a.CheckInTime.Format("15:04:05"), a.Status, a.Duration)
	}
	_ = tw.Flush()
}

func (o *Output) printSession(s Session) {
	fmt.Fprintf(o.w, "Session: %s\n", s.ID)
	if s.User != nil {
		fmt.Fprintf(o.w, "User: %s <%s>\n", s.User.FullName, s.User.Email)
	} else {
		fmt.Fprintln(o.w, "User: (not logged in)")
	}
	if len(s.SearchHistory) > 0 {
		fmt.Fprintln(o.w, "Recent searches:")
		for _, term := range s.SearchHistory {
			fmt.Fprintf(o.w, "  - %s\n", term)
		}
	}
	if len(s.RecentActivities) > 0 {
		fmt.Fprintln(o.w, "Recent activity:")
		for _, a := range s.RecentActivities {
			fmt.Fprintf(o.w, "  - %s\n", a)
		}
	}
}
