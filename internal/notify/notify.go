package notify

import "context"

// Notification is a single email to be produced for a booking. Delivery is an
// extension point; the default sender only logs what would be sent.
type Notification struct {
	Recipient string
	Subject   string
	Template  string
	Data      map[string]string
}

// Sender delivers notifications. Implementations must not be relied on for
// booking correctness; failures are logged and swallowed by callers.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Template names understood by senders.
const (
	TemplateTeacherConfirmation = "teacher_confirmation"
	TemplateCoachNotification   = "coach_notification"
	TemplateAdminNotification   = "admin_notification"
)

// BookingDetails carries the fields notifications need, decoupled from the
// booking model so this package stays dependency-free.
type BookingDetails struct {
	TeacherName  string
	TeacherEmail string
	SchoolName   string
	Date         string
	TimeRange    string
	Students     string
	Coach        string
	EventLink    string
}

// ForBooking enumerates the notifications a new booking should produce:
// a confirmation for the teacher, a heads-up for the coach, and a summary for
// the admin. Recipients with no configured address are skipped.
func ForBooking(d BookingDetails, adminEmail, coachEmail string) []Notification {
	data := map[string]string{
		"teacher_name": d.TeacherName,
		"school_name":  d.SchoolName,
		"date":         d.Date,
		"time_range":   d.TimeRange,
		"students":     d.Students,
		"coach":        d.Coach,
		"event_link":   d.EventLink,
	}

	var out []Notification

	if d.TeacherEmail != "" {
		out = append(out, Notification{
			Recipient: d.TeacherEmail,
			Subject:   "Your SPED session is booked - " + d.Date,
			Template:  TemplateTeacherConfirmation,
			Data:      data,
		})
	}
	if coachEmail != "" {
		out = append(out, Notification{
			Recipient: coachEmail,
			Subject:   "New SPED session at " + d.SchoolName + " - " + d.Date,
			Template:  TemplateCoachNotification,
			Data:      data,
		})
	}
	if adminEmail != "" {
		out = append(out, Notification{
			Recipient: adminEmail,
			Subject:   "SPED booking received: " + d.SchoolName + " - " + d.Date,
			Template:  TemplateAdminNotification,
			Data:      data,
		})
	}
	return out
}
