package booking

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/prairiesport/association-backend/internal/calendar"
	"github.com/prairiesport/association-backend/internal/notify"
	"github.com/prairiesport/association-backend/internal/slot"
)

// CreateRequest carries a public booking submission. StartTime is the 24h
// start of a rule-table slot, e.g. "11:00".
type CreateRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	SchoolName   string
	SchoolSystem string
	AddressLine1 string
	AddressLine2 string
	City         string
	Province     string
	PostalCode   string

	Date      time.Time
	StartTime string

	Students            int
	GradeLevel          string
	PreferredCoach      string
	SpecialRequirements string

	TotalCostCents int64
}

// CreateResult reports the outcome of a booking submission. Calendar fields
// are empty when the external sync did not succeed; the booking itself is
// persisted regardless.
type CreateResult struct {
	Booking         *Booking
	CalendarEventID string
	CalendarLink    string
}

// Calendar is the slice of the external calendar client the booking flow
// needs. A nil Calendar disables sync entirely.
type Calendar interface {
	ListDayEvents(ctx context.Context, day time.Time) ([]calendar.Event, error)
	InsertEvent(ctx context.Context, ev calendar.Event) (*calendar.Event, error)
}

type Service interface {
	// GetSlots returns the candidate slots for a date with conflicts marked
	// from persisted bookings and, best-effort, the external calendar.
	GetSlots(ctx context.Context, date time.Time) ([]slot.Slot, error)
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
}

type service struct {
	repo   Repository
	cal    Calendar
	sender notify.Sender

	adminEmail string
	coachEmail string
}

func NewService(repo Repository, cal Calendar, sender notify.Sender, adminEmail, coachEmail string) Service {
	if sender == nil {
		sender = notify.NewLogSender()
	}
	return &service{
		repo:       repo,
		cal:        cal,
		sender:     sender,
		adminEmail: adminEmail,
		coachEmail: coachEmail,
	}
}

func (s *service) GetSlots(ctx context.Context, date time.Time) ([]slot.Slot, error) {
	slots := slot.ForDate(date)
	if len(slots) == 0 {
		return slots, nil
	}

	var busy []slot.Interval

	booked, err := s.repo.ListDay(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, b := range booked {
		busy = append(busy, slot.Interval{Start: b.StartTime, End: b.EndTime})
	}

	// The external lookup is advisory. If it fails or is not configured,
	// fall back silently to the rule-table result.
	if s.cal != nil {
		events, err := s.cal.ListDayEvents(ctx, date)
		if err != nil {
			log.Printf("calendar lookup failed for %s, using rule table only: %v", date.Format("2006-01-02"), err)
		} else {
			for _, ev := range events {
				busy = append(busy, slot.Interval{Start: ev.Start, End: ev.End})
			}
		}
	}

	return slot.MarkConflicts(slots, busy), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	sl, ok := slot.Find(req.Date, req.StartTime)
	if !ok {
		return nil, ErrNoSlotForDate
	}

	b := &Booking{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		SchoolName:     strings.TrimSpace(req.SchoolName),
		SchoolSystem:   normalizeSystem(req.SchoolSystem),
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		Province:       req.Province,
		PostalCode:     req.PostalCode,
		Date:           truncateToDay(req.Date),
		StartTime:      sl.Start,
		EndTime:        sl.End,
		TotalMinutes:   int(sl.End.Sub(sl.Start).Minutes()),
		Students:       req.Students,
		TotalCostCents: req.TotalCostCents,
		Status:         StatusConfirmed,
	}
	b.GradeLevel = optional(req.GradeLevel)
	b.PreferredCoach = optional(req.PreferredCoach)
	b.SpecialRequirements = optional(req.SpecialRequirements)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	result := &CreateResult{Booking: b}

	// Best-effort external sync: the booking stands whether or not the
	// calendar event can be created. No retry, no rollback.
	if s.cal != nil {
		s.syncCalendar(ctx, b, result)
	}

	s.sendNotifications(ctx, b, result.CalendarLink)

	return result, nil
}

func (s *service) syncCalendar(ctx context.Context, b *Booking, result *CreateResult) {
	syncCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ev := calendar.Event{
		Summary:     "SPED Session - " + b.SchoolName,
		Description: buildEventDescription(b),
		Start:       b.StartTime,
		End:         b.EndTime,
	}
	if b.Email != "" {
		ev.Attendees = append(ev.Attendees, b.Email)
	}
	if s.coachEmail != "" {
		ev.Attendees = append(ev.Attendees, s.coachEmail)
	}

	created, err := s.cal.InsertEvent(syncCtx, ev)
	if err != nil {
		log.Printf("calendar sync failed for booking %s: %v", b.ID, err)
		note := "calendar sync failed at " + time.Now().UTC().Format(time.RFC3339)
		if noteErr := s.repo.AppendAdminNote(ctx, b.ID, note); noteErr != nil {
			log.Printf("failed to record sync note for booking %s: %v", b.ID, noteErr)
		}
		return
	}

	if err := s.repo.SetCalendarRef(ctx, b.ID, created.ID, created.HTMLLink); err != nil {
		log.Printf("failed to store calendar ref for booking %s: %v", b.ID, err)
		return
	}

	b.CalendarEventID = &created.ID
	b.CalendarLink = &created.HTMLLink
	result.CalendarEventID = created.ID
	result.CalendarLink = created.HTMLLink
}

func (s *service) sendNotifications(ctx context.Context, b *Booking, eventLink string) {
	details := notify.BookingDetails{
		TeacherName:  b.TeacherName(),
		TeacherEmail: b.Email,
		SchoolName:   b.SchoolName,
		Date:         b.Date.Format("2006-01-02"),
		TimeRange:    b.StartTime.Format("3:04 PM") + " - " + b.EndTime.Format("3:04 PM"),
		Students:     strconv.Itoa(b.Students),
		EventLink:    eventLink,
	}
	if b.PreferredCoach != nil {
		details.Coach = *b.PreferredCoach
	}

	for _, n := range notify.ForBooking(details, s.adminEmail, s.coachEmail) {
		if err := s.sender.Send(ctx, n); err != nil {
			log.Printf("notification send failed for booking %s (to %s): %v", b.ID, n.Recipient, err)
		}
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func validateCreate(req CreateRequest) error {
	switch {
	case strings.TrimSpace(req.FirstName) == "",
		strings.TrimSpace(req.LastName) == "",
		strings.TrimSpace(req.Email) == "",
		strings.TrimSpace(req.SchoolName) == "",
		req.Date.IsZero(),
		req.StartTime == "":
		return ErrMissingFields
	}
	if req.Students < 1 {
		return ErrInvalidInput
	}
	if req.TotalCostCents < 0 {
		return ErrInvalidInput
	}
	return nil
}

// buildEventDescription concatenates the submitted fields into the event body.
func buildEventDescription(b *Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Teacher: %s\n", b.TeacherName())
	fmt.Fprintf(&sb, "Email: %s\n", b.Email)
	if b.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	}
	fmt.Fprintf(&sb, "School: %s (%s)\n", b.SchoolName, b.SchoolSystem)
	if b.AddressLine1 != "" {
		addr := b.AddressLine1
		if b.AddressLine2 != "" {
			addr += ", " + b.AddressLine2
		}
		fmt.Fprintf(&sb, "Address: %s, %s, %s %s\n", addr, b.City, b.Province, b.PostalCode)
	}
	fmt.Fprintf(&sb, "Students: %d\n", b.Students)
	if b.GradeLevel != nil {
		fmt.Fprintf(&sb, "Grade level: %s\n", *b.GradeLevel)
	}
	if b.PreferredCoach != nil {
		fmt.Fprintf(&sb, "Preferred coach: %s\n", *b.PreferredCoach)
	}
	if b.SpecialRequirements != nil {
		fmt.Fprintf(&sb, "Special requirements: %s\n", *b.SpecialRequirements)
	}
	return sb.String()
}

// normalizeSystem maps free-form school system input onto the known
// categories, defaulting to Other.
func normalizeSystem(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "catholic":
		return SystemCatholic
	case "public", "saskatoon public":
		return SystemPublic
	case "":
		return SystemOther
	default:
		if strings.EqualFold(s, SystemOther) {
			return SystemOther
		}
		return strings.TrimSpace(s)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
