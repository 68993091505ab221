package booking

import (
	"net/http"
	"time"

	"github.com/prairiesport/association-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotTaken     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrNoSlotForDate = apperror.New(http.StatusBadRequest, "no bookable slot at the requested date and time")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "missing required booking fields")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidInput  = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// School system categories used for invoice segmentation.
const (
	SystemCatholic = "Catholic"
	SystemPublic   = "Saskatoon Public"
	SystemOther    = "Other"
)

// Booking is a persisted request for a training session.
// CalendarEventID and CalendarLink are set together after a successful
// external sync, or not at all.
type Booking struct {
	ID string

	// Requester
	FirstName string
	LastName  string
	Email     string
	Phone     string

	// Institution
	SchoolName   string
	SchoolSystem string
	AddressLine1 string
	AddressLine2 string
	City         string
	Province     string
	PostalCode   string

	// Schedule
	Date         time.Time // calendar day
	StartTime    time.Time
	EndTime      time.Time
	TotalMinutes int

	// Payload
	Students            int
	GradeLevel          *string
	PreferredCoach      *string
	SpecialRequirements *string

	// Cost is supplied by the caller, in cents.
	TotalCostCents int64

	Status Status

	CalendarEventID *string
	CalendarLink    *string
	AdminNote       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeacherName returns the requester's full name.
func (b *Booking) TeacherName() string {
	if b.FirstName == "" {
		return b.LastName
	}
	if b.LastName == "" {
		return b.FirstName
	}
	return b.FirstName + " " + b.LastName
}

// Filter defines filter options for listing bookings.
type Filter struct {
	SchoolSystem string
	SchoolName   string
	Status       string
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
