package http

import (
	"time"

	"github.com/prairiesport/association-backend/internal/booking"
	"github.com/prairiesport/association-backend/internal/pkg/request"
	"github.com/prairiesport/association-backend/internal/slot"
)

// GetSlotsRequest defines query parameters for the public slot lookup.
type GetSlotsRequest struct {
	Date string `form:"date" binding:"required"`
}

// SlotResponse is one candidate slot for a date.
type SlotResponse struct {
	Time      string `json:"time"`
	Display   string `json:"display"`
	Available bool   `json:"available"`
}

// SlotsResponse wraps the slot list for the public endpoint.
type SlotsResponse struct {
	Success bool           `json:"success"`
	Slots   []SlotResponse `json:"slots"`
}

func NewSlotsResponse(slots []slot.Slot) SlotsResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = SlotResponse{Time: s.Time, Display: s.Display, Available: s.Available}
	}
	return SlotsResponse{Success: true, Slots: items}
}

// CreateBookingRequest is the public booking submission body.
type CreateBookingRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`

	SchoolName   string `json:"school_name" binding:"required"`
	SchoolSystem string `json:"school_system"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postal_code"`

	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`

	Students            int    `json:"students" binding:"required,min=1"`
	GradeLevel          string `json:"grade_level"`
	PreferredCoach      string `json:"preferred_coach"`
	SpecialRequirements string `json:"special_requirements"`

	TotalCostCents int64 `json:"total_cost_cents" binding:"omitempty,min=0"`
}

// CreateBookingResponse reports the outcome of a submission. EventID and
// EventLink are present only when the external calendar sync succeeded.
type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id,omitempty"`
	EventLink string `json:"event_link,omitempty"`
}

// ListBookingsRequest defines query parameters for the admin booking list.
type ListBookingsRequest struct {
	request.ListParams
	SchoolSystem string `form:"school_system"`
	SchoolName   string `form:"school_name"`
	Status       string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	DateFrom     string `form:"date_from"`
	DateTo       string `form:"date_to"`
	SortBy       string `form:"sort_by" binding:"omitempty,oneof=booking_date start_time created_at status school_name"`
}

// UpdateBookingRequest is the admin status change body.
type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// BookingResponse is the full admin view of a booking.
type BookingResponse struct {
	ID string `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	SchoolName   string `json:"school_name"`
	SchoolSystem string `json:"school_system"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	Province     string `json:"province,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`

	Date         string    `json:"date"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	TotalMinutes int       `json:"total_minutes"`

	Students            int     `json:"students"`
	GradeLevel          *string `json:"grade_level,omitempty"`
	PreferredCoach      *string `json:"preferred_coach,omitempty"`
	SpecialRequirements *string `json:"special_requirements,omitempty"`

	TotalCostCents int64  `json:"total_cost_cents"`
	Status         string `json:"status"`

	CalendarEventID *string `json:"calendar_event_id,omitempty"`
	CalendarLink    *string `json:"calendar_link,omitempty"`
	AdminNote       *string `json:"admin_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		FirstName:           b.FirstName,
		LastName:            b.LastName,
		Email:               b.Email,
		Phone:               b.Phone,
		SchoolName:          b.SchoolName,
		SchoolSystem:        b.SchoolSystem,
		AddressLine1:        b.AddressLine1,
		AddressLine2:        b.AddressLine2,
		City:                b.City,
		Province:            b.Province,
		PostalCode:          b.PostalCode,
		Date:                b.Date.Format("2006-01-02"),
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		TotalMinutes:        b.TotalMinutes,
		Students:            b.Students,
		GradeLevel:          b.GradeLevel,
		PreferredCoach:      b.PreferredCoach,
		SpecialRequirements: b.SpecialRequirements,
		TotalCostCents:      b.TotalCostCents,
		Status:              string(b.Status),
		CalendarEventID:     b.CalendarEventID,
		CalendarLink:        b.CalendarLink,
		AdminNote:           b.AdminNote,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
