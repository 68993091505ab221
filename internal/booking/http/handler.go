package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prairiesport/association-backend/internal/auditlog"
	"github.com/prairiesport/association-backend/internal/auth"
	"github.com/prairiesport/association-backend/internal/booking"
	"github.com/prairiesport/association-backend/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service booking.Service
	audit   auditlog.Service
}

func NewHandler(service booking.Service, audit auditlog.Service) *Handler {
	return &Handler{service: service, audit: audit}
}

// GetSlots handles the public availability lookup for a single date.
func (h *Handler) GetSlots(c *gin.Context) {
	var req GetSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	slots, err := h.service.GetSlots(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotsResponse(slots))
}

// Create handles a public booking submission.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	req := booking.CreateRequest{
		FirstName:           body.FirstName,
		LastName:            body.LastName,
		Email:               body.Email,
		Phone:               body.Phone,
		SchoolName:          body.SchoolName,
		SchoolSystem:        body.SchoolSystem,
		AddressLine1:        body.AddressLine1,
		AddressLine2:        body.AddressLine2,
		City:                body.City,
		Province:            body.Province,
		PostalCode:          body.PostalCode,
		Date:                date,
		StartTime:           body.StartTime,
		Students:            body.Students,
		GradeLevel:          body.GradeLevel,
		PreferredCoach:      body.PreferredCoach,
		SpecialRequirements: body.SpecialRequirements,
		TotalCostCents:      body.TotalCostCents,
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{
		Success:   true,
		BookingID: res.Booking.ID,
		EventID:   res.CalendarEventID,
		EventLink: res.CalendarLink,
	})
}

// List retrieves a paginated list of bookings with optional filtering.
// Access Control: staff only.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		SchoolSystem: req.SchoolSystem,
		SchoolName:   req.SchoolName,
		Status:       req.Status,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       req.SortBy,
		SortOrder:    strings.ToUpper(req.SortOrder),
	}

	if req.DateFrom != "" {
		t, err := time.Parse(dateLayout, req.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_from, expected YYYY-MM-DD"})
			return
		}
		filter.DateFrom = &t
	}
	if req.DateTo != "" {
		t, err := time.Parse(dateLayout, req.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_to, expected YYYY-MM-DD"})
			return
		}
		filter.DateTo = &t
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a specific booking by its ID.
// Access Control: staff only.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Update changes a booking's lifecycle status.
// Access Control: staff only.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "booking.status.updated", auth.GetStaffEmail(c), id, "status set to "+body.Status)

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
