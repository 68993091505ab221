package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prairiesport/association-backend/internal/auditlog"
	"github.com/prairiesport/association-backend/internal/auth"
	"github.com/prairiesport/association-backend/internal/member"
	"github.com/prairiesport/association-backend/internal/pkg/response"
)

type Handler struct {
	service member.Service
	audit   auditlog.Service
}

func NewHandler(service member.Service, audit auditlog.Service) *Handler {
	return &Handler{service: service, audit: audit}
}

// Create registers a new member.
// Access Control: staff only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateMemberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Create(c.Request.Context(), member.CreateRequest{
		MembershipNumber: body.MembershipNumber,
		FirstName:        body.FirstName,
		LastName:         body.LastName,
		Email:            body.Email,
		Phone:            body.Phone,
		ClubID:           body.ClubID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "member.created", auth.GetStaffEmail(c), m.MembershipNumber, m.FullName())

	c.JSON(http.StatusCreated, NewMemberResponse(m))
}

// List retrieves a paginated list of members with optional filtering.
// Access Control: staff only.
func (h *Handler) List(c *gin.Context) {
	var req ListMembersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	members, total, err := h.service.List(c.Request.Context(), member.Filter{
		MembershipNumber: req.MembershipNumber,
		Name:             req.Name,
		Email:            req.Email,
		ClubID:           req.ClubID,
		IsActive:         req.IsActive,
		Page:             req.Page,
		PageSize:         req.PageSize,
		SortBy:           req.SortBy,
		SortOrder:        strings.ToUpper(req.SortOrder),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MemberResponse, len(members))
	for i, m := range members {
		items[i] = NewMemberResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a member by membership number.
// Access Control: staff only.
func (h *Handler) Get(c *gin.Context) {
	m, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewMemberResponse(m))
}

// Update applies a partial update to a member identified by membership number.
// Access Control: staff only.
func (h *Handler) Update(c *gin.Context) {
	var body UpdateMemberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Update(c.Request.Context(), c.Param("number"), member.UpdateRequest{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
		ClubID:    body.ClubID,
		IsActive:  body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "member.updated", auth.GetStaffEmail(c), m.MembershipNumber, "")

	c.JSON(http.StatusOK, NewMemberResponse(m))
}

// Delete deactivates a member. The row is kept for historical invoices.
// Access Control: staff only.
func (h *Handler) Delete(c *gin.Context) {
	number := c.Param("number")
	if err := h.service.Deactivate(c.Request.Context(), number); err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "member.deactivated", auth.GetStaffEmail(c), number, "")

	c.JSON(http.StatusOK, gin.H{"success": true})
}
