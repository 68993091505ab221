package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prairiesport/association-backend/internal/club"
	"github.com/prairiesport/association-backend/internal/pkg/response"
)

type Handler struct {
	service club.Service
}

func NewHandler(service club.Service) *Handler {
	return &Handler{service: service}
}

// Create registers a new club.
// Access Control: staff only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateClubRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cl, err := h.service.Create(c.Request.Context(), club.CreateRequest{
		Name:         body.Name,
		Community:    body.Community,
		ContactEmail: body.ContactEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClubResponse(cl))
}

// List retrieves a paginated list of active clubs.
// Access Control: staff only.
func (h *Handler) List(c *gin.Context) {
	var req ListClubsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	clubs, total, err := h.service.List(c.Request.Context(), club.Filter{
		Name:      req.Name,
		Community: req.Community,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClubResponse, len(clubs))
	for i, cl := range clubs {
		items[i] = NewClubResponse(cl)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a club by ID.
// Access Control: staff only.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClubResponse(cl))
}

// Update applies a partial update to a club.
// Access Control: staff only.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateClubRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cl, err := h.service.Update(c.Request.Context(), id, club.UpdateRequest{
		Name:         body.Name,
		Community:    body.Community,
		ContactEmail: body.ContactEmail,
		IsActive:     body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClubResponse(cl))
}

// Delete soft-deletes a club.
// Access Control: staff only.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
