package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prairiesport/association-backend/internal/expense"
	"github.com/prairiesport/association-backend/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service expense.Service
}

func NewHandler(service expense.Service) *Handler {
	return &Handler{service: service}
}

// Create records a new expense.
// Access Control: staff only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateExpenseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	e, err := h.service.Create(c.Request.Context(), expense.CreateRequest{
		Date:        date,
		Payee:       body.Payee,
		Category:    body.Category,
		AmountCents: body.Amount,
		Note:        body.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewExpenseResponse(e))
}

// List retrieves a paginated list of expenses with optional filtering.
// Access Control: staff only.
func (h *Handler) List(c *gin.Context) {
	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := expense.Filter{
		Category:  req.Category,
		Payee:     req.Payee,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
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

	expenses, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = NewExpenseResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves an expense by ID.
// Access Control: staff only.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExpenseResponse(e))
}

// Update applies a partial update to an expense.
// Access Control: staff only.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateExpenseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := expense.UpdateRequest{
		Payee:       body.Payee,
		Category:    body.Category,
		AmountCents: body.Amount,
		Note:        body.Note,
	}
	if body.Date != nil {
		t, err := time.Parse(dateLayout, *body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		req.Date = &t
	}

	e, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExpenseResponse(e))
}

// Delete removes an expense.
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
