package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prairiesport/association-backend/internal/auditlog"
	"github.com/prairiesport/association-backend/internal/pkg/response"
)

type Handler struct {
	service auditlog.Service
}

func NewHandler(service auditlog.Service) *Handler {
	return &Handler{service: service}
}

// List retrieves a paginated view of the audit trail.
// Access Control: staff only.
func (h *Handler) List(c *gin.Context) {
	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	entries, total, err := h.service.List(c.Request.Context(), auditlog.Filter{
		Keyword:    req.Keyword,
		ActorEmail: req.ActorEmail,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortOrder:  strings.ToUpper(req.SortOrder),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewEntryResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
