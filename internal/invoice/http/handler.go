package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prairiesport/association-backend/internal/auditlog"
	"github.com/prairiesport/association-backend/internal/auth"
	"github.com/prairiesport/association-backend/internal/invoice"
	"github.com/prairiesport/association-backend/internal/pkg/response"
)

type Handler struct {
	service invoice.Service
	audit   auditlog.Service
}

func NewHandler(service invoice.Service, audit auditlog.Service) *Handler {
	return &Handler{service: service, audit: audit}
}

// Generate builds a monthly invoice for one school and streams the PDF.
// Access Control: staff only.
func (h *Handler) Generate(c *gin.Context) {
	var body GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	monthStart := time.Date(body.Year, time.Month(body.Month), 1, 0, 0, 0, 0, time.UTC)

	inv, pdf, err := h.service.Generate(c.Request.Context(), monthStart, body.SchoolSystem, body.SchoolName)
	if err != nil {
		var nf *invoice.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, InvoiceNotFoundResponse{
				Error:          nf.Error(),
				SchoolSystem:   nf.SchoolSystem,
				SchoolName:     nf.SchoolName,
				DateFrom:       nf.From.Format("2006-01-02"),
				DateTo:         nf.To.Format("2006-01-02"),
				SchoolsInRange: nf.SchoolsInRange,
			})
			return
		}
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), "invoice.generated", auth.GetStaffEmail(c), inv.Number,
		fmt.Sprintf("%s for %s / %s", invoice.FormatCents(inv.TotalCents), inv.SchoolSystem, inv.SchoolName))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
