package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prairiesport/association-backend/internal/payment"
	"github.com/prairiesport/association-backend/internal/pkg/response"
)

// maxWebhookBody caps webhook reads at 1 MiB.
const maxWebhookBody = 1 << 20

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

// Checkout creates a hosted checkout session for membership dues.
func (h *Handler) Checkout(c *gin.Context) {
	var body CheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), payment.CheckoutRequest{
		MemberID:       body.MemberID,
		Email:          body.Email,
		Name:           body.Name,
		AmountCents:    body.Amount,
		MembershipYear: body.MembershipYear,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckoutResponse{
		CheckoutURL: res.CheckoutURL,
		SessionID:   res.SessionID,
	})
}

// Webhook receives provider payment events. No JWT auth; the signature
// verification is the auth.
func (h *Handler) Webhook(c *gin.Context) {
	sig := c.GetHeader("Stripe-Signature")
	if sig == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing Stripe-Signature header"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	res, err := h.service.HandleWebhook(c.Request.Context(), body, sig)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := "ok"
	if res.Duplicate {
		status = "duplicate"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
