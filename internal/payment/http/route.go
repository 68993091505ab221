package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	// === Public Routes ===
	// Checkout is called from the public membership page; the webhook is
	// called by the provider and authenticated by its signature.
	group := g.Group("/payments")
	{
		group.POST("/checkout", h.Checkout)
		group.POST("/webhook", h.Webhook)
	}
}
