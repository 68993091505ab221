package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Staff Routes ===
	group := g.Group("/invoices")
	group.Use(authMiddleware)
	{
		group.POST("/generate", h.Generate)
	}
}
