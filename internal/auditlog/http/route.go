package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Staff Routes ===
	group := g.Group("/logs")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
	}
}
