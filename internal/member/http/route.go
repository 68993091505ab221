package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Staff Routes ===
	group := g.Group("/members")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:number", h.Get)
		group.PATCH("/:number", h.Update)
		group.DELETE("/:number", h.Delete)
	}
}
