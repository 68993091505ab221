package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.POST("/auth/login", h.Login)

	// === Staff Routes ===
	g.GET("/auth/me", authMiddleware, h.Me)

	group := g.Group("/staff")
	group.Use(authMiddleware)
	{
		group.POST("", h.Register)
		group.GET("", h.List)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Deactivate)
	}
}
