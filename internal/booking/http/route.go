package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, optionalAuth, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Public Routes ===
	{
		group.GET("/check-availability", h.CheckAvailability)
		group.POST("", optionalAuth, h.Create)
	}

	// === Authenticated Routes ===
	authGroup := group.Group("")
	authGroup.Use(authMiddleware)
	{
		authGroup.GET("", h.List)
		authGroup.GET("/:id", h.Get)
		authGroup.PATCH("/:id/cancel", h.Cancel)
		authGroup.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
	}
}
