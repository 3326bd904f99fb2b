package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *BoatHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/boats")

	// === Public Routes ===
	{
		group.GET("", h.List)    // Catalog page
		group.GET("/:id", h.Get) // Boat details
	}

	// === Administration Routes (Admin Only) ===
	adminGroup := group.Group("")
	adminGroup.Use(authMiddleware, adminMiddleware)
	{
		adminGroup.POST("", h.Create)                 // Create boat
		adminGroup.PUT("/:id", h.Update)              // Update boat
		adminGroup.DELETE("/:id", h.Delete)           // Delete boat
		adminGroup.POST("/:id/images", h.UploadImage) // Upload boat photo
	}
}
