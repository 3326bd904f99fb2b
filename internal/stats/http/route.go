package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the admin dashboard statistics routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/admin/stats")
	group.Use(authMiddleware, adminMiddleware)
	{
		group.GET("/summary", h.Summary)
		group.GET("/forecast", h.Forecast)
		group.GET("/recommendations", h.Recommendations)
		group.GET("/occupancy", h.Occupancy)
	}
}
