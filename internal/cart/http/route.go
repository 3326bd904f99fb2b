package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(g *gin.RouterGroup, h *Handler, optionalAuth gin.HandlerFunc) {
	g.POST("/cart/session", h.NewSession)

	group := g.Group("/cart")
	group.Use(RequireSession())
	{
		group.GET("", h.Get)
		group.POST("", h.Add)
		group.DELETE("", h.Clear)
		group.PUT("/items/:boatId", h.SetDays)
		group.DELETE("/items/:boatId", h.Remove)
		group.GET("/summary", h.Summary)
		group.POST("/checkout", optionalAuth, h.Checkout)
	}
}
