package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the account routes under /auth.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		// === Public Routes ===
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)

		// === Authenticated Routes ===
		authGroup.POST("/logout", authMiddleware, h.Logout)
		authGroup.GET("/me", authMiddleware, h.Me)
	}
}
