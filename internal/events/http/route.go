package http

import "github.com/gin-gonic/gin"

// tokenFromQuery lets browser WebSocket clients, which cannot set headers,
// pass the bearer token as ?token=.
func tokenFromQuery(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		if token := c.Query("token"); token != "" {
			c.Request.Header.Set("Authorization", "Bearer "+token)
		}
	}
	c.Next()
}

// RegisterRoutes registers the admin event stream.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/admin/events", tokenFromQuery, authMiddleware, adminMiddleware, h.Stream)
}
