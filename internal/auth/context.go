package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
	ctxTokenID  = "tokenID"
	ctxTokenExp = "tokenExpiresAt"
)

// RoleAdmin is the role claim carried by administrator tokens.
const RoleAdmin = "admin"

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return getString(c, ctxUserID)
}

func GetUserRole(c *gin.Context) string {
	return getString(c, ctxUserRole)
}

// IsAdmin reports whether the request carries an admin token.
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == RoleAdmin
}

// GetTokenID returns the jti of the request's token.
func GetTokenID(c *gin.Context) string {
	return getString(c, ctxTokenID)
}

func GetTokenExpiry(c *gin.Context) time.Time {
	if v, ok := c.Get(ctxTokenExp); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserRole, claims.Role)
	c.Set(ctxTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ctxTokenExp, claims.ExpiresAt.Time)
	}
}
