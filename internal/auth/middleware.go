package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
)

var (
	errMissingHeader = errors.New("missing Authorization header")
	errHeaderFormat  = errors.New("invalid Authorization header format")
	errInvalidToken  = errors.New("invalid or expired token")
)

func (m *JWTManager) fromRequest(c *gin.Context, revoker *Revoker) (*Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errMissingHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errHeaderFormat
	}

	claims, err := m.ParseAndValidate(parts[1])
	if err != nil {
		return nil, errInvalidToken
	}
	if revoker != nil && revoker.IsRevoked(claims.ID) {
		return nil, errInvalidToken
	}
	return claims, nil
}

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager, revoker *Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwtManager.fromRequest(c, revoker)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		// Store user info into Gin context for later handlers.
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth records the caller when a valid token is sent and otherwise
// lets the request through anonymously. A malformed or revoked token is still
// rejected.
func OptionalAuth(jwtManager *JWTManager, revoker *Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwtManager.fromRequest(c, revoker)
		switch {
		case errors.Is(err, errMissingHeader):
		case err != nil:
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		default:
			setClaims(c, claims)
		}
		c.Next()
	}
}
